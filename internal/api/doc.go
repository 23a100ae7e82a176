// Package api defines the LocalSpot REST API surface consumed by the client
// and a resty-backed implementation of it.
//
// The Client interface is the single seam between the application and the
// network; services depend on the interface so tests can substitute fakes.
// Failures follow a small taxonomy: ErrUnavailable for transport failures,
// ErrUnauthorized for rejected credentials on authorized calls, and *Error
// for any other server-side rejection.
package api
