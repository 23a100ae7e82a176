// Package session owns the process-wide record of who the current actor is:
// an authenticated user with a bearer credential, a guest, or nobody.
//
// The Manager mirrors its state into local storage so a session survives
// restarts, and restores it through the Bootstrap sequence at startup.
// Callers read state through Snapshot and mutate it only through the
// operation methods; no operation retries, and the worst outcome of any
// failure is a clean unauthenticated state.
package session
