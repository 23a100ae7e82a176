// Package services contains application services for the LocalSpot client:
// places, favorites and reviews. Each service talks to the remote API
// through api.Client and reads the current actor from the session manager;
// operations that need an account reject guests and unauthenticated actors
// before any network call.
package services
