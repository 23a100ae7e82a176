// Package cli provides the interactive LocalSpot command-line client.
//
// It wires configuration, local storage, the REST API client, the session
// manager and the catalog services into a REPL. On startup the app runs the
// session bootstrap sequence (restoring a persisted login when one exists)
// and starts a background connectivity watcher whose online/offline verdict
// shows in the prompt.
//
// Commands are gated on the session state: browsing works for everyone,
// favorites/reviews/profile need an account, and guests are pointed at
// login/register. The REPL is started via App.Run(ctx), which blocks until
// the user exits.
package cli
