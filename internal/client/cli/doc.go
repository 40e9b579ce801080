// Package cli provides the interactive cooksocial command-line client.
//
// It wires configuration, the identity gateway, the local token cache, the
// auth controller and the in-memory feed behind a small REPL. On start the
// client probes for a previous session, so a user who signed in earlier is
// greeted without logging in again.
//
// Commands:
//   - register / login / logout
//   - post, like <id>, feed
//   - whoami, help, exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
