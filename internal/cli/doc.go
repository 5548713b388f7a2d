// Package cli provides the interactive savelinks shell.
//
// An App holds at most one session: the user id, name and the session key
// returned by AuthService.Authenticate. The key lives only in memory and is
// wiped on logout and on exit.
//
//	Anonymous:      help, register, login, exit
//	Authenticated:  help, add, search, delete, logout, exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends.
package cli
