package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL drives. App satisfies it; tests
// can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Add(ctx context.Context) error
	Search(ctx context.Context) error
	Delete(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	helpAnonymous = `Available commands:
  register  create an account
  login     open a session
  exit      leave the program`

	helpSession = `Available commands:
  add       save a topic and link
  search    find links by topic
  delete    remove a link by id
  logout    close the session
  exit      leave the program`
)

// runREPL reads commands line by line from reader and dispatches them to a.
// Commands that do not apply to the current session state are refused. The
// loop exits on EOF, on "exit" or "quit", or when ctx is done.
//
// Handler errors are input errors (the user closed stdin mid-prompt); EOF ends
// the loop, anything else is reported and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprintf(out, "savelinks %s> ", statusFn())
		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(out)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		var handler func(context.Context) error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, helpSession)
			} else {
				fmt.Fprintln(out, helpAnonymous)
			}
			continue

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		case "register", "login":
			if a.isLoggedIn() {
				fmt.Fprintln(out, "Already logged in. Log out first.")
				continue
			}
			handler = a.Register
			if cmd == "login" {
				handler = a.Login
			}

		case "add", "search", "delete", "logout":
			if !a.isLoggedIn() {
				fmt.Fprintln(out, "Please log in first.")
				continue
			}
			switch cmd {
			case "add":
				handler = a.Add
			case "search":
				handler = a.Search
			case "delete":
				handler = a.Delete
			default:
				handler = a.Logout
			}

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
			continue
		}

		if err := handler(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return
			}
			fmt.Fprintln(out, "Error:", err)
		}
	}
}
