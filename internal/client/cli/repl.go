package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Post(ctx context.Context) error
	Like(ctx context.Context, id string) error
	Feed(ctx context.Context) error
	WhoAmI(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help            show available commands
//	  - register        create an account
//	  - login           sign in with username or email
//	  - exit | quit     leave the program
//
//	Logged in:
//	  - help            show available commands
//	  - post            share a dish, optionally with a picture
//	  - like <id>       like or unlike a post
//	  - feed            show posts, newest first
//	  - whoami          show the signed-in user
//	  - logout          sign out
//	  - exit | quit     leave the program
//
// Handlers print their own errors; the loop ignores what they return.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("cs> %s > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: post, like <id>, feed, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout", "post", "like", "feed", "whoami":
			if !a.isLoggedIn() {
				printlnFn("Please log in first")
				continue
			}
			switch cmd {
			case "logout":
				_ = a.Logout(ctx)
			case "post":
				_ = a.Post(ctx)
			case "like":
				if len(args) == 0 {
					printlnFn("Usage: like <id>")
					continue
				}
				_ = a.Like(ctx, args[0])
			case "feed":
				_ = a.Feed(ctx)
			case "whoami":
				_ = a.WhoAmI(ctx)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
