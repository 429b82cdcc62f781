package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Fprintln

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	List(ctx context.Context)
	Add(ctx context.Context, title string)
	Done(ctx context.Context, arg string)
	Remove(ctx context.Context, arg string)
	Code(ctx context.Context)
	Leave(ctx context.Context) error
}

// runREPL reads commands until EOF, "exit" or "leave". It returns true when
// the user left the group (sign-out), so the caller can restart onboarding.
//
// Commands:
//
//	l, list          — show the shared list
//	add <title>      — add an item
//	done <n>         — toggle the n-th listed item
//	rm <n>           — remove the n-th listed item
//	code             — show the family code to share
//	leave            — sign out of the family
//	help             — show available commands
//	exit | quit      — leave the program
//
// Errors returned by command handlers are reported by the handlers
// themselves; the loop stays resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner, w io.Writer) (left bool) {
	for {
		printlnFn(w, "famlist> ")
		if !scanner.Scan() {
			return false
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(w, "Available commands: (l)ist, add <title>, done <n>, rm <n>, code, leave, exit")

		case "l", "list":
			a.List(ctx)

		case "add":
			a.Add(ctx, strings.Join(args, " "))

		case "done":
			a.Done(ctx, strings.Join(args, ""))

		case "rm":
			a.Remove(ctx, strings.Join(args, ""))

		case "code":
			a.Code(ctx)

		case "leave":
			if err := a.Leave(ctx); err == nil {
				return true
			}

		case "exit", "quit":
			printlnFn(w, "Bye!")
			return false

		default:
			printlnFn(w, "Unknown command:", cmd)
		}
	}
}
