package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// command is one REPL verb.
type command struct {
	name    string
	aliases []string
	usage   string
	help    string
	// nargs is the number of required arguments.
	nargs int
	// auth marks commands listed only for a signed-in session.
	auth bool
	run  func(ctx context.Context, args []string) error
}

func (c command) matches(name string) bool {
	if c.name == name {
		return true
	}
	for _, a := range c.aliases {
		if a == name {
			return true
		}
	}
	return false
}

// runREPL reads commands from reader until EOF or "exit"/"quit". Handler
// errors are printed and the loop continues. Handlers prompt through the same
// reader, so no input is buffered twice.
func runREPL(ctx context.Context, cmds []command, loggedIn func() bool, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for ctx.Err() == nil {
		fmt.Fprintf(w, "catalog [%s]> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		case "help":
			printHelp(w, cmds, loggedIn())
			continue
		}

		cmd, ok := find(cmds, name)
		if !ok {
			fmt.Fprintln(w, "Unknown command:", name)
			continue
		}
		if len(args) < cmd.nargs {
			fmt.Fprintln(w, "Usage:", cmd.name, cmd.usage)
			continue
		}
		if err := cmd.run(ctx, args); err != nil {
			fmt.Fprintln(w, "Error:", err)
		}
	}
}

func find(cmds []command, name string) (command, bool) {
	for _, c := range cmds {
		if c.matches(name) {
			return c, true
		}
	}
	return command{}, false
}

func printHelp(w io.Writer, cmds []command, loggedIn bool) {
	fmt.Fprintln(w, "Available commands:")
	for _, c := range cmds {
		if c.auth && !loggedIn {
			continue
		}
		fmt.Fprintf(w, "  %-28s %s\n", strings.TrimSpace(c.name+" "+c.usage), c.help)
	}
	fmt.Fprintf(w, "  %-28s %s\n", "help", "show this list")
	fmt.Fprintf(w, "  %-28s %s\n", "exit | quit", "leave the program")
}
