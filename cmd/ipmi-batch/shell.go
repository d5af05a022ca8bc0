package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/chzyer/readline"
)

// shell is the interactive command mode.
type shell struct {
	app *app
	rl  *readline.Instance
}

func (a *app) runShell() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "ipmi> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	// Route output through readline so it does not clobber the prompt.
	a.out = rl.Stdout()
	log.SetOutput(rl.Stderr())

	s := &shell{app: a, rl: rl}
	s.printHelp()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(a.out, "Exiting...")
			return nil
		}
		if !s.dispatch(line) {
			return nil
		}
	}
}

// dispatch executes one input line. It returns false when the shell should exit.
func (s *shell) dispatch(line string) bool {
	out := s.app.out
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		s.printHelp()

	case "raw", "r":
		err = s.app.runRaw(args)

	case "collect", "c":
		err = s.app.runCollect(args)

	case "metrics", "m":
		err = s.app.runMetrics()

	case "quit", "exit", "q":
		fmt.Fprintln(out, "Exiting...")
		return false

	default:
		fmt.Fprintf(out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
	}
	return true
}

func (s *shell) printHelp() {
	fmt.Fprintln(s.app.out, `
IPMI Batch Commands:
  raw [-channel C] [-slave S] [-repeat N] <netfn> <cmd> [data...]
                         - Send a raw request (hex bytes)
  collect [metric...]    - Collect metrics (all when none are named)
  metrics                - List available metrics
  help                   - Show this help
  quit                   - Exit`)
}
