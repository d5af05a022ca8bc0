// Command ipmi-log inspects batch captures written by ipmi-batch -protocol-log.
//
// Every command reads one .ilog file and accepts the same selection flags
// (-batch-id, -device, -since, -until, -direction, -category), so a question
// such as "which batches on /dev/ipmi1 timed out last night" is answered by
// narrowing the capture first:
//
//	ipmi-log stats -device /dev/ipmi1 -since 2026-01-27T22:00:00Z trace.ilog
//	ipmi-log view -batch-id 5f0c2d1e-8a7b-4c3d-9e2f-0123456789ab trace.ilog
//	ipmi-log export -format csv -o responses.csv -direction in trace.ilog
//	ipmi-log filter -o timeouts.ilog -category error trace.ilog
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mash-protocol/ipmi-go/cmd/ipmi-log/commands"
)

// command is one ipmi-log subcommand. bind registers its own flags on fs and
// returns the action to run on the capture path.
type command struct {
	name    string
	summary string
	extra   string
	bind    func(fs *flag.FlagSet, sel *commands.Selection) func(path string) error
}

var commandTable = []command{
	{
		name:    "view",
		summary: "print the selected events",
		bind: func(_ *flag.FlagSet, sel *commands.Selection) func(string) error {
			return func(path string) error {
				return commands.RunView(path, *sel, os.Stdout)
			}
		},
	},
	{
		name:    "stats",
		summary: "summarize outcomes, windows and latencies per batch",
		bind: func(_ *flag.FlagSet, sel *commands.Selection) func(string) error {
			return func(path string) error {
				return commands.RunStats(path, *sel, os.Stdout)
			}
		},
	},
	{
		name:    "export",
		summary: "write the selected events as jsonl or csv",
		extra:   "[-format jsonl|csv] [-o file]",
		bind: func(fs *flag.FlagSet, sel *commands.Selection) func(string) error {
			format := fs.String("format", "jsonl", "Output format: jsonl or csv")
			output := fs.String("o", "", "Output file (default stdout)")
			return func(path string) error {
				return commands.RunExport(path, *format, *output, *sel)
			}
		},
	},
	{
		name:    "filter",
		summary: "copy the selected events into a new capture",
		extra:   "-o file",
		bind: func(fs *flag.FlagSet, sel *commands.Selection) func(string) error {
			output := fs.String("o", "", "Output capture file (required)")
			return func(path string) error {
				n, err := commands.RunFilter(path, *output, *sel)
				if err != nil {
					return err
				}
				fmt.Printf("Filtered %d events to %s\n", n, *output)
				return nil
			}
		},
	},
}

// errUsage reports a command line the flag package has already explained.
var errUsage = errors.New("usage")

func (c command) run(args []string) error {
	fs := flag.NewFlagSet(c.name, flag.ContinueOnError)
	var sel commands.Selection
	sel.Register(fs)
	action := c.bind(fs, &sel)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: ipmi-log %s %s[selection] <file.ilog>\n\n", c.name, withSpace(c.extra))
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return errUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}
	return action(fs.Arg(0))
}

func withSpace(s string) string {
	if s == "" {
		return ""
	}
	return s + " "
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: ipmi-log <command> [flags] <file.ilog>")
	fmt.Fprintln(w)
	for _, c := range commandTable {
		fmt.Fprintf(w, "  %-7s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, `Run "ipmi-log <command> -h" for the selection flags.`)
}

func lookup(name string) (command, bool) {
	for _, c := range commandTable {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	name := os.Args[1]
	switch name {
	case "-h", "-help", "--help", "help":
		printUsage(os.Stdout)
		return
	}

	c, ok := lookup(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "ipmi-log: unknown command %q\n\n", name)
		printUsage(os.Stderr)
		os.Exit(2)
	}

	if err := c.run(os.Args[2:]); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "ipmi-log %s: %v\n", name, err)
		os.Exit(1)
	}
}
