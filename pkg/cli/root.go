// Package cli implements the pulsecheck command line interface.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
)

// stdout is swapped out by tests to capture command output.
var stdout io.Writer = os.Stdout

// Command represents a CLI command
type Command struct {
	Name        string
	Description string
	Run         func(args []string) error
	Subcommands map[string]*Command
	Flags       *flag.FlagSet
}

// NewRootCommand creates the root command
func NewRootCommand() *Command {
	root := &Command{
		Name:        "pulsecheck",
		Description: "pulsecheck - Analog quantum task validator CLI",
		Subcommands: make(map[string]*Command),
		Flags:       flag.NewFlagSet("pulsecheck", flag.ExitOnError),
	}

	root.Subcommands["validate"] = newValidateCommand()
	root.Subcommands["devices"] = newDevicesCommand()
	root.Subcommands["capabilities"] = newCapabilitiesCommand()

	return root
}

// Execute runs the command
func (c *Command) Execute() error {
	args := os.Args[1:]
	if len(args) == 0 {
		return c.usage()
	}

	if args[0] == "-h" || args[0] == "--help" {
		return c.usage()
	}

	if subcmd, ok := c.Subcommands[args[0]]; ok {
		return subcmd.Run(args[1:])
	}

	return fmt.Errorf("unknown command: %s", args[0])
}

// usage prints the command usage
func (c *Command) usage() error {
	fmt.Fprintf(stdout, "Usage: %s <command> [args]\n\n", c.Name)
	fmt.Fprintf(stdout, "Commands:\n")
	names := make([]string, 0, len(c.Subcommands))
	for name := range c.Subcommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(stdout, "  %-15s %s\n", name, c.Subcommands[name].Description)
	}
	return nil
}
