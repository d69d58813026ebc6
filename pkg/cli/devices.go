package cli

import (
	"flag"
	"fmt"

	"github.com/openqpu/pulsecheck/pkg/device"
)

func newDevicesCommand() *Command {
	cmd := &Command{
		Name:        "devices",
		Description: "List available device profiles",
		Flags:       flag.NewFlagSet("devices", flag.ExitOnError),
		Run:         runDevices,
	}

	cmd.Flags.String("profiles", "", "Directory containing device profiles")

	return cmd
}

func runDevices(args []string) error {
	flags := flag.NewFlagSet("devices", flag.ExitOnError)
	profileDir := flags.String("profiles", "", "Directory containing device profiles")

	if err := flags.Parse(args); err != nil {
		return err
	}

	registry, err := device.NewRegistry(*profileDir)
	if err != nil {
		return fmt.Errorf("failed to load device profiles: %w", err)
	}

	for _, name := range registry.Names() {
		fmt.Fprintln(stdout, name)
	}
	return nil
}
