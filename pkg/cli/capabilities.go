package cli

import (
	"encoding/json"
	"flag"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/openqpu/pulsecheck/pkg/device"
)

func newCapabilitiesCommand() *Command {
	cmd := &Command{
		Name:        "capabilities",
		Description: "Print the capability document of a device profile",
		Flags:       flag.NewFlagSet("capabilities", flag.ExitOnError),
		Run:         runCapabilities,
	}

	cmd.Flags.String("device", "default", "Device profile name")
	cmd.Flags.String("profiles", "", "Directory containing device profiles")
	cmd.Flags.String("format", "yaml", "Output format: yaml or json")

	return cmd
}

func runCapabilities(args []string) error {
	flags := flag.NewFlagSet("capabilities", flag.ExitOnError)
	deviceName := flags.String("device", "default", "Device profile name")
	profileDir := flags.String("profiles", "", "Directory containing device profiles")
	format := flags.String("format", "yaml", "Output format: yaml or json")

	if err := flags.Parse(args); err != nil {
		return err
	}

	registry, err := device.NewRegistry(*profileDir)
	if err != nil {
		return fmt.Errorf("failed to load device profiles: %w", err)
	}
	caps, ok := registry.Get(*deviceName)
	if !ok {
		return fmt.Errorf("unknown device profile: %s", *deviceName)
	}

	switch *format {
	case "yaml":
		data, err := yaml.Marshal(caps)
		if err != nil {
			return fmt.Errorf("failed to encode capabilities: %w", err)
		}
		fmt.Fprint(stdout, string(data))
	case "json":
		data, err := json.MarshalIndent(caps, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode capabilities: %w", err)
		}
		fmt.Fprintln(stdout, string(data))
	default:
		return fmt.Errorf("unknown format: %s", *format)
	}
	return nil
}
