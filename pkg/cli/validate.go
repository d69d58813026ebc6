package cli

import (
	"encoding/json"
	"flag"
	"fmt"

	"github.com/openqpu/pulsecheck/pkg/device"
	"github.com/openqpu/pulsecheck/pkg/task"
	"github.com/openqpu/pulsecheck/pkg/validator"
)

func newValidateCommand() *Command {
	cmd := &Command{
		Name:        "validate",
		Description: "Validate a task document against a device profile",
		Flags:       flag.NewFlagSet("validate", flag.ExitOnError),
		Run:         runValidate,
	}

	cmd.Flags.String("task", "", "Path to the task JSON file")
	cmd.Flags.String("device", "default", "Device profile name")
	cmd.Flags.String("profiles", "", "Directory containing device profiles")
	cmd.Flags.String("capabilities", "", "Capability YAML file (overrides -device)")
	cmd.Flags.String("format", "text", "Output format: text or json")

	return cmd
}

func runValidate(args []string) error {
	flags := flag.NewFlagSet("validate", flag.ExitOnError)
	taskPath := flags.String("task", "", "Path to the task JSON file")
	deviceName := flags.String("device", "default", "Device profile name")
	profileDir := flags.String("profiles", "", "Directory containing device profiles")
	capsPath := flags.String("capabilities", "", "Capability YAML file (overrides -device)")
	format := flags.String("format", "text", "Output format: text or json")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if *taskPath == "" {
		return fmt.Errorf("missing required flag: -task")
	}
	if *format != "text" && *format != "json" {
		return fmt.Errorf("unknown format: %s", *format)
	}

	spec, err := task.ParseFile(*taskPath)
	if err != nil {
		return fmt.Errorf("failed to load task: %w", err)
	}

	caps, err := resolveCapabilities(*capsPath, *profileDir, *deviceName)
	if err != nil {
		return err
	}

	report := validator.Validate(spec, caps)

	if *format == "json" {
		if err := printReportJSON(caps.Name, report); err != nil {
			return err
		}
	} else {
		printReportText(caps.Name, report)
	}

	if !report.Valid() {
		return fmt.Errorf("task failed validation with %d violation(s)", report.Total())
	}
	return nil
}

// resolveCapabilities picks the capability document for a run: an explicit
// YAML file wins, otherwise the named profile from the registry.
func resolveCapabilities(capsPath, profileDir, deviceName string) (*device.Capabilities, error) {
	if capsPath != "" {
		caps, err := device.LoadFile(capsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load capabilities: %w", err)
		}
		return caps, nil
	}

	registry, err := device.NewRegistry(profileDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load device profiles: %w", err)
	}
	caps, ok := registry.Get(deviceName)
	if !ok {
		return nil, fmt.Errorf("unknown device profile: %s", deviceName)
	}
	return caps, nil
}

func printReportJSON(deviceName string, report *validator.Report) error {
	out := struct {
		Device     string            `json:"device"`
		Valid      bool              `json:"valid"`
		Violations int               `json:"violations"`
		Report     *validator.Report `json:"report"`
	}{
		Device:     deviceName,
		Valid:      report.Valid(),
		Violations: report.Total(),
		Report:     report,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Fprintln(stdout, string(data))
	return nil
}

func printReportText(deviceName string, report *validator.Report) {
	fmt.Fprintf(stdout, "Device:  %s\n", deviceName)
	if report.Valid() {
		fmt.Fprintln(stdout, "Result:  valid")
		return
	}
	fmt.Fprintf(stdout, "Result:  invalid (%d violations)\n", report.Total())
	for _, cat := range validator.Categories {
		violations := report.Violations(cat)
		if len(violations) == 0 {
			continue
		}
		fmt.Fprintf(stdout, "\n%s:\n", cat)
		for _, v := range violations {
			fmt.Fprintf(stdout, "  - %s\n", v)
		}
	}
}
