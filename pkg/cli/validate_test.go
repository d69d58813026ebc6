package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cleanTaskJSON = `{
	"positions": [{"x": 0, "y": 0}, {"x": 6, "y": 0}],
	"rabi":     {"clocks": [0, 1, 2, 3], "values": [0, 1, 1, 0]},
	"detuning": {"clocks": [0, 3], "values": [-10, -10]},
	"phase":    {"clocks": [0, 3], "values": [0, 0]}
}`

const badTaskJSON = `{
	"positions": [{"x": 0, "y": 0}, {"x": 6, "y": 0}],
	"rabi":     {"clocks": [0, 1, 2, 5], "values": [0, 1, 1, 0]},
	"detuning": {"clocks": [0, 5], "values": [-10, -10]},
	"phase":    {"clocks": [0, 5], "values": [0, 0]}
}`

const tinyProfileYAML = `name: tiny
max_qubits: 1
lattice:
  geometry:
    position_resolution: 0.1
    min_radial_spacing: 4.0
    min_vertical_spacing: 4.0
  area:
    max_width: 75.0
    max_height: 76.0
rabi:
  max_time: 4.0
  min_time_step: 0.05
  max_slope: 250.0
  min_value: 0.0
  max_value: 15.8
  time_resolution: 0.001
  value_resolution: 0.0004
detuning:
  max_time: 4.0
  min_time_step: 0.05
  max_slope: 2500.0
  min_value: -125.0
  max_value: 125.0
  time_resolution: 0.001
  value_resolution: 2.0e-7
phase:
  max_time: 4.0
  min_time_step: 0.05
  min_value: -99.0
  max_value: 99.0
  time_resolution: 0.001
  value_resolution: 5.0e-7
local_detuning:
  max_time: 4.0
  min_time_step: 0.05
  max_slope: 1256.0
  min_value: -125.0
  max_value: 0.0
  time_resolution: 0.001
  value_resolution: 2.0e-7
  scale_resolution: 0.01
`

// captureOutput redirects command output to a buffer for the test's duration.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	old := stdout
	stdout = buf
	t.Cleanup(func() { stdout = old })
	return buf
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name       string
		taskJSON   string
		extraArgs  []string
		wantErr    bool
		wantOutput string
	}{
		{
			name:       "clean task",
			taskJSON:   cleanTaskJSON,
			wantErr:    false,
			wantOutput: "Result:  valid",
		},
		{
			name:       "invalid task",
			taskJSON:   badTaskJSON,
			wantErr:    true,
			wantOutput: "Result:  invalid",
		},
		{
			name:      "unknown device",
			taskJSON:  cleanTaskJSON,
			extraArgs: []string{"-device", "nope"},
			wantErr:   true,
		},
		{
			name:      "unknown format",
			taskJSON:  cleanTaskJSON,
			extraArgs: []string{"-format", "xml"},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureOutput(t)
			taskPath := writeFile(t, t.TempDir(), "task.json", tt.taskJSON)

			args := append([]string{"-task", taskPath}, tt.extraArgs...)
			err := runValidate(args)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.wantOutput != "" {
				assert.Contains(t, buf.String(), tt.wantOutput)
			}
		})
	}
}

func TestValidateCommand_MissingTask(t *testing.T) {
	captureOutput(t)
	err := runValidate(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-task")
}

func TestValidateCommand_JSONOutput(t *testing.T) {
	buf := captureOutput(t)
	taskPath := writeFile(t, t.TempDir(), "task.json", badTaskJSON)

	err := runValidate([]string{"-task", taskPath, "-format", "json"})
	require.Error(t, err)

	var out struct {
		Device     string `json:"device"`
		Valid      bool   `json:"valid"`
		Violations int    `json:"violations"`
		Report     struct {
			Valid    bool     `json:"valid"`
			Rabi     []string `json:"rabi"`
			Detuning []string `json:"detuning"`
			Phase    []string `json:"phase"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "default", out.Device)
	assert.False(t, out.Valid)
	assert.False(t, out.Report.Valid)
	assert.NotEmpty(t, out.Report.Rabi)
	assert.NotEmpty(t, out.Report.Detuning)
	assert.NotEmpty(t, out.Report.Phase)
	assert.Equal(t, out.Violations,
		len(out.Report.Rabi)+len(out.Report.Detuning)+len(out.Report.Phase))
}

func TestValidateCommand_CapabilitiesFile(t *testing.T) {
	buf := captureOutput(t)
	dir := t.TempDir()
	taskPath := writeFile(t, dir, "task.json", cleanTaskJSON)
	capsPath := writeFile(t, dir, "tiny.yaml", tinyProfileYAML)

	err := runValidate([]string{"-task", taskPath, "-capabilities", capsPath})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "Device:  tiny")
	assert.Contains(t, buf.String(), "2 qubits exceeds maximum of 1 qubits")
}

func TestValidateCommand_ProfileDirectory(t *testing.T) {
	captureOutput(t)
	dir := t.TempDir()
	taskPath := writeFile(t, dir, "task.json", cleanTaskJSON)

	profileDir := filepath.Join(dir, "profiles")
	require.NoError(t, os.Mkdir(profileDir, 0755))
	writeFile(t, profileDir, "tiny.yaml", tinyProfileYAML)

	err := runValidate([]string{"-task", taskPath, "-profiles", profileDir, "-device", "tiny"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed validation")
}

func TestValidateCommand_BadTaskFile(t *testing.T) {
	captureOutput(t)
	taskPath := writeFile(t, t.TempDir(), "task.json", "{not json")

	err := runValidate([]string{"-task", taskPath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load task")
}
