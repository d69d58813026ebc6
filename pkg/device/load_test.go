package device

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshalJSON(t *testing.T, caps *Capabilities) []byte {
	t.Helper()
	data, err := json.Marshal(caps)
	require.NoError(t, err)
	return data
}

const profileYAML = `
name: test-device
max_qubits: 16
lattice:
  geometry:
    position_resolution: 0.1
    min_radial_spacing: 4.0
    min_vertical_spacing: 4.0
  area:
    max_width: 50.0
    max_height: 50.0
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

func TestLoad(t *testing.T) {
	caps, err := Load([]byte(profileYAML))
	require.NoError(t, err)
	assert.Equal(t, "test-device", caps.Name)
	assert.Equal(t, 16, caps.MaxQubits)
	assert.Equal(t, 0.1, caps.Lattice.Geometry.PositionResolution)
	assert.Equal(t, 15.8, caps.Rabi.MaxValue)
	assert.Equal(t, 0.01, caps.LocalDetuning.ScaleResolution)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load([]byte("max_qubits: [not a number"))
	assert.ErrorContains(t, err, "failed to parse capability document")
}

func TestLoad_InvalidDocument(t *testing.T) {
	_, err := Load([]byte("max_qubits: 0"))
	assert.ErrorContains(t, err, "invalid capability document")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aquila.yaml")
	require.NoError(t, os.WriteFile(path, []byte(profileYAML), 0644))

	caps, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "test-device", caps.Name)
}

func TestLoadFile_NameDefaultsToBasename(t *testing.T) {
	dir := t.TempDir()
	doc := strings.Replace(profileYAML, "name: test-device\n", "", 1)
	path := filepath.Join(dir, "bench-rig.yml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	caps, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bench-rig", caps.Name)
}

func TestLoadFile_RejectsUnknownExtension(t *testing.T) {
	_, err := LoadFile("profile.toml")
	assert.ErrorContains(t, err, "must be .yaml, .yml or .json")
}

func TestLoadFile_JSON(t *testing.T) {
	dir := t.TempDir()
	caps, err := Load([]byte(profileYAML))
	require.NoError(t, err)

	data := marshalJSON(t, caps)
	path := filepath.Join(dir, "test-device.json")
	require.NoError(t, os.WriteFile(path, data, 0644))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, caps, loaded)
}
