package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevicesCommand(t *testing.T) {
	buf := captureOutput(t)

	err := runDevices(nil)
	require.NoError(t, err)
	assert.Equal(t, "default\n", buf.String())
}

func TestDevicesCommand_ProfileDirectory(t *testing.T) {
	buf := captureOutput(t)
	dir := t.TempDir()
	writeFile(t, dir, "tiny.yaml", tinyProfileYAML)

	err := runDevices([]string{"-profiles", dir})
	require.NoError(t, err)
	assert.Equal(t, "default\ntiny\n", buf.String())
}

func TestDevicesCommand_BadProfileDirectory(t *testing.T) {
	captureOutput(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("{not yaml"), 0644))

	err := runDevices([]string{"-profiles", dir})
	assert.Error(t, err)
}
