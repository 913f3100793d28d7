package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "kinetic version "))
}

func TestCompileCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
triggers:
  - name: fade
    states:
      hidden: {opacity: "0"}
      shown: {opacity: "1"}
    transitions:
      - expr: "hidden => shown"
        steps:
          - animate: 150
`), 0o644))

	out, err := execute(t, "compile", "-f", path, "--from", "hidden", "--to", "shown", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"duration_ms": 150`)
	assert.Contains(t, out, `"opacity": "1"`)
}

func TestUnknownCommand(t *testing.T) {
	_, err := execute(t, "bogus")
	assert.Error(t, err)
}
