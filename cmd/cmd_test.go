package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so tests do not leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "preprocess.ini")
	output := filepath.Join(dir, "output.csv")
	require.NoError(t, os.WriteFile(input, []byte("[db]\nhost = localhost\nport = 5432\n[cache]\nhost = 127.0.0.1\n"), 0o644))
	stale := filepath.Join(dir, ".output.csv.0000.tmp")
	require.NoError(t, os.WriteFile(stale, nil, 0o644))

	out, err := execute(t, "convert", "--config", filepath.Join(dir, "none.yaml"), "--no-color",
		"-i", input, "-o", output)

	// An explicit --config must exist.
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrConfig))

	out, err = execute(t, "convert", "--no-color", "-i", input, "-o", output)

	require.NoError(t, err)
	assert.Contains(t, out, "=== Conversion Complete ===")
	assert.Contains(t, out, "Encoding used: utf-8")
	assert.Contains(t, out, "Sections:      2")
	assert.Contains(t, out, "Unique keys:   2")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "Section,host,port\r\ndb,localhost,5432\r\ncache,127.0.0.1,\r\n", string(data))
	assert.NoFileExists(t, stale)
}

func TestConvertCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.ini")
	output := filepath.Join(dir, "out.csv")
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(input, nil, 0o644))
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"input_file: "+input+"\noutput_file: "+output+"\nallow_empty: true\nno_color: true\n"), 0o644))

	_, err := execute(t, "convert", "--config", cfgPath)

	require.NoError(t, err)
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "Section\r\n", string(data))
}

func TestConvertCommand_Unreadable(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "empty.ini")
	output := filepath.Join(dir, "output.csv")
	require.NoError(t, os.WriteFile(input, nil, 0o644))

	_, err := execute(t, "convert", "--no-color", "-i", input, "-o", output)

	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnreadableConfig))
	assert.NoFileExists(t, output)
}

func TestConvertCommand_SameInputAndOutput(t *testing.T) {
	_, err := execute(t, "convert", "-i", "a.ini", "-o", "a.ini")

	assert.Error(t, err)
}

func TestInspectCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "app.ini")
	require.NoError(t, os.WriteFile(input, []byte("[a]\nx = 1\ny = 2\n[b]\nz = 3\n"), 0o644))

	out, err := execute(t, "inspect", "--no-color", "-i", input)

	require.NoError(t, err)
	assert.Contains(t, out, "[a] 2 key(s)")
	assert.Contains(t, out, "[b] 1 key(s)")
	assert.Contains(t, out, "Unique keys:   3")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "INI to CSV Converter")
	assert.Contains(t, out, "Version:    "+Version)
}
