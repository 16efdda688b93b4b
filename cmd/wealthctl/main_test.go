package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		exportTable, exportOut = "all", ""
		validateJSON = false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestValidateSubcommand(t *testing.T) {
	out, err := run(t, "validate", "--json")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, `{"ok":true`))
}

func TestExportSubcommand(t *testing.T) {
	out, err := run(t, "export", "--table", "historical")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "Year,"))

	_, err = run(t, "export", "--table", "nope")
	var exit exitError
	require.True(t, errors.As(err, &exit))
	require.Equal(t, 1, exit.code)
}

func TestRenderSubcommand(t *testing.T) {
	out, err := run(t, "render")
	require.NoError(t, err)
	require.Contains(t, out, "Global Wealth Distribution Dashboard")
}
