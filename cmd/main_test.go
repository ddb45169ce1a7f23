package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir is a stand-in for testing.T.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestRootCmd_StrategyFlagsRequireRegex(t *testing.T) {
	chdir(t, t.TempDir())

	tests := []struct {
		name string
		args []string
	}{
		{"merge-dir", []string{"--merge-dir", "out"}},
		{"merge-file", []string{"--merge-file", "all.conf"}},
		{"exclude", []string{"--exclude", "skip.properties"}},
		{"newlines", []string{"--newlines", "0"}},
		{"no-delete", []string{"--no-delete"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "--"+tt.name+" has no effect without --regex")
		})
	}
}

func TestRootCmd_StrategyFlagsAcceptedWithRegex(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--regex", `(.*)\.txt`, "--merge-dir", "out", "--no-delete", "--skip"})

	require.NoError(t, cmd.Execute())
}
