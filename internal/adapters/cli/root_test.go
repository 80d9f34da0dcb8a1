package cli_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/ficsit-planner-go/internal/adapters/cli"
)

func TestRootCommand_PassesContextToCatalogLoad(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("logging:\n  level: error\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tests := [][]string{
		{"plan", "Screw", "--rate", "10"},
		{"items"},
	}

	for _, args := range tests {
		t.Run(args[0], func(t *testing.T) {
			root := cli.NewRootCommand()
			root.SetOut(io.Discard)
			root.SetErr(io.Discard)
			root.SetArgs(append(args, "--config", configFile, "--catalog", filepath.Join(dir, "catalog.yaml")))

			// Act
			err := root.ExecuteContext(ctx)

			// Assert - a live context would fail on the missing catalog file instead
			require.Error(t, err)
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}
