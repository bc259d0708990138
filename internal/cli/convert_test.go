package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureConvert(t *testing.T) *[]*ConvertConfig {
	t.Helper()
	var captured []*ConvertConfig
	convertRunner = func(ctx context.Context, cfg *ConvertConfig) error {
		captured = append(captured, cfg)
		return nil
	}
	t.Cleanup(func() { convertRunner = runConvert })
	return &captured
}

func execRoot(t *testing.T, args ...string) error {
	t.Helper()
	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.Execute()
}

func TestConvertConfigDefaults(t *testing.T) {
	captured := captureConvert(t)

	require.NoError(t, execRoot(t, "convert", "--input", "capture.har"))
	require.Len(t, *captured, 1)

	cfg := (*captured)[0]
	assert.Equal(t, "capture.har", cfg.Input)
	assert.Equal(t, "openapi.yaml", cfg.Out)
	assert.Equal(t, "/api", cfg.PathPrefix)
	assert.Empty(t, cfg.Format)
	assert.False(t, cfg.DryRun)
}

func TestConvertConfigFromFlags(t *testing.T) {
	captured := captureConvert(t)

	require.NoError(t, execRoot(t,
		"--verbose",
		"convert",
		"--input", "capture.har",
		"--out", "spec.json",
		"--path-prefix", "/v2",
		"--title", "Orders API",
		"--api-version", "2.0.0",
		"--server", "https://orders.example.com",
		"--format", "json",
		"--dry-run",
	))
	require.Len(t, *captured, 1)

	cfg := (*captured)[0]
	assert.Equal(t, "capture.har", cfg.Input)
	assert.Equal(t, "spec.json", cfg.Out)
	assert.Equal(t, "/v2", cfg.PathPrefix)
	assert.Equal(t, "Orders API", cfg.Title)
	assert.Equal(t, "2.0.0", cfg.APIVersion)
	assert.Equal(t, "https://orders.example.com", cfg.Server)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.DryRun)
	assert.True(t, cfg.Verbose)
}

func TestConvertConfigPrecedence(t *testing.T) {
	captured := captureConvert(t)

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	configContent := `input: from-config.har
out: from-config.yaml
path-prefix: /internal
title: Config API
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o600))

	require.NoError(t, execRoot(t,
		"--config", configPath,
		"convert",
		"--input", "from-flag.har",
	))
	require.Len(t, *captured, 1)

	cfg := (*captured)[0]
	// Flags override the config file; untouched fields keep file values.
	assert.Equal(t, "from-flag.har", cfg.Input)
	assert.Equal(t, "from-config.yaml", cfg.Out)
	assert.Equal(t, "/internal", cfg.PathPrefix)
	assert.Equal(t, "Config API", cfg.Title)
}

func TestConvertConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"missing input", []string{"convert"}},
		{"bad prefix", []string{"convert", "--input", "c.har", "--path-prefix", "api"}},
		{"bad format", []string{"convert", "--input", "c.har", "--format", "toml"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			captureConvert(t)
			err := execRoot(t, tc.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUsage)
		})
	}
}

func TestConvertMissingCapture(t *testing.T) {
	err := execRoot(t, "convert", "--input", filepath.Join(t.TempDir(), "missing.har"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, err.Error(), "read file")
}
