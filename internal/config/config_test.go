package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
portview:
  numeric_sort: true
filemover:
  default_extension: jpg
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.PortView.NumericSort)
	assert.Equal(t, "logs/port_checker.log", cfg.PortView.LogFile)
	assert.Equal(t, "/proc", cfg.PortView.ProcRoot)
	assert.Equal(t, "jpg", cfg.FileMover.DefaultExtension)
}

func TestLoadEmptyFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, "portview:\n  colour: red\n"))
	assert.Error(t, err)
}

func TestResolvePortLogPath(t *testing.T) {
	t.Parallel()

	abs := filepath.Join(t.TempDir(), "x.log")
	got, err := ResolvePortLogPath(abs)
	require.NoError(t, err)
	assert.Equal(t, abs, got)

	wd, err := os.Getwd()
	require.NoError(t, err)
	got, err = ResolvePortLogPath("logs/port_checker.log")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "logs", "port_checker.log"), got)
}
