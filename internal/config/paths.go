package config

import (
	"os"
	"path/filepath"
)

const appName = "deskutils"

// ConfigBasePath is the per-user configuration directory.
func ConfigBasePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appName)
	}

	homedir, err := os.UserHomeDir()
	if err != nil {
		homedir = os.TempDir()
	}
	return filepath.Join(homedir, ".config", appName)
}

// DefaultConfigFile is where Load looks when no explicit path is given.
func DefaultConfigFile() string {
	return filepath.Join(ConfigBasePath(), "config.yaml")
}

// ResolvePortLogPath makes a relative log path relative to the working
// directory, the way the port viewer has always written logs/port_checker.log.
func ResolvePortLogPath(p string) (string, error) {
	if filepath.IsAbs(p) {
		return p, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, p), nil
}
