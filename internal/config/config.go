// Package config loads the optional YAML settings shared by portview and
// filemover. A missing file is not an error; defaults apply.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	PortView  PortViewConfig  `yaml:"portview"`
	FileMover FileMoverConfig `yaml:"filemover"`
}

type PortViewConfig struct {
	LogFile     string `yaml:"log_file"`
	NumericSort bool   `yaml:"numeric_sort"`
	ProcRoot    string `yaml:"proc_root"`
}

type FileMoverConfig struct {
	DefaultExtension string `yaml:"default_extension"`
}

func Default() Config {
	return Config{
		PortView: PortViewConfig{
			LogFile:  "logs/port_checker.log",
			ProcRoot: "/proc",
		},
		FileMover: FileMoverConfig{
			DefaultExtension: "png",
		},
	}
}

// Load reads path, or DefaultConfigFile when path is empty. Fields absent
// from the file keep their defaults. Only an explicitly named file has to
// exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.PortView.LogFile == "" {
		c.PortView.LogFile = def.PortView.LogFile
	}
	if c.PortView.ProcRoot == "" {
		c.PortView.ProcRoot = def.PortView.ProcRoot
	}
	if c.FileMover.DefaultExtension == "" {
		c.FileMover.DefaultExtension = def.FileMover.DefaultExtension
	}
}
