// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads the per-application settings file that selects
// the rendering backend.
//
// The file lives at <user config dir>/<app name>/present.toml and is
// created with defaults on first run:
//
//	renderer = "vulkan"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/present"
)

// FileName is the name of the settings file inside the application's
// configuration directory.
const FileName = "present.toml"

// DefaultRenderer is the backend selected when no file exists yet.
const DefaultRenderer = "vulkan"

// ErrEmptyAppName is returned when the application name cannot form a
// configuration directory.
var ErrEmptyAppName = errors.New("config: empty application name")

// Config holds the persisted application settings.
type Config struct {
	// Renderer selects the rendering backend by registry name.
	Renderer string `toml:"renderer"`
}

// Default returns the settings written on first run.
func Default() Config {
	return Config{Renderer: DefaultRenderer}
}

// Validate checks the backend selector against the registered backends.
func (c Config) Validate() error {
	if !present.IsRegistered(c.Renderer) {
		return fmt.Errorf("config: renderer %q: %w", c.Renderer, present.ErrUnknownBackend)
	}
	return nil
}

// Dir returns the configuration directory for appName.
func Dir(appName string) (string, error) {
	if appName == "" {
		return "", ErrEmptyAppName
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve user config dir: %w", err)
	}
	return filepath.Join(base, appName), nil
}

// Load reads the settings file at path. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, replacing any existing file.
func Save(path string, cfg Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// LoadOrCreate loads the settings file for appName, creating the
// directory and a default file first if they do not exist.
func LoadOrCreate(appName string) (Config, string, error) {
	dir, err := Dir(appName)
	if err != nil {
		return Config{}, "", err
	}
	cfg, err := loadOrCreateIn(dir)
	return cfg, filepath.Join(dir, FileName), err
}

func loadOrCreateIn(dir string) (Config, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return Config{}, fmt.Errorf("config: create %s: %w", dir, err)
	}
	path := filepath.Join(dir, FileName)
	_, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		present.Logger().Info("config: initializing", "path", path)
		cfg := Default()
		if err := Save(path, cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	case err != nil:
		return Config{}, fmt.Errorf("config: stat %s: %w", path, err)
	}
	return Load(path)
}
