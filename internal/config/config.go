// Package config loads plutusladder settings from an optional YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/plutusladder/internal/compiler"
)

// Config holds settings shared by every command.
// Flags given on the command line take precedence over file values.
type Config struct {
	// ModuleName is the Haskell module declared by emitted scripts.
	ModuleName string `yaml:"module_name"`

	// ArtifactDir is where compile --package writes and show reads artifacts.
	ArtifactDir string `yaml:"artifact_dir"`

	// Registry is the path of the build registry database. Empty disables recording.
	Registry string `yaml:"registry"`
}

// DefaultArtifactDir is the artifact directory used when none is configured.
const DefaultArtifactDir = "build"

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ModuleName:  compiler.DefaultModuleName,
		ArtifactDir: DefaultArtifactDir,
	}
}

// Load reads the YAML file at path over Default.
// Unknown keys are rejected. Relative artifact_dir and registry paths are
// resolved against the file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	base := filepath.Dir(path)
	cfg.ArtifactDir = resolve(base, cfg.ArtifactDir)
	cfg.Registry = resolve(base, cfg.Registry)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	if c.ModuleName != "" && !compiler.ValidModuleName(c.ModuleName) {
		return fmt.Errorf("module_name %q is not a valid Haskell module name", c.ModuleName)
	}
	return nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
