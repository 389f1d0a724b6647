package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load reads the configuration at path, which may be a config.yaml file or
// the directory holding one. Missing fields keep their defaults.
func Load(fs afero.Fs, path string) (*Configuration, error) {
	if isDir, err := afero.IsDir(fs, path); err == nil && isDir {
		path = filepath.Join(path, ConfigurationName)
	}

	configContents, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	out := Default()
	if err := yaml.UnmarshalStrict(configContents, out); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// Initialize writes the default configuration into dir. An existing
// configuration is left alone.
func Initialize(fs afero.Fs, dir string, logger *log.Logger) error {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path := filepath.Join(dir, ConfigurationName)
	switch exists, err := afero.Exists(fs, path); {
	case err != nil:
		return err
	case exists:
		logger.Printf("%s already exists, skipping", path)
		return nil
	}

	logger.Printf("Writing %s", path)
	return afero.WriteFile(fs, path, defaultConfigData, os.FileMode(0644))
}
