package config

import (
	_ "embed"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Configuration struct {
	Banner []string `json:"banner"`
	Prompt string   `json:"prompt" validate:"required"`

	FileViewer string `json:"file_viewer" validate:"required"` // Opens a lone regular file, e.g. "./qcat".
	DirViewer  string `json:"dir_viewer" validate:"required"`  // Opens a lone directory, e.g. "./lls".

	// FatalSpawnErrors quits the shell when a program can't be started
	// rather than reporting it and reading the next line.
	FatalSpawnErrors bool `json:"fatal_spawn_errors"`

	Color    string `json:"color" validate:"oneof=auto always never"`
	AppLog   string `json:"app_log"`
	LogLevel string `json:"log_level" validate:"oneof=debug info warn error"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// DefaultData returns the contents of the default config.yaml.
func DefaultData() []byte {
	return append([]byte(nil), defaultConfigData...)
}

// Default returns the built-in configuration.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
