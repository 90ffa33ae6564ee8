package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPath = "config.yaml"
	EnvPath     = "YAML2NAMES_CONFIG"
)

type ExportConfig struct {
	YoloPath  string `yaml:"yoloPath"`
	Format    string `yaml:"format"`
	InputSize int    `yaml:"inputSize"`
}

// Config is the optional config.yaml shared by yaml2names and ptexport.
type Config struct {
	LogMode             string       `yaml:"logMode"`
	LogLevel            string       `yaml:"logLevel"`
	MetricsFile         string       `yaml:"metricsFile"`
	FetchTimeoutSeconds int          `yaml:"fetchTimeoutSeconds"`
	Export              ExportConfig `yaml:"export"`
}

func Default() Config {
	return Config{
		LogMode:             "production",
		LogLevel:            "warn",
		FetchTimeoutSeconds: 10,
		Export: ExportConfig{
			Format:    "onnx",
			InputSize: 640,
		},
	}
}

// FetchTimeout is the HTTP timeout for URL inputs.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// Resolve picks the config path: an explicit flag value, then $YAML2NAMES_CONFIG,
// then config.yaml in the working directory. explicit reports whether the file must exist.
func Resolve(flagPath string) (path string, explicit bool) {
	if flagPath != "" {
		return flagPath, true
	}
	if env := os.Getenv(EnvPath); env != "" {
		return env, true
	}
	return DefaultPath, false
}

// Load reads path over the defaults. A missing file is only an error when required.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.FetchTimeoutSeconds <= 0 {
		cfg.FetchTimeoutSeconds = Default().FetchTimeoutSeconds
	}
	if cfg.Export.Format == "" {
		cfg.Export.Format = Default().Export.Format
	}
	if cfg.Export.InputSize <= 0 {
		cfg.Export.InputSize = Default().Export.InputSize
	}
	return cfg, nil
}
