// Package config loads the optional linechat YAML file. Command line flags
// take precedence over every value read here.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rectcircle/linechat/internal/variable"
)

// Config holds the linechat configuration file.
type Config struct {
	Host       string `yaml:"host"`
	Port       uint16 `yaml:"port"`
	PrivateKey string `yaml:"private_key"`
	PublicKey  string `yaml:"public_key"`
	Prompt     string `yaml:"prompt"`
	Color      bool   `yaml:"color"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Host:   variable.DefaultHost,
		Port:   variable.DefaultPort,
		Prompt: variable.DefaultPrompt,
		Color:  true,
	}
}

// DefaultPath returns the default config file path: ~/.linechat/config.yaml
func DefaultPath() string {
	return filepath.Join(variable.ConfigBaseDir, variable.ConfigFileName)
}

// KeyPaths returns the key files named by the configuration, a relative path
// is taken from the config directory.
func (c *Config) KeyPaths() (private, public string) {
	return resolve(c.PrivateKey), resolve(c.PublicKey)
}

func resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(variable.ConfigBaseDir, path)
}

// Load reads the configuration from the given YAML file path.
// If the file does not exist, it returns Default() with no error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("%s: port must be in 1..65535", path)
	}
	return cfg, nil
}
