package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config is the cadenza configuration file
// (~/.config/cadenza/config.yaml). Pointer fields distinguish "not set"
// from zero values.
type Config struct {
	Model      string `yaml:"model"`
	Method     string `yaml:"method"`
	BufferSize *int   `yaml:"buffer_size"`
	BlockSize  *int   `yaml:"block_size"`
	GPU        *bool  `yaml:"gpu"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "cadenza", "config.yaml")
}

// loadConfig reads the config file. A missing or unreadable file yields a
// zero Config.
func loadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// applyConfig applies config file defaults wherever the corresponding CLI
// flag was not explicitly set.
func applyConfig(c *cli.Command, cfg Config) {
	if cfg.Model != "" && !c.IsSet("model") {
		modelPath = cfg.Model
	}
	if cfg.Method != "" && !c.IsSet("method") {
		method = cfg.Method
	}
	if cfg.BufferSize != nil && !c.IsSet("buffer-size") {
		bufferSize = *cfg.BufferSize
	}
	if cfg.BlockSize != nil && !c.IsSet("block-size") {
		blockSize = *cfg.BlockSize
	}
	if cfg.GPU != nil && !c.IsSet("gpu") {
		useGPU = *cfg.GPU
	}
}
