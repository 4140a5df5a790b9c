//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package config loads command configuration from YAML, .env files and the environment.
// Precedence, lowest first: defaults, YAML file, .env file, process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvMaxOrder   = "BLEU_MAX_ORDER"
	EnvWeights    = "BLEU_WEIGHTS"
	EnvOutput     = "BLEU_OUTPUT"
	EnvJSONReport = "BLEU_JSON_REPORT"
	EnvRefPattern = "BLEU_REF_PATTERN"
	EnvWorkers    = "BLEU_WORKERS"
	EnvLogLevel   = "BLEU_LOG_LEVEL"
)

// DefaultEnvFile is the .env file read when present and no other file is given.
const DefaultEnvFile = ".env"

// Config holds scoring and output settings.
type Config struct {
	// MaxOrder is the highest n-gram order N.
	MaxOrder int `yaml:"maxOrder"`
	// Weights holds one weight per order; empty means uniform.
	Weights []float64 `yaml:"weights,omitempty"`
	// Output is the score file path.
	Output string `yaml:"output"`
	// JSONReport is the JSON report path; empty disables the report.
	JSONReport string `yaml:"jsonReport,omitempty"`
	// RefPattern selects files inside a reference directory.
	RefPattern string `yaml:"refPattern"`
	// Workers is the batch pool size used for candidate directories.
	Workers int `yaml:"workers"`
	// LogLevel is one of debug, info, warn, error, fatal.
	LogLevel string `yaml:"logLevel"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		MaxOrder:   4,
		Output:     "bleu_out.txt",
		RefPattern: "*",
		Workers:    4,
		LogLevel:   "info",
	}
}

// Load returns the defaults overlaid with the YAML file at path.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// ReadEnvFile returns the variables of a .env file.
// A missing file yields no variables when optional is true.
func ReadEnvFile(path string, optional bool) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return vars, nil
}

// Lookup resolves a variable from the process environment, then from file.
func Lookup(file map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}
}

// ApplyEnv overrides fields from BLEU_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvMaxOrder); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxOrder, err)
		}
		c.MaxOrder = n
	}
	if v, ok := lookup(EnvWeights); ok {
		weights, err := ParseWeights(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWeights, err)
		}
		c.Weights = weights
	}
	if v, ok := lookup(EnvOutput); ok {
		c.Output = v
	}
	if v, ok := lookup(EnvJSONReport); ok {
		c.JSONReport = v
	}
	if v, ok := lookup(EnvRefPattern); ok {
		c.RefPattern = v
	}
	if v, ok := lookup(EnvWorkers); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		c.Workers = n
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = v
	}
	return nil
}

// ParseWeights parses a comma-separated weight list such as "0.25,0.25,0.25,0.25".
// An empty string yields nil.
func ParseWeights(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	weights := make([]float64, 0, len(parts))
	for _, part := range parts {
		w, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q: %w", part, err)
		}
		weights = append(weights, w)
	}
	return weights, nil
}

// Validate checks settings that the scorer does not check itself.
func (c *Config) Validate() error {
	if c.MaxOrder < 1 {
		return fmt.Errorf("maxOrder must be at least 1, got %d", c.MaxOrder)
	}
	if c.Output == "" {
		return errors.New("output path is empty")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0, got %d", c.Workers)
	}
	return nil
}
