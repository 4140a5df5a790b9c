//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults verifies that an empty path returns the defaults.
func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.NoError(t, cfg.Validate())
}

// TestLoad_YAMLOverlay verifies that YAML fields override defaults and unset fields keep them.
func TestLoad_YAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bleu.yaml")
	require.NoError(t, os.WriteFile(path, []byte("maxOrder: 2\nweights: [0.7, 0.3]\nrefPattern: \"*.txt\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.MaxOrder)
	assert.Equal(t, []float64{0.7, 0.3}, cfg.Weights)
	assert.Equal(t, "*.txt", cfg.RefPattern)
	assert.Equal(t, "bleu_out.txt", cfg.Output)
}

// TestLoad_Errors verifies missing and malformed files.
func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("maxOrder: [\n"), 0o644))
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

// TestApplyEnv verifies overrides from the process environment and a .env file.
func TestApplyEnv(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("BLEU_MAX_ORDER=3\nBLEU_OUTPUT=from-file.txt\nBLEU_WEIGHTS=0.5, 0.25,0.25\n"), 0o644))
	t.Setenv(EnvOutput, "from-env.txt")
	t.Setenv(EnvWorkers, "8")

	vars, err := ReadEnvFile(envPath, false)
	require.NoError(t, err)
	cfg := Defaults()
	require.NoError(t, cfg.ApplyEnv(Lookup(vars)))
	assert.Equal(t, 3, cfg.MaxOrder)
	assert.Equal(t, "from-env.txt", cfg.Output)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, []float64{0.5, 0.25, 0.25}, cfg.Weights)
}

// TestApplyEnv_Invalid verifies that malformed numbers are rejected.
func TestApplyEnv_Invalid(t *testing.T) {
	cfg := Defaults()
	err := cfg.ApplyEnv(Lookup(map[string]string{EnvMaxOrder: "four"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvMaxOrder)

	err = cfg.ApplyEnv(Lookup(map[string]string{EnvWeights: "0.5,x"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvWeights)
}

// TestReadEnvFile_Optional verifies that a missing optional file is not an error.
func TestReadEnvFile_Optional(t *testing.T) {
	missing := filepath.Join(t.TempDir(), ".env")
	vars, err := ReadEnvFile(missing, true)
	require.NoError(t, err)
	assert.Empty(t, vars)

	_, err = ReadEnvFile(missing, false)
	assert.Error(t, err)
}

// TestValidate verifies order, output and worker checks.
func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.Output = ""
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.Workers = 0
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.MaxOrder = 0
	assert.Error(t, cfg.Validate())
}
