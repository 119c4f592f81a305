// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT
// no-cloc

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pointAtTestdata forces Load to pick up the testdata defaults file and
// keeps the host environment from leaking in.
func pointAtTestdata(t *testing.T) {
	t.Helper()

	abs, err := filepath.Abs(filepath.Join("testdata", "vercelctl.yaml"))
	require.NoError(t, err)

	t.Setenv(EnvCfg, abs)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("APPDATA", "")
	t.Setenv("HOME", t.TempDir())
}

func TestLoadCredentialsFromEnv(t *testing.T) {
	pointAtTestdata(t)
	t.Setenv(EnvToken, "tok_123")
	t.Setenv(EnvTeam, "team_abc")
	t.Setenv(EnvBaseURL, "")

	cfg := Load()
	assert.Equal(t, "tok_123", cfg.Token)
	assert.Equal(t, "team_abc", cfg.Team)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
}

func TestLoadBaseURLOverride(t *testing.T) {
	pointAtTestdata(t)
	t.Setenv(EnvToken, "tok_123")
	t.Setenv(EnvBaseURL, "https://vercel.example.test")

	cfg := Load()
	assert.Equal(t, "https://vercel.example.test", cfg.BaseURL)
}

func TestLoadMissingToken(t *testing.T) {
	pointAtTestdata(t)
	t.Setenv(EnvToken, "")
	t.Setenv(EnvTeam, "")

	cfg := Load()
	assert.Empty(t, cfg.Token)
	assert.Empty(t, cfg.Team)
}

func TestLoadDefaultsFile(t *testing.T) {
	pointAtTestdata(t)
	t.Setenv(EnvToken, "tok_123")

	cfg := Load()
	require.NotEmpty(t, cfg.Source)
	assert.Equal(t, "table", cfg.GetString("output", "json"))
	assert.Equal(t, 25, cfg.GetInt("deployments.limit", 10))
	assert.Equal(t, "preview", cfg.GetString("env-add.env", "production"))
	assert.Equal(t, []string{"--limit", "5", "--output", "table"}, cfg.GetStringSlice("deployments.defaults"))
}

func TestLoadNoDefaultsFile(t *testing.T) {
	t.Setenv(EnvCfg, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("APPDATA", "")
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvToken, "tok_123")

	cfg := Load()
	assert.Empty(t, cfg.Source)
	assert.Empty(t, cfg.Data)
}

func TestGetStringFallbacks(t *testing.T) {
	cfg := Config{Data: map[string]interface{}{
		"output": "yaml",
		"colors": map[string]interface{}{"title": "#f6be00"},
		"limit":  10,
	}}

	tests := []struct {
		name string
		key  string
		def  string
		want string
	}{
		{name: "top level hit", key: "output", def: "json", want: "yaml"},
		{name: "nested hit", key: "colors.title", def: "", want: "#f6be00"},
		{name: "absent key", key: "nope", def: "json", want: "json"},
		{name: "absent nested", key: "colors.nope", def: "x", want: "x"},
		{name: "wrong type", key: "limit", def: "json", want: "json"},
		{name: "traverse through scalar", key: "output.deep", def: "d", want: "d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.GetString(tt.key, tt.def))
		})
	}
}

func TestGetIntFallbacks(t *testing.T) {
	cfg := Config{Data: map[string]interface{}{
		"padding": 2,
		"ratio":   1.5,
		"name":    "x",
	}}

	assert.Equal(t, 2, cfg.GetInt("padding", 0))
	assert.Equal(t, 1, cfg.GetInt("ratio", 0))
	assert.Equal(t, 7, cfg.GetInt("missing", 7))
	assert.Equal(t, 7, cfg.GetInt("name", 7))
}

func TestGetStringSlice(t *testing.T) {
	cfg := Config{Data: map[string]interface{}{
		"deployments": map[string]interface{}{
			"defaults": []interface{}{"--limit", "5"},
			"mixed":    []interface{}{"--limit", 5},
		},
		"output": "json",
	}}

	assert.Equal(t, []string{"--limit", "5"}, cfg.GetStringSlice("deployments.defaults"))
	assert.Nil(t, cfg.GetStringSlice("deployments.mixed"))
	assert.Nil(t, cfg.GetStringSlice("deployments.missing"))
	assert.Nil(t, cfg.GetStringSlice("output"))
}

func TestGetOnEmptyConfig(t *testing.T) {
	cfg := Config{}
	assert.Equal(t, "json", cfg.GetString("output", "json"))
	assert.Equal(t, 10, cfg.GetInt("deployments.limit", 10))
}
