// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the production API endpoint used when VERCEL_API_URL
// is not set.
const DefaultBaseURL = "https://api.vercel.com"

// Environment variables consumed at start-up. The token and team scope are
// credentials and are never read from the config file.
const (
	EnvToken   = "VERCEL_TOKEN"
	EnvTeam    = "VERCEL_TEAM_ID"
	EnvBaseURL = "VERCEL_API_URL"
	EnvCfg     = "VERCELCTL_CFG"
)

// Config is the explicit configuration value constructed once at process
// entry and threaded by parameter into every operation. It is never stored
// as package-global state.
type Config struct {
	// Token is the bearer credential attached to every request. Empty means
	// unauthenticated; any command that builds a request must refuse to run.
	Token string
	// Team is the optional scope identifier. When set it is applied as the
	// teamId query parameter on every request.
	Team string
	// BaseURL is the API endpoint.
	BaseURL string
	// Source is the path of the optional vercelctl.yaml defaults file, empty
	// when none was found. Flag value-source chains read it by path.
	Source string
	// Data holds the parsed contents of Source.
	Data map[string]interface{}
}

// Load reads credentials from the environment and the optional defaults
// file from its standard locations. A missing or unparsable defaults file
// is not an error; credentials are validated later, when a request is
// about to be built.
func Load() Config {
	cfg := Config{
		Token:   os.Getenv(EnvToken),
		Team:    os.Getenv(EnvTeam),
		BaseURL: os.Getenv(EnvBaseURL),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	path, err := findConfigPath()
	if err != nil {
		log.Debugf("no defaults file: %v", err)
		return cfg
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warnf("failed to read %s: %v", path, err)
		return cfg
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		log.Warnf("failed to parse %s: %v", path, err)
		return cfg
	}

	cfg.Source = path
	cfg.Data = data
	return cfg
}

// GetString traverses Data using a dotted key path, falling back to the
// provided default when the path is absent or not a string.
func (cfg Config) GetString(kspec string, defaultValue string) string {
	val, ok := cfg.get(kspec)
	if !ok {
		return defaultValue
	}
	s, ok := val.(string)
	if !ok {
		return defaultValue
	}
	return s
}

// GetInt traverses Data using a dotted key path, falling back to the
// provided default when the path is absent or not numeric.
func (cfg Config) GetInt(kspec string, defaultValue int) int {
	val, ok := cfg.get(kspec)
	if !ok {
		return defaultValue
	}

	// YAML numbers may be unmarshaled as int/float64 depending on content.
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return defaultValue
	}
}

// GetStringSlice traverses Data using a dotted key path and returns the
// sequence found there as strings. Absent paths and scalar values yield nil.
func (cfg Config) GetStringSlice(kspec string) []string {
	val, ok := cfg.get(kspec)
	if !ok {
		return nil
	}

	switch v := val.(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil
			}
			out = append(out, s)
		}
		return out
	default:
		return nil
	}
}

func (cfg Config) get(kspec string) (any, bool) {
	if len(cfg.Data) == 0 {
		return nil, false
	}

	var current interface{} = cfg.Data
	for _, key := range strings.Split(kspec, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// findConfigPath locates vercelctl.yaml. VERCELCTL_CFG overrides the
// standard search, which walks XDG_CONFIG_HOME, APPDATA and HOME.
func findConfigPath() (string, error) {
	if override := os.Getenv(EnvCfg); override != "" {
		if fi, err := os.Stat(override); err == nil && !fi.IsDir() {
			return override, nil
		}
	}

	candidates := []string{
		os.Getenv("XDG_CONFIG_HOME"),
		os.Getenv("APPDATA"),
		os.Getenv("HOME"),
	}

	for _, c := range candidates {
		if c == "" {
			continue
		}
		file := filepath.Join(c, "vercelctl.yaml")
		if fi, err := os.Stat(file); err == nil && !fi.IsDir() {
			log.Debugf("using defaults file: %s", file)
			return file, nil
		}
	}
	return "", os.ErrNotExist
}
