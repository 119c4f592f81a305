// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT
// no-cloc

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Lobstash/vercel-plugin/internal/command"
	"github.com/Lobstash/vercel-plugin/internal/config"
	"github.com/Lobstash/vercel-plugin/internal/meta"
)

func setConfig() config.Config {
	return config.Config{Data: map[string]interface{}{
		"deployments": map[string]interface{}{
			"defaults": []interface{}{"--limit 5", "--output table"},
			"wide":     []interface{}{"--limit 100"},
		},
	}}
}

func TestMangleArguments_InjectsDefaultSet(t *testing.T) {
	got := mangleArguments([]string{"vercelctl", "deployments", "--project", "web"}, setConfig())
	assert.Equal(t,
		[]string{"vercelctl", "deployments", "--limit", "5", "--output", "table", "--project", "web"},
		got)
}

func TestMangleArguments_ExplicitSetWinsAndIsRemoved(t *testing.T) {
	got := mangleArguments([]string{"vercelctl", "deployments", "@wide", "--project", "web"}, setConfig())
	assert.Equal(t,
		[]string{"vercelctl", "deployments", "--limit", "100", "--project", "web"},
		got)
}

func TestMangleArguments_UnknownSetInjectsNothing(t *testing.T) {
	got := mangleArguments([]string{"vercelctl", "deployments", "@absent"}, setConfig())
	assert.Equal(t, []string{"vercelctl", "deployments"}, got)
}

func TestMangleArguments_NoConfigPassesThrough(t *testing.T) {
	got := mangleArguments([]string{"vercelctl", "projects", "--output", "yaml"}, config.Config{})
	assert.Equal(t, []string{"vercelctl", "projects", "--output", "yaml"}, got)
}

func TestMangleArguments_HelpShortCircuits(t *testing.T) {
	got := mangleArguments([]string{"vercelctl", "deployments", "--project", "web", "--help"}, setConfig())
	assert.Equal(t, []string{"vercelctl", "deployments", "--help"}, got)
}

func TestKnownCommand(t *testing.T) {
	app := command.InitApp(meta.Meta{})

	assert.True(t, knownCommand(app, "projects"))
	assert.True(t, knownCommand(app, "env-pull"))
	assert.True(t, knownCommand(app, "completion"))
	assert.True(t, knownCommand(app, "help"))
	assert.False(t, knownCommand(app, "teleport"))
}
