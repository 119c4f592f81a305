// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

// Package command defines the CLI command set for vercelctl. It wires flags,
// validators, actions, and shell completion for subcommands.
package command
