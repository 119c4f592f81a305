// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

// Package output provides sorting, filtering, and emission utilities used by
// commands to present API responses in various formats.
package output
