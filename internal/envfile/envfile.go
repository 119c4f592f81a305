// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

// Package envfile reads and writes dotenv-style files: one KEY=value pair
// per line. It is the local half of the env-pull and env-diff commands.
package envfile

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// Var is a single environment variable. Order is preserved end to end;
// the remote listing order is the file order.
type Var struct {
	Key   string
	Value string
}

// Render produces the file body: KEY=value lines with a trailing newline.
// Values are written as-is; the consumer of the file owns any quoting.
func Render(vars []Var) []byte {
	var buf bytes.Buffer
	for _, v := range vars {
		fmt.Fprintf(&buf, "%s=%s\n", v.Key, v.Value)
	}
	return buf.Bytes()
}

// Parse reads a file body back into variables. Blank lines and #-comment
// lines are skipped; everything after the first '=' belongs to the value.
// Lines with no '=' at all are ignored.
func Parse(data []byte) []Var {
	var vars []Var
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found || key == "" {
			continue
		}
		vars = append(vars, Var{Key: key, Value: value})
	}
	return vars
}

// Write renders vars to path, overwriting any existing file. The file may
// hold secrets, so it is not world-readable.
func Write(path string, vars []Var) error {
	if err := os.WriteFile(path, Render(vars), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
