// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

package command

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/Lobstash/vercel-plugin/internal/api"
	"github.com/Lobstash/vercel-plugin/internal/attrs"
	"github.com/Lobstash/vercel-plugin/internal/meta"
	"github.com/Lobstash/vercel-plugin/internal/output"
)

// ActionError marks a failure raised while acting on the API or validating
// an invocation, as opposed to a parse error raised by the CLI runtime.
// main maps the two to different exit codes.
type ActionError struct {
	Err error
}

func (e *ActionError) Error() string { return e.Err.Error() }

func (e *ActionError) Unwrap() error { return e.Err }

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr vercelctl <subcmd>` and returns true so the caller can exit
// early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "vercelctl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// NewClient constructs the API client for this invocation from the threaded
// meta. Missing credentials surface here, before any request is built.
func NewClient(cmd *cli.Command) (*api.Client, error) {
	m := GetMeta(cmd)
	return api.New(m.Config, api.WithHTTPClient(m.HTTPClient))
}

// Emit hands a response document to the common output routine.
func Emit(raw bytes.Buffer, al attrs.AttrList, cmd *cli.Command, parent string) {
	output.SliceDiceSpit(raw, al, cmd, parent, os.Stdout, GetMeta(cmd).Config)
}

// RequireArgs returns the leading positional arguments, erroring with the
// name of the first one that is missing. Extra arguments are ignored.
func RequireArgs(cmd *cli.Command, names ...string) ([]string, error) {
	got := cmd.Args().Slice()
	if len(got) < len(names) {
		return nil, fmt.Errorf("missing required argument <%s>", names[len(got)])
	}
	return got[:len(names)], nil
}

// SplitList splits a comma-separated flag value, trimming whitespace and
// dropping empty entries. Order is preserved.
func SplitList(spec string) []string {
	var out []string
	for _, part := range strings.Split(spec, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CommandBuilder is a helper that constructs a cli.Command for API
// subcommands using a consistent pattern. It accepts the command name, usage
// text, optional UsageText, custom flags, the action handler, and meta. The
// builder automatically wires metadata, adds the tldr flag, applies global
// flags, and sets up validators. Errors returned by the action come back
// wrapped in ActionError.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags: append(cb.Flags, append([]cli.Flag{
			tldrFlag,
		}, NewGlobalFlags(cb.Name, cb.Meta.Config.Source)...)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := cb.Action(ctx, c); err != nil {
				return &ActionError{Err: err}
			}
			return nil
		},
	}
}
