// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/Lobstash/vercel-plugin/internal/filters"
	"github.com/Lobstash/vercel-plugin/internal/meta"
)

// UsageCommandAction fetches the account or team usage document. The shape
// varies by plan, so there are no default columns; use --attrs to project
// fields in table output.
func UsageCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "usage") {
		return nil
	}

	al := BuildAttrs(cmd)
	log.Debugf("attrs: %v", al)

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	raw, err := client.Get(ctx, "/v1/usage", filters.NativeParams(cmd.String("filter")))
	if err != nil {
		return err
	}

	Emit(raw, al, cmd, "")
	return nil
}

// UsageCommandBuilder constructs the cli.Command for "usage".
func UsageCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "usage",
		Usage:     "show usage for the current scope",
		UsageText: "vercelctl usage [options]",
		Action:    UsageCommandAction,
		Meta:      meta,
	}).Build()
}
