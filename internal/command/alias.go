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

// AliasesCommandAction lists aliases.
func AliasesCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "aliases") {
		return nil
	}

	al := BuildAttrs(cmd, "uid", "alias", "deploymentId", "createdAt::h")
	log.Debugf("attrs: %v", al)

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	raw, err := client.Get(ctx, "/v4/aliases", filters.NativeParams(cmd.String("filter")))
	if err != nil {
		return err
	}

	Emit(raw, al, cmd, "aliases")
	return nil
}

// AliasesCommandBuilder constructs the cli.Command for "aliases".
func AliasesCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "aliases",
		Usage:     "list aliases",
		UsageText: "vercelctl aliases [options]",
		Action:    AliasesCommandAction,
		Meta:      meta,
	}).Build()
}
