// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"net/url"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/Lobstash/vercel-plugin/internal/filters"
	"github.com/Lobstash/vercel-plugin/internal/meta"
)

// TeamsCommandAction lists the teams the token belongs to.
func TeamsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "teams") {
		return nil
	}

	al := BuildAttrs(cmd, "id", "slug", "name")
	log.Debugf("attrs: %v", al)

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	raw, err := client.Get(ctx, "/v2/teams", filters.NativeParams(cmd.String("filter")))
	if err != nil {
		return err
	}

	Emit(raw, al, cmd, "teams")
	return nil
}

// TeamsCommandBuilder constructs the cli.Command for "teams".
func TeamsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "teams",
		Usage:     "list teams",
		UsageText: "vercelctl teams [options]",
		Action:    TeamsCommandAction,
		Meta:      meta,
	}).Build()
}

// TeamAddCommandAction creates a team from a slug.
func TeamAddCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "team-add") {
		return nil
	}

	args, err := RequireArgs(cmd, "slug")
	if err != nil {
		return err
	}

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	body := map[string]any{"slug": args[0]}
	if name := cmd.String("name"); name != "" {
		body["name"] = name
	}

	raw, err := client.Post(ctx, "/v1/teams", body)
	if err != nil {
		return err
	}

	Emit(raw, BuildAttrs(cmd, "id", "slug"), cmd, "")
	return nil
}

// TeamAddCommandBuilder constructs the cli.Command for "team-add".
func TeamAddCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "team-add",
		Usage:     "create a team",
		UsageText: "vercelctl team-add <slug> [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "name",
				Usage: "display name",
			},
		},
		Action: TeamAddCommandAction,
		Meta:   meta,
	}).Build()
}

// TeamRmCommandAction deletes a team by id.
func TeamRmCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "team-rm") {
		return nil
	}

	args, err := RequireArgs(cmd, "team")
	if err != nil {
		return err
	}

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	raw, err := client.Delete(ctx, "/v1/teams/"+url.PathEscape(args[0]))
	if err != nil {
		return err
	}

	Emit(raw, BuildAttrs(cmd), cmd, "")
	return nil
}

// TeamRmCommandBuilder constructs the cli.Command for "team-rm".
func TeamRmCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "team-rm",
		Usage:     "delete a team",
		UsageText: "vercelctl team-rm <team> [options]",
		Action:    TeamRmCommandAction,
		Meta:      meta,
	}).Build()
}
