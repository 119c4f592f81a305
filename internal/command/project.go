// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"net/url"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/Lobstash/vercel-plugin/internal/filters"
	"github.com/Lobstash/vercel-plugin/internal/meta"
)

// ProjectsCommandAction is the action handler for the "projects" subcommand.
// It lists the projects visible to the configured token and emits them per
// the common output flags.
func ProjectsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "projects") {
		return nil
	}

	al := BuildAttrs(cmd, "id", "name", "framework", "updatedAt::h")
	log.Debugf("attrs: %v", al)

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	raw, err := client.Get(ctx, "/v9/projects", filters.NativeParams(cmd.String("filter")))
	if err != nil {
		return err
	}

	Emit(raw, al, cmd, "projects")
	return nil
}

// ProjectsCommandBuilder constructs the cli.Command for "projects".
func ProjectsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "projects",
		Usage:     "list projects",
		UsageText: "vercelctl projects [options]",
		Action:    ProjectsCommandAction,
		Meta:      meta,
	}).Build()
}

// ProjectCommandAction fetches a single project by name or id.
func ProjectCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "project") {
		return nil
	}

	args, err := RequireArgs(cmd, "project")
	if err != nil {
		return err
	}

	al := BuildAttrs(cmd, "id", "name", "framework", "updatedAt::h")
	log.Debugf("attrs: %v", al)

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	raw, err := client.Get(ctx, "/v9/projects/"+url.PathEscape(args[0]), nil)
	if err != nil {
		return err
	}

	Emit(raw, al, cmd, "")
	return nil
}

// ProjectCommandBuilder constructs the cli.Command for "project".
func ProjectCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "project",
		Usage:     "show one project",
		UsageText: "vercelctl project <project> [options]",
		Action:    ProjectCommandAction,
		Meta:      meta,
	}).Build()
}

// ProjectAddCommandAction creates a project.
func ProjectAddCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "project-add") {
		return nil
	}

	args, err := RequireArgs(cmd, "name")
	if err != nil {
		return err
	}

	al := BuildAttrs(cmd, "id", "name", "framework")

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	raw, err := client.Post(ctx, "/v9/projects", map[string]any{"name": args[0]})
	if err != nil {
		return err
	}

	Emit(raw, al, cmd, "")
	return nil
}

// ProjectAddCommandBuilder constructs the cli.Command for "project-add".
func ProjectAddCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "project-add",
		Usage:     "create a project",
		UsageText: "vercelctl project-add <name> [options]",
		Action:    ProjectAddCommandAction,
		Meta:      meta,
	}).Build()
}

// ProjectUpdateCommandAction patches project settings. At least one settable
// flag must be given; the body carries only the flags that were.
func ProjectUpdateCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "project-update") {
		return nil
	}

	args, err := RequireArgs(cmd, "project")
	if err != nil {
		return err
	}

	body := map[string]any{}
	if v := cmd.String("name"); v != "" {
		body["name"] = v
	}
	if v := cmd.String("framework"); v != "" {
		body["framework"] = v
	}
	if v := cmd.String("build-command"); v != "" {
		body["buildCommand"] = v
	}
	if len(body) == 0 {
		return errors.New("at least one of --name, --framework or --build-command is required")
	}

	al := BuildAttrs(cmd, "id", "name", "framework")

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	raw, err := client.Patch(ctx, "/v9/projects/"+url.PathEscape(args[0]), body)
	if err != nil {
		return err
	}

	Emit(raw, al, cmd, "")
	return nil
}

// ProjectUpdateCommandBuilder constructs the cli.Command for "project-update".
func ProjectUpdateCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "project-update",
		Usage:     "update project settings",
		UsageText: "vercelctl project-update <project> [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "name",
				Usage: "new project name",
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator)
				},
			},
			&cli.StringFlag{
				Name:  "framework",
				Usage: "framework preset",
			},
			&cli.StringFlag{
				Name:  "build-command",
				Usage: "override build command",
			},
		},
		Action: ProjectUpdateCommandAction,
		Meta:   meta,
	}).Build()
}

// ProjectRmCommandAction deletes a project by name or id.
func ProjectRmCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "project-rm") {
		return nil
	}

	args, err := RequireArgs(cmd, "project")
	if err != nil {
		return err
	}

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	raw, err := client.Delete(ctx, "/v9/projects/"+url.PathEscape(args[0]))
	if err != nil {
		return err
	}

	Emit(raw, BuildAttrs(cmd), cmd, "")
	return nil
}

// ProjectRmCommandBuilder constructs the cli.Command for "project-rm".
func ProjectRmCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "project-rm",
		Usage:     "delete a project",
		UsageText: "vercelctl project-rm <project> [options]",
		Action:    ProjectRmCommandAction,
		Meta:      meta,
	}).Build()
}
