// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"net/url"
	"strconv"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/Lobstash/vercel-plugin/internal/filters"
	"github.com/Lobstash/vercel-plugin/internal/meta"
)

// DeploymentsCommandAction is the action handler for the "deployments"
// subcommand. With --project it narrows the listing to one project,
// resolving the name to an id first.
func DeploymentsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "deployments") {
		return nil
	}

	al := BuildAttrs(cmd, "uid", "name", "state", "target", "url", "created::h")
	log.Debugf("attrs: %v", al)

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	query := filters.NativeParams(cmd.String("filter"))
	query.Set("limit", strconv.Itoa(cmd.Int("limit")))
	if project := cmd.String("project"); project != "" {
		id, err := client.ResolveProjectID(ctx, project)
		if err != nil {
			return err
		}
		query.Set("projectId", id)
	}

	raw, err := client.Get(ctx, "/v6/deployments", query)
	if err != nil {
		return err
	}

	Emit(raw, al, cmd, "deployments")
	return nil
}

// DeploymentsCommandBuilder constructs the cli.Command for "deployments".
func DeploymentsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "deployments",
		Usage:     "list deployments",
		UsageText: "vercelctl deployments [options]",
		Flags: []cli.Flag{
			NewLimitFlag("deployments", meta.Config.Source, 10),
			&cli.StringFlag{
				Name:    "project",
				Aliases: []string{"p"},
				Usage:   "only deployments of this project (name or id)",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("deployments.project", altsrc.StringSourcer(meta.Config.Source)),
					yaml.YAML("project", altsrc.StringSourcer(meta.Config.Source)),
				),
			},
		},
		Action: DeploymentsCommandAction,
		Meta:   meta,
	}).Build()
}

// DeploymentCommandAction fetches a single deployment by id or URL.
func DeploymentCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "deployment") {
		return nil
	}

	args, err := RequireArgs(cmd, "deployment")
	if err != nil {
		return err
	}

	al := BuildAttrs(cmd, "id", "name", "readyState", "url", "createdAt::h")
	log.Debugf("attrs: %v", al)

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	raw, err := client.Get(ctx, "/v13/deployments/"+url.PathEscape(args[0]), nil)
	if err != nil {
		return err
	}

	Emit(raw, al, cmd, "")
	return nil
}

// DeploymentCommandBuilder constructs the cli.Command for "deployment".
func DeploymentCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "deployment",
		Usage:     "show one deployment",
		UsageText: "vercelctl deployment <deployment> [options]",
		Action:    DeploymentCommandAction,
		Meta:      meta,
	}).Build()
}

// DeploymentRmCommandAction deletes a deployment by id.
func DeploymentRmCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "deployment-rm") {
		return nil
	}

	args, err := RequireArgs(cmd, "deployment")
	if err != nil {
		return err
	}

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	raw, err := client.Delete(ctx, "/v13/deployments/"+url.PathEscape(args[0]))
	if err != nil {
		return err
	}

	Emit(raw, BuildAttrs(cmd, "uid", "state"), cmd, "")
	return nil
}

// DeploymentRmCommandBuilder constructs the cli.Command for "deployment-rm".
func DeploymentRmCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "deployment-rm",
		Usage:     "delete a deployment",
		UsageText: "vercelctl deployment-rm <deployment> [options]",
		Action:    DeploymentRmCommandAction,
		Meta:      meta,
	}).Build()
}
