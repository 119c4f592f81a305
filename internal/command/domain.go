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

// DomainsCommandAction lists the domains owned by the current scope.
func DomainsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "domains") {
		return nil
	}

	al := BuildAttrs(cmd, "name", "serviceType", "verified", "createdAt::h")
	log.Debugf("attrs: %v", al)

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	raw, err := client.Get(ctx, "/v5/domains", filters.NativeParams(cmd.String("filter")))
	if err != nil {
		return err
	}

	Emit(raw, al, cmd, "domains")
	return nil
}

// DomainsCommandBuilder constructs the cli.Command for "domains".
func DomainsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "domains",
		Usage:     "list domains",
		UsageText: "vercelctl domains [options]",
		Action:    DomainsCommandAction,
		Meta:      meta,
	}).Build()
}

// DomainAddCommandAction attaches a domain to a project. The project may be
// given by name; it is resolved to an id before the write is attempted, and
// a failed resolution stops the command before any mutation.
func DomainAddCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "domain-add") {
		return nil
	}

	args, err := RequireArgs(cmd, "project", "domain")
	if err != nil {
		return err
	}

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	id, err := client.ResolveProjectID(ctx, args[0])
	if err != nil {
		return err
	}

	raw, err := client.Post(ctx, "/v10/projects/"+id+"/domains", map[string]any{"name": args[1]})
	if err != nil {
		return err
	}

	Emit(raw, BuildAttrs(cmd, "name", "apexName", "verified"), cmd, "")
	return nil
}

// DomainAddCommandBuilder constructs the cli.Command for "domain-add".
func DomainAddCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "domain-add",
		Usage:     "attach a domain to a project",
		UsageText: "vercelctl domain-add <project> <domain> [options]",
		Action:    DomainAddCommandAction,
		Meta:      meta,
	}).Build()
}

// DomainRmCommandAction detaches a domain from a project.
func DomainRmCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "domain-rm") {
		return nil
	}

	args, err := RequireArgs(cmd, "project", "domain")
	if err != nil {
		return err
	}

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	id, err := client.ResolveProjectID(ctx, args[0])
	if err != nil {
		return err
	}

	raw, err := client.Delete(ctx, "/v9/projects/"+id+"/domains/"+url.PathEscape(args[1]))
	if err != nil {
		return err
	}

	Emit(raw, BuildAttrs(cmd), cmd, "")
	return nil
}

// DomainRmCommandBuilder constructs the cli.Command for "domain-rm".
func DomainRmCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "domain-rm",
		Usage:     "detach a domain from a project",
		UsageText: "vercelctl domain-rm <project> <domain> [options]",
		Action:    DomainRmCommandAction,
		Meta:      meta,
	}).Build()
}
