// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"net/url"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/Lobstash/vercel-plugin/internal/filters"
	"github.com/Lobstash/vercel-plugin/internal/meta"
)

// DNSCommandAction lists the DNS records of a domain.
func DNSCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "dns") {
		return nil
	}

	args, err := RequireArgs(cmd, "domain")
	if err != nil {
		return err
	}

	al := BuildAttrs(cmd, "id", "type", "name", "value", "ttl")
	log.Debugf("attrs: %v", al)

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	raw, err := client.Get(ctx, "/v4/domains/"+url.PathEscape(args[0])+"/records",
		filters.NativeParams(cmd.String("filter")))
	if err != nil {
		return err
	}

	Emit(raw, al, cmd, "records")
	return nil
}

// DNSCommandBuilder constructs the cli.Command for "dns".
func DNSCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "dns",
		Usage:     "list DNS records of a domain",
		UsageText: "vercelctl dns <domain> [options]",
		Action:    DNSCommandAction,
		Meta:      meta,
	}).Build()
}

// DNSAddCommandAction creates a DNS record on a domain.
func DNSAddCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "dns-add") {
		return nil
	}

	args, err := RequireArgs(cmd, "domain", "name", "type", "value")
	if err != nil {
		return err
	}

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	body := map[string]any{
		"name":  args[1],
		"type":  args[2],
		"value": args[3],
		"ttl":   cmd.Int("ttl"),
	}

	raw, err := client.Post(ctx, "/v2/domains/"+url.PathEscape(args[0])+"/records", body)
	if err != nil {
		return err
	}

	Emit(raw, BuildAttrs(cmd, "uid"), cmd, "")
	return nil
}

// DNSAddCommandBuilder constructs the cli.Command for "dns-add".
func DNSAddCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "dns-add",
		Usage:     "create a DNS record",
		UsageText: "vercelctl dns-add <domain> <name> <type> <value> [options]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "ttl",
				Usage: "record time-to-live in seconds",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("dns-add.ttl", altsrc.StringSourcer(meta.Config.Source)),
					yaml.YAML("ttl", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: 3600,
				Validator: func(value int) error {
					if value <= 0 {
						return errors.New("must be a positive number of seconds")
					}
					return nil
				},
			},
		},
		Action: DNSAddCommandAction,
		Meta:   meta,
	}).Build()
}

// DNSRmCommandAction deletes a DNS record. Record ids are globally scoped,
// so no domain argument is needed.
func DNSRmCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "dns-rm") {
		return nil
	}

	args, err := RequireArgs(cmd, "record")
	if err != nil {
		return err
	}

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	raw, err := client.Delete(ctx, "/v2/domains/records/"+url.PathEscape(args[0]))
	if err != nil {
		return err
	}

	Emit(raw, BuildAttrs(cmd), cmd, "")
	return nil
}

// DNSRmCommandBuilder constructs the cli.Command for "dns-rm".
func DNSRmCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "dns-rm",
		Usage:     "delete a DNS record",
		UsageText: "vercelctl dns-rm <record> [options]",
		Action:    DNSRmCommandAction,
		Meta:      meta,
	}).Build()
}
