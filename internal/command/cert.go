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

// CertsCommandAction lists certificates.
func CertsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "certs") {
		return nil
	}

	al := BuildAttrs(cmd, "uid", "cns", "expiration::h", "autoRenew")
	log.Debugf("attrs: %v", al)

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	raw, err := client.Get(ctx, "/v7/certs", filters.NativeParams(cmd.String("filter")))
	if err != nil {
		return err
	}

	Emit(raw, al, cmd, "certs")
	return nil
}

// CertsCommandBuilder constructs the cli.Command for "certs".
func CertsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "certs",
		Usage:     "list certificates",
		UsageText: "vercelctl certs [options]",
		Action:    CertsCommandAction,
		Meta:      meta,
	}).Build()
}

// CertAddCommandAction issues a certificate for one or more common names.
// Names may be repeated arguments, comma-joined, or both.
func CertAddCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "cert-add") {
		return nil
	}

	got := cmd.Args().Slice()
	if len(got) == 0 {
		return errors.New("missing required argument <cn>")
	}
	var cns []string
	for _, arg := range got {
		cns = append(cns, SplitList(arg)...)
	}

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	raw, err := client.Post(ctx, "/v7/certs", map[string]any{"cns": cns})
	if err != nil {
		return err
	}

	Emit(raw, BuildAttrs(cmd, "uid", "cns"), cmd, "")
	return nil
}

// CertAddCommandBuilder constructs the cli.Command for "cert-add".
func CertAddCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "cert-add",
		Usage:     "issue a certificate",
		UsageText: "vercelctl cert-add <cn> [<cn>...] [options]",
		Action:    CertAddCommandAction,
		Meta:      meta,
	}).Build()
}

// CertRmCommandAction deletes a certificate by id.
func CertRmCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "cert-rm") {
		return nil
	}

	args, err := RequireArgs(cmd, "cert")
	if err != nil {
		return err
	}

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	raw, err := client.Delete(ctx, "/v7/certs/"+url.PathEscape(args[0]))
	if err != nil {
		return err
	}

	Emit(raw, BuildAttrs(cmd), cmd, "")
	return nil
}

// CertRmCommandBuilder constructs the cli.Command for "cert-rm".
func CertRmCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "cert-rm",
		Usage:     "delete a certificate",
		UsageText: "vercelctl cert-rm <cert> [options]",
		Action:    CertRmCommandAction,
		Meta:      meta,
	}).Build()
}
