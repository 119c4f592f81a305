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

// SecretsCommandAction lists secrets. Values are write-only upstream and
// never appear in the listing.
func SecretsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "secrets") {
		return nil
	}

	al := BuildAttrs(cmd, "uid", "name", "created::h")
	log.Debugf("attrs: %v", al)

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	raw, err := client.Get(ctx, "/v3/secrets", filters.NativeParams(cmd.String("filter")))
	if err != nil {
		return err
	}

	Emit(raw, al, cmd, "secrets")
	return nil
}

// SecretsCommandBuilder constructs the cli.Command for "secrets".
func SecretsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "secrets",
		Usage:     "list secrets",
		UsageText: "vercelctl secrets [options]",
		Action:    SecretsCommandAction,
		Meta:      meta,
	}).Build()
}

// SecretAddCommandAction creates a secret.
func SecretAddCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "secret-add") {
		return nil
	}

	args, err := RequireArgs(cmd, "name", "value")
	if err != nil {
		return err
	}

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	raw, err := client.Post(ctx, "/v2/secrets", map[string]any{
		"name":  args[0],
		"value": args[1],
	})
	if err != nil {
		return err
	}

	Emit(raw, BuildAttrs(cmd, "uid", "name"), cmd, "")
	return nil
}

// SecretAddCommandBuilder constructs the cli.Command for "secret-add".
func SecretAddCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "secret-add",
		Usage:     "create a secret",
		UsageText: "vercelctl secret-add <name> <value> [options]",
		Action:    SecretAddCommandAction,
		Meta:      meta,
	}).Build()
}

// SecretRenameCommandAction renames a secret.
func SecretRenameCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "secret-rename") {
		return nil
	}

	args, err := RequireArgs(cmd, "name", "new-name")
	if err != nil {
		return err
	}

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	raw, err := client.Patch(ctx, "/v2/secrets/"+url.PathEscape(args[0]), map[string]any{
		"name": args[1],
	})
	if err != nil {
		return err
	}

	Emit(raw, BuildAttrs(cmd, "uid", "name", "oldName"), cmd, "")
	return nil
}

// SecretRenameCommandBuilder constructs the cli.Command for "secret-rename".
func SecretRenameCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "secret-rename",
		Usage:     "rename a secret",
		UsageText: "vercelctl secret-rename <name> <new-name> [options]",
		Action:    SecretRenameCommandAction,
		Meta:      meta,
	}).Build()
}

// SecretRmCommandAction deletes a secret by name or id.
func SecretRmCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "secret-rm") {
		return nil
	}

	args, err := RequireArgs(cmd, "secret")
	if err != nil {
		return err
	}

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	raw, err := client.Delete(ctx, "/v2/secrets/"+url.PathEscape(args[0]))
	if err != nil {
		return err
	}

	Emit(raw, BuildAttrs(cmd, "uid", "name"), cmd, "")
	return nil
}

// SecretRmCommandBuilder constructs the cli.Command for "secret-rm".
func SecretRmCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "secret-rm",
		Usage:     "delete a secret",
		UsageText: "vercelctl secret-rm <secret> [options]",
		Action:    SecretRmCommandAction,
		Meta:      meta,
	}).Build()
}
