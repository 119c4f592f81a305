// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT
package command

import (
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/Lobstash/vercel-plugin/internal/meta"
)

// InitApp assembles the root command and its subcommand tree. The provided
// meta is threaded into every subcommand's Metadata so actions never reach
// for global state.
func InitApp(meta meta.Meta) *cli.Command {
	app := &cli.Command{
		Name:  "vercelctl",
		Usage: "Vercel Control",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "vercelctl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		ProjectsCommandBuilder(meta),
		ProjectCommandBuilder(meta),
		ProjectAddCommandBuilder(meta),
		ProjectUpdateCommandBuilder(meta),
		ProjectRmCommandBuilder(meta),
		DeploymentsCommandBuilder(meta),
		DeploymentCommandBuilder(meta),
		DeploymentRmCommandBuilder(meta),
		LogsCommandBuilder(meta),
		DomainsCommandBuilder(meta),
		DomainAddCommandBuilder(meta),
		DomainRmCommandBuilder(meta),
		DNSCommandBuilder(meta),
		DNSAddCommandBuilder(meta),
		DNSRmCommandBuilder(meta),
		EnvsCommandBuilder(meta),
		EnvAddCommandBuilder(meta),
		EnvRemoveCommandBuilder(meta),
		EnvPullCommandBuilder(meta),
		EnvDiffCommandBuilder(meta),
		TeamsCommandBuilder(meta),
		TeamAddCommandBuilder(meta),
		TeamRmCommandBuilder(meta),
		SecretsCommandBuilder(meta),
		SecretAddCommandBuilder(meta),
		SecretRenameCommandBuilder(meta),
		SecretRmCommandBuilder(meta),
		CertsCommandBuilder(meta),
		CertAddCommandBuilder(meta),
		CertRmCommandBuilder(meta),
		AliasesCommandBuilder(meta),
		UsageCommandBuilder(meta),
		CompletionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app
}
