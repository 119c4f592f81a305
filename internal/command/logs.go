// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/Lobstash/vercel-plugin/internal/filters"
	"github.com/Lobstash/vercel-plugin/internal/meta"
)

// LogsCommandAction fetches the build and runtime events of a deployment.
// The events endpoint is a point-in-time read here; --follow is
// acknowledged with a notice rather than a stream.
func LogsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "logs") {
		return nil
	}

	args, err := RequireArgs(cmd, "deployment")
	if err != nil {
		return err
	}

	if cmd.Bool("follow") {
		fmt.Fprintln(os.Stderr, "--follow is not supported; showing a single snapshot")
	}

	al := BuildAttrs(cmd, "created::t", "type", "payload.text:text")
	log.Debugf("attrs: %v", al)

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	query := filters.NativeParams(cmd.String("filter"))
	query.Set("limit", strconv.Itoa(cmd.Int("limit")))

	raw, err := client.Get(ctx, "/v2/deployments/"+url.PathEscape(args[0])+"/events", query)
	if err != nil {
		return err
	}

	Emit(raw, al, cmd, "")
	return nil
}

// LogsCommandBuilder constructs the cli.Command for "logs".
func LogsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "logs",
		Usage:     "show deployment events",
		UsageText: "vercelctl logs <deployment> [options]",
		Flags: []cli.Flag{
			NewLimitFlag("logs", meta.Config.Source, 100),
			&cli.BoolFlag{
				Name:  "follow",
				Usage: "follow the event stream",
			},
		},
		Action: LogsCommandAction,
		Meta:   meta,
	}).Build()
}
