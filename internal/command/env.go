// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/Lobstash/vercel-plugin/internal/envfile"
	"github.com/Lobstash/vercel-plugin/internal/filters"
	"github.com/Lobstash/vercel-plugin/internal/meta"
)

// EnvsCommandAction lists the environment variables of a project.
func EnvsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "envs") {
		return nil
	}

	args, err := RequireArgs(cmd, "project")
	if err != nil {
		return err
	}

	al := BuildAttrs(cmd, "id", "key", "value", "target", "updatedAt::h")
	log.Debugf("attrs: %v", al)

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	id, err := client.ResolveProjectID(ctx, args[0])
	if err != nil {
		return err
	}

	raw, err := client.Get(ctx, "/v9/projects/"+id+"/env", filters.NativeParams(cmd.String("filter")))
	if err != nil {
		return err
	}

	Emit(raw, al, cmd, "envs")
	return nil
}

// EnvsCommandBuilder constructs the cli.Command for "envs".
func EnvsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "envs",
		Usage:     "list environment variables of a project",
		UsageText: "vercelctl envs <project> [options]",
		Action:    EnvsCommandAction,
		Meta:      meta,
	}).Build()
}

// EnvAddCommandAction creates an environment variable. --env takes a
// comma-separated target list whose order is preserved in the request.
func EnvAddCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "env-add") {
		return nil
	}

	args, err := RequireArgs(cmd, "project", "key", "value")
	if err != nil {
		return err
	}

	targets := SplitList(cmd.String("env"))
	if len(targets) == 0 {
		return errors.New("--env must name at least one target environment")
	}

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	id, err := client.ResolveProjectID(ctx, args[0])
	if err != nil {
		return err
	}

	body := map[string]any{
		"key":    args[1],
		"value":  args[2],
		"type":   cmd.String("type"),
		"target": targets,
	}

	raw, err := client.Post(ctx, "/v10/projects/"+id+"/env", body)
	if err != nil {
		return err
	}

	Emit(raw, BuildAttrs(cmd, "created.id:id", "created.key:key", "created.target:target"), cmd, "")
	return nil
}

// EnvAddCommandBuilder constructs the cli.Command for "env-add".
func EnvAddCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "env-add",
		Usage:     "create an environment variable",
		UsageText: "vercelctl env-add <project> <key> <value> [options]",
		Flags: []cli.Flag{
			envTargetFlag("env-add", meta.Config.Source, "comma-separated target environments"),
			&cli.StringFlag{
				Name:  "type",
				Usage: "variable type",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("env-add.type", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: "encrypted",
			},
		},
		Action: EnvAddCommandAction,
		Meta:   meta,
	}).Build()
}

// EnvRemoveCommandAction deletes an environment variable by key for a single
// target environment. The key is looked up in the project's listing first; an
// absent key is reported, not fatal.
func EnvRemoveCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "env-remove") {
		return nil
	}

	args, err := RequireArgs(cmd, "project", "key")
	if err != nil {
		return err
	}

	targets := SplitList(cmd.String("env"))
	if len(targets) != 1 {
		return errors.New("--env must name exactly one target environment")
	}

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	id, err := client.ResolveProjectID(ctx, args[0])
	if err != nil {
		return err
	}

	raw, err := client.Get(ctx, "/v9/projects/"+id+"/env", nil)
	if err != nil {
		return err
	}

	// A key can repeat across targets, so the lookup is scoped to the
	// requested target.
	envID := ""
	for _, env := range gjson.GetBytes(raw.Bytes(), "envs").Array() {
		if env.Get("key").String() == args[1] && hasTarget(env, targets) {
			envID = env.Get("id").String()
			break
		}
	}
	if envID == "" {
		fmt.Fprintf(os.Stderr, "no environment variable %q for target %s on project %s\n",
			args[1], targets[0], args[0])
		return nil
	}

	out, err := client.Delete(ctx, "/v9/projects/"+id+"/env/"+url.PathEscape(envID))
	if err != nil {
		return err
	}

	Emit(out, BuildAttrs(cmd), cmd, "")
	return nil
}

// EnvRemoveCommandBuilder constructs the cli.Command for "env-remove".
func EnvRemoveCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "env-remove",
		Usage:     "delete an environment variable",
		UsageText: "vercelctl env-remove <project> <key> [options]",
		Flags: []cli.Flag{
			envTargetFlag("env-remove", meta.Config.Source, "target environment of the variable"),
		},
		Action: EnvRemoveCommandAction,
		Meta:   meta,
	}).Build()
}

// EnvPullCommandAction writes a project's environment variables to a dotenv
// file in remote listing order. Variables are narrowed to the requested
// targets, production by default.
func EnvPullCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "env-pull") {
		return nil
	}

	args, err := RequireArgs(cmd, "project")
	if err != nil {
		return err
	}

	file := ".env"
	if got := cmd.Args().Slice(); len(got) > 1 {
		file = got[1]
	}

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	id, err := client.ResolveProjectID(ctx, args[0])
	if err != nil {
		return err
	}

	raw, err := client.Get(ctx, "/v9/projects/"+id+"/env", nil)
	if err != nil {
		return err
	}

	vars := collectVars(raw.Bytes(), SplitList(cmd.String("env")))

	if err := envfile.Write(file, vars); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "wrote %d environment variables to %s\n", len(vars), file)
	return nil
}

// EnvPullCommandBuilder constructs the cli.Command for "env-pull".
func EnvPullCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "env-pull",
		Usage:     "write environment variables to a dotenv file",
		UsageText: "vercelctl env-pull <project> [file] [options]",
		Flags: []cli.Flag{
			envTargetFlag("env-pull", meta.Config.Source, "comma-separated target environments to include"),
		},
		Action: EnvPullCommandAction,
		Meta:   meta,
	}).Build()
}

// EnvDiffCommandAction compares a local dotenv file against the project's
// remote variables and prints the differences. Matching sides print nothing
// to stdout.
func EnvDiffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "env-diff") {
		return nil
	}

	args, err := RequireArgs(cmd, "project")
	if err != nil {
		return err
	}

	file := ".env"
	if got := cmd.Args().Slice(); len(got) > 1 {
		file = got[1]
	}

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	id, err := client.ResolveProjectID(ctx, args[0])
	if err != nil {
		return err
	}

	raw, err := client.Get(ctx, "/v9/projects/"+id+"/env", nil)
	if err != nil {
		return err
	}

	remote := map[string]string{}
	for _, v := range collectVars(raw.Bytes(), SplitList(cmd.String("env"))) {
		remote[v.Key] = v.Value
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	local := map[string]string{}
	for _, v := range envfile.Parse(data) {
		local[v.Key] = v.Value
	}

	localJSON, err := json.Marshal(local)
	if err != nil {
		return err
	}
	remoteJSON, err := json.Marshal(remote)
	if err != nil {
		return err
	}

	diff, err := gojsondiff.New().Compare(localJSON, remoteJSON)
	if err != nil {
		return err
	}
	if !diff.Modified() {
		fmt.Fprintf(os.Stderr, "%s matches the remote variables\n", file)
		return nil
	}

	var lhs map[string]interface{}
	//nolint:errcheck
	json.Unmarshal(localJSON, &lhs)

	text, err := formatter.NewAsciiFormatter(lhs, formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       cmd.Bool("color"),
	}).Format(diff)
	if err != nil {
		return err
	}

	fmt.Fprint(os.Stdout, text)
	return nil
}

// EnvDiffCommandBuilder constructs the cli.Command for "env-diff".
func EnvDiffCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "env-diff",
		Usage:     "diff a dotenv file against remote variables",
		UsageText: "vercelctl env-diff <project> [file] [options]",
		Flags: []cli.Flag{
			envTargetFlag("env-diff", meta.Config.Source, "comma-separated target environments to include"),
		},
		Action: EnvDiffCommandAction,
		Meta:   meta,
	}).Build()
}

// envTargetFlag is the --env flag shared by the env-* commands.
func envTargetFlag(ns string, source string, usage string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "env",
		Aliases: []string{"e"},
		Usage:   usage,
		Sources: cli.NewValueSourceChain(
			yaml.YAML(ns+".env", altsrc.StringSourcer(source)),
			yaml.YAML("env", altsrc.StringSourcer(source)),
		),
		Value: "production",
	}
}

// collectVars projects an env listing into dotenv variables, keeping the
// remote order. targets narrows to variables carrying any of the given
// targets; empty keeps everything.
func collectVars(doc []byte, targets []string) []envfile.Var {
	var vars []envfile.Var
	for _, env := range gjson.GetBytes(doc, "envs").Array() {
		if len(targets) > 0 && !hasTarget(env, targets) {
			continue
		}
		vars = append(vars, envfile.Var{
			Key:   env.Get("key").String(),
			Value: env.Get("value").String(),
		})
	}
	return vars
}

func hasTarget(env gjson.Result, targets []string) bool {
	for _, t := range env.Get("target").Array() {
		for _, want := range targets {
			if t.String() == want {
				return true
			}
		}
	}
	return false
}
