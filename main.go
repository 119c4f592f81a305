// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/Lobstash/vercel-plugin/internal/command"
	"github.com/Lobstash/vercel-plugin/internal/config"
	mylog "github.com/Lobstash/vercel-plugin/internal/log"
	"github.com/Lobstash/vercel-plugin/internal/meta"
	"github.com/Lobstash/vercel-plugin/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	cfg := config.Load()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(args, cfg)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	m := meta.Meta{
		Args:   args,
		Config: cfg,
	}

	app := command.InitApp(m)

	// An unrecognized command is not a flag-parse failure. Help goes to
	// stderr so stdout stays clean for payloads.
	if name := args[1]; !strings.HasPrefix(name, "-") && !knownCommand(app, name) {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", name)
		app.Writer = os.Stderr
		_ = app.Run(ctx, []string{args[0], "--help"})
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var actionErr *command.ActionError
		if errors.As(err, &actionErr) {
			return 1
		}
		return 2
	}

	return 0
}

func knownCommand(app *cli.Command, name string) bool {
	// The help command is injected by the runtime, not listed in Commands.
	if name == "help" || name == "h" {
		return true
	}
	for _, c := range app.Commands {
		for _, n := range c.Names() {
			if n == name {
				return true
			}
		}
	}
	return false
}

// mangleArguments injects an argument set from the defaults file into the
// command line. An explicit @name picks the <command>.<name> set and marks
// the insertion point; otherwise <command>.defaults is injected after the
// command when present.
func mangleArguments(args []string, cfg config.Config) []string {
	// We know the first two args are going to be the executable and command.
	preamble := make([]string, 2)
	copy(preamble, args[:2])

	// Short-circuit for --help/-h. If help is requested, just keep the preamble
	// and add --help flag.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return append(preamble, "--help")
		}
	}

	set := "defaults"
	idx := 2

	rest := append([]string{}, args[2:]...)
	for i, a := range rest {
		if strings.HasPrefix(a, "@") {
			set = a[1:]
			idx += i
			rest = append(rest[:i], rest[i+1:]...)
			break
		}
	}
	args = append(preamble, rest...)

	setArgs := cfg.GetStringSlice(args[1] + "." + set)
	for _, arg := range setArgs {
		parts := strings.Fields(arg)
		args = append(args[:idx], append(parts, args[idx:]...)...)
		idx += len(parts)
	}

	log.Debugf("idx=%d, set=%s, args=%v", idx, set, args)
	return args
}
