package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Lobstash/vercel-plugin/internal/meta"
	"github.com/urfave/cli/v3"
)

const bashCompletionScript = `# bash completion for vercelctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_vercelctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "projects project project-add project-update project-rm deployments deployment deployment-rm logs domains domain-add domain-rm dns dns-add dns-rm envs env-add env-remove env-pull env-diff teams team-add team-rm secrets secret-add secret-rename secret-rm certs cert-add cert-rm aliases usage completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --filter -f --local --output -o --sort -s --titles -t --tldr"

    case "$cmd" in
        deployments)
            local opts="$common --limit -l --project -p"
            ;;
        logs)
            local opts="$common --limit -l --follow"
            ;;
        dns-add)
            local opts="$common --ttl"
            ;;
        env-add)
            local opts="$common --env -e --type"
            ;;
        env-remove|env-pull|env-diff)
            local opts="$common --env -e"
            ;;
        project-update)
            local opts="$common --name --framework --build-command"
            ;;
        team-add)
            local opts="$common --name"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "json raw yaml table" -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _vercelctl vercelctl
`

const zshCompletionScript = `#compdef vercelctl

_vercelctl() {
  local -a cmds
  cmds=(
    'projects:list projects'
    'project:show one project'
    'project-add:create a project'
    'project-update:update project settings'
    'project-rm:delete a project'
    'deployments:list deployments'
    'deployment:show one deployment'
    'deployment-rm:delete a deployment'
    'logs:show deployment events'
    'domains:list domains'
    'domain-add:attach a domain to a project'
    'domain-rm:detach a domain from a project'
    'dns:list DNS records of a domain'
    'dns-add:create a DNS record'
    'dns-rm:delete a DNS record'
    'envs:list environment variables'
    'env-add:create an environment variable'
    'env-remove:delete an environment variable'
    'env-pull:write variables to a dotenv file'
    'env-diff:diff a dotenv file against remote'
    'teams:list teams'
    'team-add:create a team'
    'team-rm:delete a team'
    'secrets:list secrets'
    'secret-add:create a secret'
    'secret-rename:rename a secret'
    'secret-rm:delete a secret'
    'certs:list certificates'
    'cert-add:issue a certificate'
    'cert-rm:delete a certificate'
    'aliases:list aliases'
    'usage:show usage'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '--local[render timestamps in local time]'
  '(-o --output)'{-o,--output}'[output format]:format:(json raw yaml table)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'vercelctl commands' cmds
    return
  fi

  case $words[2] in
    deployments)
      _arguments -C \
        $common \
        '(-l --limit)'{-l,--limit}'[limit results]:limit' \
        '(-p --project)'{-p,--project}'[project name or id]:project'
      ;;
    logs)
      _arguments -C \
        $common \
        '(-l --limit)'{-l,--limit}'[limit results]:limit' \
        '--follow[follow the event stream]'
      ;;
    dns-add)
      _arguments -C \
        $common \
        '--ttl[record time-to-live in seconds]:ttl'
      ;;
    env-add)
      _arguments -C \
        $common \
        '(-e --env)'{-e,--env}'[target environments]:targets' \
        '--type[variable type]:type:(encrypted plain sensitive)'
      ;;
    env-remove)
      _arguments -C \
        $common \
        '(-e --env)'{-e,--env}'[target environment]:target'
      ;;
    env-pull|env-diff)
      _arguments -C \
        $common \
        '(-e --env)'{-e,--env}'[target environments]:targets' \
        '2:file:_files'
      ;;
    project-update)
      _arguments -C \
        $common \
        '--name[new project name]:name' \
        '--framework[framework preset]:framework' \
        '--build-command[override build command]:command'
      ;;
    team-add)
      _arguments -C \
        $common \
        '--name[display name]:name'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _vercelctl vercelctl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(os.Stdout, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(os.Stdout, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: vercelctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "vercelctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
