// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/colpick/internal/meta"
)

const bashCompletionScript = `# bash completion for colpick
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_colpick()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "filter values completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --cache-hours --color -c --endpoint --output -o --padding --parent --profile --region --schema --sort -s --titles -t --tldr"

    case "$cmd" in
        filter)
            local opts="$common --chop --combo --count --filter -f --quote-meta --select -S"
            ;;
        values)
            local opts="$common --column -C"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Sources are files, "-" or s3:// URIs.
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _colpick colpick
`

const zshCompletionScript = `#compdef colpick

_colpick() {
  local -a cmds
  cmds=(
    'filter:filter rows by per-column value selections'
    'values:list the distinct values of a column'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[columns to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '--endpoint[S3 compatible endpoint]:url'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '--padding[column padding]:padding'
  '--cache-hours[serve s3 sources from cache for hours]:hours'
  '--parent[path of the rows]:path'
  '--profile[AWS profile]:profile'
  '--region[AWS region]:region'
  '--schema[dump key paths]'
  '(-s --sort)'{-s,--sort}'[sort columns]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'colpick commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    filter)
      _arguments -C \
        $common \
        '--chop[chop shared dotted prefixes]' \
        '--combo[multi-select columns]:columns' \
        '--count[print row counts]' \
        '(-f --filter)'{-f,--filter}'[filters to apply]:filters' \
        '--quote-meta[match selected values literally]' \
        '*'{-S,--select}'[column selection]:select' \
        '*:source:_files'
      ;;
    values)
      _arguments -C \
        $common \
        '(-C --column)'{-C,--column}'[column to list]:column' \
        '*:source:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:source:_files'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _colpick colpick
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := outWriter(cmd)
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			fmt.Fprintln(errWriter(cmd), "usage: colpick completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "colpick completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
