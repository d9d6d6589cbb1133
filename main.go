// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/colpick/internal/command"
	"github.com/tfctl/colpick/internal/config"
	"github.com/tfctl/colpick/internal/log"
	"github.com/tfctl/colpick/internal/version"
)

var ctx = context.Background()

// boolFlags never take a separate value argument.
var boolFlags = map[string]bool{
	"--chop": true, "--color": true, "-c": true, "--count": true,
	"--quote-meta": true, "--schema": true, "--titles": true, "-t": true,
	"--tldr": true,
}

// valueFlags always take the next argument as their value, even when it
// starts with "-" (e.g. --sort -size).
var valueFlags = map[string]bool{
	"--attrs": true, "-a": true, "--cache-hours": true, "--column": true, "-C": true, "--combo": true,
	"--endpoint": true, "--filter": true, "-f": true, "--output": true, "-o": true,
	"--padding": true, "--parent": true, "--profile": true, "--region": true,
	"--select": true, "-S": true, "--sort": true, "-s": true,
}

// repeatableFlags accumulate, so every occurrence is kept.
var repeatableFlags = map[string]bool{
	"--select": true, "-S": true,
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	switch {
	case len(args) > 1 && args[1] == "completion":
		// Short-circuit completion: pass args directly.
		return args
	default:
		args = processSetOnly(args)
		log.Debugf("args after set processing: args=%v", args)
		return deduplicateFlags(args)
	}
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly expands an @set argument into the entries of config key
// <command>.<set>. Without an @set, <command>.defaults is inserted right after
// the command so explicit flags still win.
func processSetOnly(args []string) []string {
	if len(args) < 2 {
		return args
	}

	// Look for an explicit @set argument starting from index 2.
	idx := 2
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") {
			rest := append([]string{}, args[idx+i+1:]...)
			args = append(args[:idx+i], rest...)
			return injectConfigSet(args, args[1]+"."+a[1:], idx+i)
		}
	}

	return injectConfigSet(args, args[1]+".defaults", idx)
}

// injectConfigSet inserts the whitespace separated entries of the config
// string slice at key into args at insertIdx.
func injectConfigSet(args []string, key string, insertIdx int) []string {
	entries, err := config.GetStringSlice(key)
	if err != nil {
		log.Debugf("no arg set: key=%s err=%v", key, err)
		return args
	}
	return expandSet(args, entries, insertIdx)
}

// expandSet inserts the fields of entries into args at insertIdx.
func expandSet(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	tail := append([]string{}, args[insertIdx:]...)
	return append(append(args[:insertIdx:insertIdx], expanded...), tail...)
}

// deduplicateFlags drops earlier occurrences of a flag given more than once,
// so the last one wins. A flag's separate value travels with it. Positional
// arguments and repeatable flags are kept as given.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type unit struct {
		name   string
		tokens []string
	}

	var units []unit
	rest := args[2:]
	for i := 0; i < len(rest); i++ {
		tok := rest[i]
		if !strings.HasPrefix(tok, "-") || tok == "-" {
			units = append(units, unit{tokens: []string{tok}})
			continue
		}

		name, _, hasValue := strings.Cut(tok, "=")
		u := unit{name: name, tokens: []string{tok}}
		if !hasValue && !boolFlags[name] && i+1 < len(rest) &&
			(valueFlags[name] || !strings.HasPrefix(rest[i+1], "-")) {
			u.tokens = append(u.tokens, rest[i+1])
			i++
		}
		units = append(units, u)
	}

	last := make(map[string]int)
	for i, u := range units {
		if u.name != "" && !repeatableFlags[u.name] {
			last[u.name] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, u := range units {
		if u.name != "" && !repeatableFlags[u.name] && last[u.name] != i {
			continue
		}
		out = append(out, u.tokens...)
	}
	return out
}
