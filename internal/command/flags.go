// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the key paths found in the dataset",
		HideDefault: true,
	}
}

func newTldrFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

// NewGlobalFlags returns the flags shared by the dataset commands. params[0]
// is the command namespace and params[1] the config file. When both are
// given, every flag also reads its value from the config file, namespaced key
// first.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of columns as key[:title[:converter]]",
		},
		&cli.IntFlag{
			Name:  "cache-hours",
			Usage: "serve s3:// sources from the local cache while younger than this, 0 disables",
			Value: 0,
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:  "endpoint",
			Usage: "S3 compatible endpoint URL for s3:// sources",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("COLPICK_S3_ENDPOINT"),
			),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "spaces between text output columns",
			Value: 2,
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		&cli.StringFlag{
			Name:  "parent",
			Usage: "path of the rows within each source document",
		},
		&cli.StringFlag{
			Name:  "profile",
			Usage: "AWS profile for s3:// sources",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AWS_PROFILE"),
			),
		},
		&cli.StringFlag{
			Name:  "region",
			Usage: "AWS region for s3:// sources",
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of columns to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	if len(params) == 2 && params[1] != "" {
		for _, f := range flags {
			NameSpacedValueChainFlagFromConfigFile(params[0], params[1], f)
		}
	}

	flags = append(flags, newSchemaFlag(), newTldrFlag())

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain. Flags without a Sources chain, or
// an empty path, leave the flag unchanged.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag cli.Flag) cli.Flag {
	if path == "" {
		return flag
	}

	var chain *cli.ValueSourceChain
	switch f := flag.(type) {
	case *cli.StringFlag:
		chain = &f.Sources
	case *cli.BoolFlag:
		chain = &f.Sources
	case *cli.IntFlag:
		chain = &f.Sources
	case *cli.StringSliceFlag:
		chain = &f.Sources
	default:
		return flag
	}

	name := flag.Names()[0]
	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(path)))

	return flag
}

// pathHas checks if the given executable is on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
