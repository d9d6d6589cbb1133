// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator checks flag combinations that single-flag validators
// cannot see.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.String("output") == "raw" && c.IsSet("attrs") {
		return fmt.Errorf("--attrs has no effect with raw output")
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "raw", "yaml"}
	s, _ := value.(string)
	if !slices.Contains(validOutputFlagValues, s) {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

func NonNegativeValidator(value any) error {
	if n, ok := value.(int); !ok || n < 0 {
		return fmt.Errorf("must be zero or more")
	}
	return nil
}

// SelectValidator requires every --select entry to carry an "=" or "~"
// operator after a non-empty column name.
func SelectValidator(value any) error {
	specs, _ := value.([]string)
	for _, spec := range specs {
		i := strings.IndexAny(spec, "=~")
		if i <= 0 {
			return fmt.Errorf("invalid select %q: want column=a|b or column~text", spec)
		}
	}
	return nil
}
