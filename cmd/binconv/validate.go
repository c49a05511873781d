// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/binconv/internal/convert"
	"github.com/pdiddy/binconv/pkg/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate <input>",
	Short: "Check whether an input is a valid binary or decimal numeral",
	Long: `Validate reports whether the input is acceptable for the chosen
direction: bin2dec (default) requires only 0 and 1, dec2bin requires only
decimal digits. The command exits non-zero for invalid input.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	dirName, _ := cmd.Flags().GetString("direction")
	remote, _ := cmd.Flags().GetString("remote")

	dir, err := types.ParseDirection(dirName)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var valid bool
	if remote != "" {
		c, err := newClient(remote)
		if err != nil {
			return err
		}
		if valid, err = c.Validate(ctx, dir, args[0]); err != nil {
			return err
		}
	} else {
		valid = convert.Valid(dir, args[0])
	}
	return reportValidity(cmd.OutOrStdout(), dir, args[0], valid)
}

func reportValidity(w io.Writer, dir types.Direction, input string, valid bool) error {
	if valid {
		fmt.Fprintf(w, "valid: %q\n", input)
		return nil
	}
	fmt.Fprintf(w, "invalid: %q\n", input)
	return &convert.InvalidInputError{Direction: dir, Input: input}
}

func init() {
	validateCmd.Flags().String("direction", string(types.BinaryToDecimal), "direction: bin2dec or dec2bin")
	validateCmd.Flags().String("remote", "", "validate via a binconv API at this base URL")
	rootCmd.AddCommand(validateCmd)
}
