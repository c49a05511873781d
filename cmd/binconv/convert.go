// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/binconv/internal/client"
	"github.com/pdiddy/binconv/internal/convert"
	"github.com/pdiddy/binconv/internal/logging"
	"github.com/pdiddy/binconv/internal/secrets"
	"github.com/pdiddy/binconv/pkg/types"
)

var bin2decCmd = &cobra.Command{
	Use:   "bin2dec <binary>...",
	Short: "Convert binary numbers to decimal",
	Long: `Bin2dec converts each argument from binary to decimal and prints one
result per line. A leading 0b prefix is accepted.`,
	Example: "  binconv bin2dec 1000101\n  binconv bin2dec 0b101 --json",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvertCmd(cmd, types.BinaryToDecimal, args)
	},
}

var dec2binCmd = &cobra.Command{
	Use:   "dec2bin <decimal>...",
	Short: "Convert decimal numbers to binary",
	Long: `Dec2bin converts each argument from decimal to binary and prints one
result per line, without leading zeros. Use --prefix to print a 0b prefix.`,
	Example: "  binconv dec2bin 2683\n  binconv dec2bin 69 --prefix",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvertCmd(cmd, types.DecimalToBinary, args)
	},
}

// convertFunc converts one input string in the given direction.
type convertFunc func(ctx context.Context, dir types.Direction, input string) (string, error)

func localConvert(_ context.Context, dir types.Direction, input string) (string, error) {
	return convert.Convert(dir, input)
}

// newClient builds an API client for remote. The bearer token comes from
// the secrets directory.
func newClient(remote string) (*client.Client, error) {
	token, err := secrets.Lookup(cfg.SecretsDir, cfg.Server.TokenFile, logger)
	if err != nil {
		return nil, err
	}
	return client.New(remote, cfg.Client, token, logging.Component(logger, "client")), nil
}

// newConvertFunc returns a local converter, or a remote one when remote is a
// base URL.
func newConvertFunc(remote string) (convertFunc, error) {
	if remote == "" {
		return localConvert, nil
	}
	c, err := newClient(remote)
	if err != nil {
		return nil, err
	}
	return c.Convert, nil
}

// convertOptions controls how runConversions formats results.
type convertOptions struct {
	JSON   bool
	Prefix bool
}

// runConversions converts every input, writes results to out and failures
// to errOut, and returns the recorded conversions. It returns an error when
// any input failed.
func runConversions(ctx context.Context, out, errOut io.Writer, dir types.Direction, inputs []string, conv convertFunc, opts convertOptions) ([]types.Conversion, error) {
	records := make([]types.Conversion, 0, len(inputs))
	failed := 0
	for _, raw := range inputs {
		input := raw
		if dir == types.BinaryToDecimal {
			input = convert.StripBinaryPrefix(raw)
		}

		c := types.Conversion{Direction: dir, Input: input, CreatedAt: time.Now().UTC()}
		result, err := conv(ctx, dir, input)
		switch {
		case err != nil:
			c.Error = err.Error()
			failed++
			if !opts.JSON {
				fmt.Fprintf(errOut, "error: %s\n", c.Error)
			}
			if !errors.Is(err, convert.ErrInvalidInput) {
				logger.Error().Err(err).Str("input", input).Msg("conversion failed")
			}
		case opts.Prefix && dir == types.DecimalToBinary:
			c.Output = "0b" + result
		default:
			c.Output = result
		}
		if !c.Failed() && !opts.JSON {
			fmt.Fprintln(out, c.Output)
		}
		records = append(records, c)
	}

	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return records, fmt.Errorf("encoding results: %w", err)
		}
	}

	if failed > 0 {
		return records, fmt.Errorf("%d of %d conversion(s) failed", failed, len(inputs))
	}
	return records, nil
}

func runConvertCmd(cmd *cobra.Command, dir types.Direction, args []string) error {
	remote, _ := cmd.Flags().GetString("remote")
	jsonOut, _ := cmd.Flags().GetBool("json")
	prefix, _ := cmd.Flags().GetBool("prefix")

	conv, err := newConvertFunc(remote)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	records, convErr := runConversions(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), dir, args, conv,
		convertOptions{JSON: jsonOut, Prefix: prefix})
	recordHistory(ctx, records)
	return convErr
}

func init() {
	for _, c := range []*cobra.Command{bin2decCmd, dec2binCmd} {
		c.Flags().String("remote", "", "convert via a binconv API at this base URL")
		c.Flags().Bool("json", false, "output results as JSON")
		rootCmd.AddCommand(c)
	}
	dec2binCmd.Flags().Bool("prefix", false, "prefix binary output with 0b")
}
