// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/binconv/internal/batch"
	"github.com/pdiddy/binconv/pkg/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Convert every line of a file",
	Long: `Batch converts each non-blank line of a text file in the direction
given by --direction. Lines starting with # are skipped. With --job the file
is a YAML job instead:

  direction: bin2dec
  inputs:
    - "1000101"
    - "0101"

Use - as the file name to read lines from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	isJob, _ := cmd.Flags().GetBool("job")
	dirName, _ := cmd.Flags().GetString("direction")
	out := cmd.OutOrStdout()

	var (
		result  batch.Result
		records []types.Conversion
		err     error
	)
	switch {
	case isJob:
		job, jerr := batch.ReadJob(args[0])
		if jerr != nil {
			return jerr
		}
		result, records = batch.RunJob(job, out)
	default:
		dir, derr := types.ParseDirection(dirName)
		if derr != nil {
			return derr
		}
		if args[0] == "-" {
			result, records, err = batch.ConvertLines(dir, cmd.InOrStdin(), out)
		} else {
			result, records, err = batch.ConvertFile(dir, args[0], out)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	recordHistory(ctx, records)

	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d input(s) failed conversion", result.Failed)
	}
	return nil
}

func init() {
	batchCmd.Flags().String("direction", string(types.BinaryToDecimal), "direction: bin2dec or dec2bin")
	batchCmd.Flags().Bool("job", false, "treat the file as a YAML job (direction and inputs)")
	rootCmd.AddCommand(batchCmd)
}
