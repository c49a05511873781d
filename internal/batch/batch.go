// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch converts many numeric strings in one run, either from a
// line-oriented text stream or from a YAML job file.
package batch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/binconv/internal/convert"
	"github.com/pdiddy/binconv/pkg/types"
)

// Result holds the outcome of a batch conversion run.
type Result struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of entries processed.
func (r Result) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any entry failed conversion.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Job is the on-disk form of a batch: one direction and a list of inputs.
type Job struct {
	Direction types.Direction `yaml:"direction"`
	Inputs    []string        `yaml:"inputs"`
}

// ReadJob loads a YAML job file and checks its direction.
func ReadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job file: %w", err)
	}
	var job Job
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("parsing job file: %w", err)
	}
	if _, err := types.ParseDirection(string(job.Direction)); err != nil {
		return nil, fmt.Errorf("job file %s: %w", path, err)
	}
	return &job, nil
}

// convertEntry converts one trimmed entry, writes its status line, and
// returns the recorded conversion. Blank entries and # comments are skipped
// and reported with ok == false.
func convertEntry(dir types.Direction, raw string, w io.Writer) (c types.Conversion, ok bool) {
	entry := strings.TrimSpace(raw)
	if entry == "" || strings.HasPrefix(entry, "#") {
		return types.Conversion{}, false
	}
	c = convert.Record(dir, entry)
	if c.Failed() {
		fmt.Fprintf(w, "failed:  %s (%s)\n", entry, c.Error)
	} else {
		fmt.Fprintf(w, "%s -> %s\n", entry, c.Output)
	}
	return c, true
}

func tally(result *Result, c types.Conversion, ok bool) {
	switch {
	case !ok:
		result.Skipped++
	case c.Failed():
		result.Failed++
	default:
		result.Converted++
	}
}

func writeSummary(w io.Writer, r Result) {
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		r.Converted, r.Skipped, r.Failed, r.Total())
}

// ConvertLines converts each line read from r, printing per-line status to w
// and returning a summary plus every attempted conversion.
func ConvertLines(dir types.Direction, r io.Reader, w io.Writer) (Result, []types.Conversion, error) {
	var (
		result  Result
		records []types.Conversion
	)
	// Lines are unbounded: a bufio.Scanner would stop at its token limit.
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			c, ok := convertEntry(dir, line, w)
			tally(&result, c, ok)
			if ok {
				records = append(records, c)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return result, records, fmt.Errorf("reading input: %w", err)
		}
	}
	writeSummary(w, result)
	return result, records, nil
}

// ConvertFile opens path and delegates to ConvertLines.
func ConvertFile(dir types.Direction, path string, w io.Writer) (Result, []types.Conversion, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ConvertLines(dir, f, w)
}

// RunJob converts every input of job, printing per-entry status to w.
func RunJob(job *Job, w io.Writer) (Result, []types.Conversion) {
	var (
		result  Result
		records []types.Conversion
	)
	for _, in := range job.Inputs {
		c, ok := convertEntry(job.Direction, in, w)
		tally(&result, c, ok)
		if ok {
			records = append(records, c)
		}
	}
	writeSummary(w, result)
	return result, records
}
