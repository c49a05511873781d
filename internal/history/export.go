// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/binconv/pkg/types"
)

const exportLimit = 100000

// ExportYAML writes the history (or a filtered subset) to path as YAML.
func (s *Store) ExportYAML(ctx context.Context, opts ListOptions, path string) (int, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return 0, err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return 0, fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return len(entries), nil
}

// ExportJSON writes the history (or a filtered subset) to path as JSON.
func (s *Store) ExportJSON(ctx context.Context, opts ListOptions, path string) (int, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return 0, err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("marshaling JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return len(entries), nil
}

func (s *Store) exportEntries(ctx context.Context, opts ListOptions) ([]types.Conversion, error) {
	if opts.Limit <= 0 {
		opts.Limit = exportLimit
	}
	entries, err := s.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	if entries == nil {
		entries = []types.Conversion{}
	}
	return entries, nil
}
