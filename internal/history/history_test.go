// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/binconv/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.HistoryConfig{
		Dir:        filepath.Join(t.TempDir(), "history"),
		MaxResults: 20,
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T, s *Store) {
	t.Helper()
	require.NoError(t, s.RecordAll(context.Background(), []types.Conversion{
		{Direction: types.BinaryToDecimal, Input: "1000101", Output: "69", CreatedAt: base},
		{Direction: types.DecimalToBinary, Input: "69", Output: "1000101", CreatedAt: base.Add(time.Second)},
		{Direction: types.BinaryToDecimal, Input: "1021", Error: `invalid binary value "1021"`, CreatedAt: base.Add(2 * time.Second)},
		{Direction: types.DecimalToBinary, Input: "0", Output: "0", CreatedAt: base.Add(2*time.Second + time.Millisecond)},
	}))
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	s := testStore(t)
	_, err := os.Stat(filepath.Join(s.Dir(), dbFile))
	assert.NoError(t, err)
}

func TestNewStore_Reopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "history")
	cfg := types.HistoryConfig{Dir: dir}

	s1, err := NewStore(cfg)
	require.NoError(t, err)
	require.NoError(t, s1.Record(context.Background(), types.Conversion{
		Direction: types.DecimalToBinary, Input: "5", Output: "101",
	}))
	require.NoError(t, s1.Close())

	s2, err := NewStore(cfg)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "101", got[0].Output)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestList(t *testing.T) {
	s := testStore(t)
	seed(t, s)
	ctx := context.Background()

	tests := []struct {
		name   string
		opts   ListOptions
		inputs []string
	}{
		{name: "all newest first", opts: ListOptions{}, inputs: []string{"0", "1021", "69", "1000101"}},
		{name: "by direction", opts: ListOptions{Direction: types.BinaryToDecimal}, inputs: []string{"1021", "1000101"}},
		{name: "failed only", opts: ListOptions{FailedOnly: true}, inputs: []string{"1021"}},
		{name: "limit", opts: ListOptions{Limit: 2}, inputs: []string{"0", "1021"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(ctx, tt.opts)
			require.NoError(t, err)
			var inputs []string
			for _, c := range got {
				inputs = append(inputs, c.Input)
			}
			assert.Equal(t, tt.inputs, inputs)
		})
	}
}

func TestList_PreservesFields(t *testing.T) {
	s := testStore(t)
	seed(t, s)

	got, err := s.List(context.Background(), ListOptions{FailedOnly: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	c := got[0]
	assert.Equal(t, types.BinaryToDecimal, c.Direction)
	assert.Empty(t, c.Output)
	assert.Equal(t, `invalid binary value "1021"`, c.Error)
	assert.True(t, c.CreatedAt.Equal(base.Add(2*time.Second)))
}

func TestList_BadTimestamp(t *testing.T) {
	s := testStore(t)
	_, err := s.db.Exec(`INSERT INTO conversions (direction, input, output, error, created_at)
		VALUES ('bin2dec', '1', '1', '', 'yesterday')`)
	require.NoError(t, err)

	_, err = s.List(context.Background(), ListOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing created_at")
}

func TestClear(t *testing.T) {
	s := testStore(t)
	seed(t, s)
	ctx := context.Background()

	n, err := s.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	got, err := s.List(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecordAll_Empty(t *testing.T) {
	s := testStore(t)
	assert.NoError(t, s.RecordAll(context.Background(), nil))
}

func TestExportYAML(t *testing.T) {
	s := testStore(t)
	seed(t, s)

	path := filepath.Join(t.TempDir(), "history.yaml")
	n, err := s.ExportYAML(context.Background(), ListOptions{Direction: types.DecimalToBinary}, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []types.Conversion
	require.NoError(t, yaml.Unmarshal(data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "0", entries[0].Input)
	assert.Equal(t, "1000101", entries[1].Output)
}

func TestExport_WriteFailure(t *testing.T) {
	s := testStore(t)
	seed(t, s)
	path := filepath.Join(t.TempDir(), "missing-dir", "history.yaml")

	n, err := s.ExportYAML(context.Background(), ListOptions{}, path)
	require.Error(t, err)
	assert.Equal(t, 0, n)
	assert.Contains(t, err.Error(), "writing")

	n, err = s.ExportJSON(context.Background(), ListOptions{}, path)
	require.Error(t, err)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExportJSON_Empty(t *testing.T) {
	s := testStore(t)

	path := filepath.Join(t.TempDir(), "history.json")
	n, err := s.ExportJSON(context.Background(), ListOptions{}, path)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []types.Conversion
	require.NoError(t, json.Unmarshal(data, &entries))
	assert.Empty(t, entries)
	assert.Equal(t, "[]", string(data))
}
