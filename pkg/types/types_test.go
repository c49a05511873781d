// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{in: "bin2dec", want: BinaryToDecimal},
		{in: "dec2bin", want: DecimalToBinary},
		{in: "BIN2DEC", wantErr: true},
		{in: "", wantErr: true},
		{in: "hex", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown direction")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConversionFailed(t *testing.T) {
	assert.False(t, Conversion{Output: "5"}.Failed())
	assert.True(t, Conversion{Error: `invalid binary value "2"`}.Failed())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 20, cfg.History.MaxResults)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 5, cfg.Client.MaxRetries)
	assert.Equal(t, LogConsole, cfg.Log.Format)
}
