// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// Direction names which way a conversion goes.
type Direction string

const (
	// BinaryToDecimal parses a binary numeral and prints its decimal value.
	BinaryToDecimal Direction = "bin2dec"
	// DecimalToBinary parses a decimal numeral and prints its binary form.
	DecimalToBinary Direction = "dec2bin"
)

// ParseDirection validates a direction name. Only "bin2dec" and "dec2bin"
// are accepted.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case BinaryToDecimal, DecimalToBinary:
		return d, nil
	default:
		return "", fmt.Errorf("unknown direction %q: use %s or %s", s, BinaryToDecimal, DecimalToBinary)
	}
}

// Conversion records one conversion attempt. Error is empty when the
// conversion succeeded.
type Conversion struct {
	// Direction is the conversion direction.
	Direction Direction `json:"direction" yaml:"direction"`

	// Input is the raw string the user supplied.
	Input string `json:"input" yaml:"input"`

	// Output is the formatted result. Empty on failure.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Error is the user-facing failure message. Empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// CreatedAt is when the conversion ran.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Failed reports whether the conversion did not produce a result.
func (c Conversion) Failed() bool {
	return c.Error != ""
}
