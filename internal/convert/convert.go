// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert validates numeric strings and converts them between binary
// and decimal. Every function is pure; values have arbitrary precision.
package convert

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/pdiddy/binconv/pkg/types"
)

// ErrInvalidInput is matched by every InvalidInputError through errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports an input string that does not satisfy the format
// constraints of the requested direction.
type InvalidInputError struct {
	Direction types.Direction
	Input     string
}

func (e *InvalidInputError) Error() string {
	kind := "decimal"
	if e.Direction == types.BinaryToDecimal {
		kind = "binary"
	}
	return fmt.Sprintf("invalid %s value %q", kind, e.Input)
}

// Is lets errors.Is(err, ErrInvalidInput) match.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// IsValidBinary reports whether input is a non-empty string of '0' and '1'.
func IsValidBinary(input string) bool {
	return isDigits(input, '1')
}

// IsValidDecimal reports whether input is a non-empty string of ASCII
// decimal digits. Signs, spaces, and non-ASCII digits are rejected.
func IsValidDecimal(input string) bool {
	return isDigits(input, '9')
}

func isDigits(s string, hi byte) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > hi {
			return false
		}
	}
	return true
}

// StripBinaryPrefix removes a leading "0b" or "0B". Other strings are
// returned unchanged.
func StripBinaryPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'b' || s[1] == 'B') {
		return s[2:]
	}
	return s
}

// BinaryToDecimal parses input as a base-2 numeral. Leading zeros are
// accepted.
func BinaryToDecimal(input string) (*big.Int, error) {
	if !IsValidBinary(input) {
		return nil, &InvalidInputError{Direction: types.BinaryToDecimal, Input: input}
	}
	n, ok := new(big.Int).SetString(input, 2)
	if !ok {
		return nil, &InvalidInputError{Direction: types.BinaryToDecimal, Input: input}
	}
	return n, nil
}

// DecimalToBinary parses input as a non-negative base-10 numeral and returns
// its binary form without leading zeros or prefix. Zero maps to "0".
func DecimalToBinary(input string) (string, error) {
	if !IsValidDecimal(input) {
		return "", &InvalidInputError{Direction: types.DecimalToBinary, Input: input}
	}
	n, ok := new(big.Int).SetString(input, 10)
	if !ok {
		return "", &InvalidInputError{Direction: types.DecimalToBinary, Input: input}
	}
	return n.Text(2), nil
}

// Valid reports whether input is acceptable for the given direction. Unknown
// directions accept nothing.
func Valid(dir types.Direction, input string) bool {
	switch dir {
	case types.BinaryToDecimal:
		return IsValidBinary(input)
	case types.DecimalToBinary:
		return IsValidDecimal(input)
	default:
		return false
	}
}

// Convert runs the conversion for dir and returns the formatted result.
func Convert(dir types.Direction, input string) (string, error) {
	switch dir {
	case types.BinaryToDecimal:
		n, err := BinaryToDecimal(input)
		if err != nil {
			return "", err
		}
		return n.String(), nil
	case types.DecimalToBinary:
		return DecimalToBinary(input)
	default:
		return "", fmt.Errorf("unknown direction %q", dir)
	}
}

// Record runs Convert and captures the outcome as a Conversion stamped with
// the current UTC time.
func Record(dir types.Direction, input string) types.Conversion {
	c := types.Conversion{Direction: dir, Input: input, CreatedAt: time.Now().UTC()}
	out, err := Convert(dir, input)
	if err != nil {
		c.Error = err.Error()
		return c
	}
	c.Output = out
	return c
}
