// Package literal encodes Yul literals as exact U256 construction expressions.
package literal

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/holiman/uint256"

	"github.com/Oxidefier/oxidefier/internal/yul"
)

// WordHexLen is the number of hex digits in a 256-bit word.
const WordHexLen = 64

var (
	// ErrInvalidNumber is returned for number text that is not decimal or
	// 0x-prefixed hex, or that does not fit in 256 bits.
	ErrInvalidNumber = errors.New("invalid number literal")
	// ErrInvalidString is returned for a string payload that is not hex or
	// is longer than one word.
	ErrInvalidString = errors.New("invalid string literal")
)

// Parse reads a decimal or 0x-prefixed hexadecimal literal into a 256-bit
// unsigned integer.
func Parse(text string) (*uint256.Int, error) {
	text = strings.TrimSpace(text)
	var (
		v   *uint256.Int
		err error
	)
	if digits, ok := strings.CutPrefix(text, "0x"); ok {
		if digits == "" {
			return nil, fmt.Errorf("%w %q: no digits", ErrInvalidNumber, text)
		}
		v, err = uint256.FromHex("0x" + trimZeros(strings.ToLower(digits)))
	} else {
		if text == "" || strings.TrimLeft(text, "0123456789") != "" {
			return nil, fmt.Errorf("%w %q: not a decimal number", ErrInvalidNumber, text)
		}
		v, err = uint256.FromDecimal(trimZeros(text))
	}
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidNumber, text, err)
	}
	return v, nil
}

// trimZeros drops leading zeros, which uint256 rejects in hex input.
func trimZeros(digits string) string {
	t := strings.TrimLeft(digits, "0")
	if t == "" && digits != "" {
		return "0"
	}
	return t
}

// Number encodes a number literal. Values below 2^128 use the compact
// U256::from(0x..u128) form; larger values are spelled out as 32 big-endian
// bytes.
func Number(text string) (string, error) {
	v, err := Parse(text)
	if err != nil {
		return "", err
	}
	return FromInt(v), nil
}

// FromInt encodes an already parsed value.
func FromInt(v *uint256.Int) string {
	if v.BitLen() <= 128 {
		return fmt.Sprintf("U256::from(%su128)", v.Hex())
	}
	word := v.Bytes32()
	parts := make([]string, len(word))
	for i, b := range word {
		parts[i] = fmt.Sprintf("0x%02x", b)
	}
	return "U256::from_be_slice(&[" + strings.Join(parts, ", ") + "])"
}

// String encodes a hex string payload. The payload is left-aligned in the
// word, so it is right-padded with zero nibbles to 64 digits.
func String(hexPayload string) (string, error) {
	if len(hexPayload) > WordHexLen {
		return "", fmt.Errorf("%w: %d hex digits exceed one word", ErrInvalidString, len(hexPayload))
	}
	if len(hexPayload)%2 != 0 {
		return "", fmt.Errorf("%w: odd hex length %d", ErrInvalidString, len(hexPayload))
	}
	if _, err := hex.DecodeString(hexPayload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidString, err)
	}
	padded := hexPayload + strings.Repeat("0", WordHexLen-len(hexPayload))
	return `from_hex("` + padded + `")`, nil
}

// Encode encodes any literal node.
func Encode(lit *yul.Literal) (string, error) {
	switch lit.LiteralKind {
	case yul.LiteralString:
		payload := lit.HexValue
		if payload == "" && lit.Value != "" {
			payload = hex.EncodeToString([]byte(lit.Value))
		}
		return String(payload)
	case yul.LiteralBool:
		switch lit.Value {
		case "true":
			return Number("1")
		case "false":
			return Number("0")
		}
		return "", fmt.Errorf("%w: bool literal %q", ErrInvalidNumber, lit.Value)
	default:
		return Number(lit.Value)
	}
}
