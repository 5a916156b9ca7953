// Package units converts the frequency strings found in RT Systems exports
// ("600 kHz", "5.000 MHz", "146.520") into MHz.
package units

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmpty is returned by ParseMHz for blank input.
var ErrEmpty = errors.New("empty frequency value")

// ParseMHz parses value and returns it in MHz. A "khz" or "mhz" token is
// matched case-insensitively anywhere in the string; without one the value
// is taken to be MHz already.
func ParseMHz(value string) (float64, error) {
	lower := strings.ToLower(value)

	scale := 1.0
	switch {
	case strings.Contains(lower, "khz"):
		lower = strings.ReplaceAll(lower, "khz", "")
		scale = 1000
	case strings.Contains(lower, "mhz"):
		lower = strings.ReplaceAll(lower, "mhz", "")
	}

	numeric := strings.TrimSpace(lower)
	if numeric == "" {
		return 0, ErrEmpty
	}

	// Go float syntax: hex floats ("0x1p4") parse, underscores ("1_000") do not.
	f, err := strconv.ParseFloat(numeric, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid frequency %q: %w", value, err)
	}
	return f / scale, nil
}

// NormalizeMHz is ParseMHz with every failure mapped to 0.
func NormalizeMHz(value string) float64 {
	f, err := ParseMHz(value)
	if err != nil {
		return 0
	}
	return f
}

// NormalizeKHz returns value in kHz, going through NormalizeMHz so that
// unit-less input is read as MHz.
func NormalizeKHz(value string) float64 {
	return NormalizeMHz(value) * 1000
}
