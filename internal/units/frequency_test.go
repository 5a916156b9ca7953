package units

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNormalizeMHz(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"600 kHz", 0.6},
		{"5.000 MHz", 5.0},
		{"146.520", 146.52},
		{"garbage", 0},
		{"", 0},
		{"  1.5MHZ  ", 1.5},
		{"12.5khz", 0.0125},
		{"kHz", 0},
		{"-0.6", -0.6},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormalizeMHz(tt.in), 1e-12)
		})
	}
}

func TestNormalizeKHz(t *testing.T) {
	assert.InDelta(t, 5.0, NormalizeKHz("5.00 kHz"), 1e-9)
	assert.InDelta(t, 12.5, NormalizeKHz("12.5 kHz"), 1e-9)
	assert.InDelta(t, 25.0, NormalizeKHz("0.025 MHz"), 1e-9)
	assert.InDelta(t, 5000.0, NormalizeKHz("5"), 1e-9)
	assert.InDelta(t, 0.0, NormalizeKHz("n/a"), 1e-9)
}

func TestParseMHz_Errors(t *testing.T) {
	_, err := ParseMHz("")
	require.ErrorIs(t, err, ErrEmpty)

	_, err = ParseMHz("   MHz ")
	require.ErrorIs(t, err, ErrEmpty)

	_, err = ParseMHz("abc kHz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"abc kHz"`)
}

func TestParseMHz_NumberGrammar(t *testing.T) {
	f, err := ParseMHz("0x1p4")
	require.NoError(t, err)
	assert.Equal(t, 16.0, f)

	_, err = ParseMHz("1_000")
	assert.Error(t, err)
	assert.Equal(t, 0.0, NormalizeMHz("1_000"))
}

func TestNormalizeMHz_NeverPanics(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "value")
		f, err := ParseMHz(s)
		if err != nil && f != 0 {
			t.Fatalf("failed parse of %q returned %v", s, f)
		}
		if err != nil && NormalizeMHz(s) != 0 {
			t.Fatalf("NormalizeMHz(%q) did not zero a failed parse", s)
		}
	})
}

func TestNormalizeMHz_KHzSuffixScales(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 1_000_000).Draw(t, "n")
		mhz := NormalizeMHz(strconv.Itoa(n) + " kHz")
		if mhz != float64(n)/1000 {
			t.Fatalf("%d kHz -> %v MHz", n, mhz)
		}
	})
}
