package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexOffset(t *testing.T) {
	tests := []struct {
		input    string
		expected Offset
		wantErr  bool
	}{
		{"0x10", 0x10, false},
		{"10", 0x10, false},
		{"0X1f", 0x1F, false},
		{"ff", 0xFF, false},
		{"-0x8", -8, false},
		{"+0x4", 4, false},
		{" 0x18 ", 0x18, false},
		{"", 0, true},
		{"0x", 0, true},
		{"xyz", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHexOffset(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseOffsets_NumbersAndStringsNormalizeAlike(t *testing.T) {
	fromNumbers, err := ParseOffsets(0x18, uint32(4), int64(-8))
	require.NoError(t, err)

	fromStrings, err := ParseOffsets("0x18", "4", "-0x8")
	require.NoError(t, err)

	assert.Equal(t, fromNumbers, fromStrings)
	assert.Equal(t, OffsetChain{0x18, 4, -8}, fromNumbers)
}

func TestParseOffsets_DecimalLookingStringIsHex(t *testing.T) {
	chain, err := ParseOffsets("16", 16)
	require.NoError(t, err)

	assert.Equal(t, Offset(0x16), chain[0])
	assert.Equal(t, Offset(16), chain[1])
}

func TestParseOffsets_Errors(t *testing.T) {
	_, err := ParseOffsets(1.5)
	assert.ErrorContains(t, err, "unsupported type float64")

	_, err = ParseOffsets(0x10, "zz")
	assert.ErrorContains(t, err, "offset 1")
}

func TestMustParseOffsets_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParseOffsets("not hex") })
	assert.NotPanics(t, func() { MustParseOffsets() })
}

func TestOffset_ApplyWrapsNegative(t *testing.T) {
	assert.Equal(t, uintptr(0x1000), Offset(-0x10).apply(0x1010))
	assert.Equal(t, uintptr(0x1020), Offset(0x10).apply(0x1010))
}

func TestOffsetChain_String(t *testing.T) {
	assert.Equal(t, "[0x18 -0x8 0x0]", OffsetChain{0x18, -8, 0}.String())
	assert.Equal(t, "[]", OffsetChain{}.String())
}
