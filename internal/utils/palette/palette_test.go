package palette_test

import (
	"testing"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/utils/palette"
	"github.com/stretchr/testify/assert"
)

func TestColor_CyclesThroughPalette(t *testing.T) {
	first := palette.Color(0)
	assert.NotEmpty(t, first)
	assert.Equal(t, first, palette.Color(9), "index 9 should wrap to index 0 of a 9-color palette")
	assert.Equal(t, palette.Color(1), palette.Color(10))
	assert.Equal(t, first, palette.Color(-5), "negative indexes fall back to the first color")
}

func TestChildShade_DarkensByFifteenPercentPerSibling(t *testing.T) {
	tests := []struct {
		name string
		base string
		i    int
		want string
	}{
		{"sibling zero keeps the parent color", "#646464", 0, "#646464"},
		{"first sibling is 85 percent", "#646464", 1, "#555555"},
		{"second sibling is 70 percent", "#646464", 2, "#464646"},
		{"mixed channels scale independently", "#FF8000", 1, "#D86C00"},
		{"deep siblings clamp to black", "#646464", 7, "#000000"},
		{"deeper siblings stay clamped", "#FFFFFF", 12, "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, palette.ChildShade(tt.base, tt.i))
		})
	}
}

func TestChildShade_IsDeterministic(t *testing.T) {
	a := palette.ChildShade("#5470C6", 3)
	b := palette.ChildShade("#5470C6", 3)
	assert.Equal(t, a, b)
}

func TestChildShade_PassesThroughUnparsableColor(t *testing.T) {
	assert.Equal(t, "teal", palette.ChildShade("teal", 2))
	assert.Equal(t, "#12", palette.ChildShade("#12", 1))
}
