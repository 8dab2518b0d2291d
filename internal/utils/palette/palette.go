package palette

import (
	"fmt"
	"strconv"
	"strings"
)

// chartPalette is the fixed palette for top-level chart nodes, cycled by index.
var chartPalette = []string{
	"#5470C6",
	"#91CC75",
	"#FAC858",
	"#EE6666",
	"#73C0DE",
	"#3BA272",
	"#FC8452",
	"#9A60B4",
	"#EA7CCC",
}

const shadeStep = 0.15

// Color returns the palette entry for a top-level node index, wrapping
// around when the index exceeds the palette length.
func Color(i int) string {
	if i < 0 {
		i = 0
	}
	return chartPalette[i%len(chartPalette)]
}

// ChildShade derives a child node's color from its parent's by darkening
// every RGB channel by 15% per sibling index, clamped to [0, 255]. Sibling 0
// keeps the parent color. The derivation is deterministic so charts render
// the same shades on every recompute.
func ChildShade(base string, i int) string {
	r, g, b, ok := parseHex(base)
	if !ok {
		return base
	}
	factor := 1 - float64(i)*shadeStep
	return fmt.Sprintf("#%02X%02X%02X", scale(r, factor), scale(g, factor), scale(b, factor))
}

func scale(channel uint8, factor float64) uint8 {
	v := float64(channel) * factor
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func parseHex(s string) (r, g, b uint8, ok bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	rv, err1 := strconv.ParseUint(s[0:2], 16, 8)
	gv, err2 := strconv.ParseUint(s[2:4], 16, 8)
	bv, err3 := strconv.ParseUint(s[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	return uint8(rv), uint8(gv), uint8(bv), true
}
