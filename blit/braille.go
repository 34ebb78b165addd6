package blit

// brailleDotBit maps a row-major 2x4 sample index (row0col0, row0col1,
// row1col0, row1col1, row2col0, row2col1, row3col0, row3col1) to its
// Unicode Braille Pattern dot bit (dot1..dot8 in the standard
// left-column-top-to-bottom-then-right-column order).
var brailleDotBit = [8]uint{0, 3, 1, 4, 2, 5, 6, 7}

// Braille renders a cell as a single Braille Pattern glyph (U+2800 +
// an 8-bit dot pattern) over a 2x4 sample grid: a dot is set when its
// sample clears the opacity threshold, and the glyph's single
// foreground color is the mean of the set dots' colors (§4.3 "Braille
// (2x4, monochrome)").
func Braille(samples []Sample, currentBg RGB) Cell {
	if len(samples) != 8 {
		return Cell{Skip: true}
	}
	var pattern rune
	var setIdx []int
	for i, s := range samples {
		if s.A >= AlphaThreshold {
			pattern |= 1 << brailleDotBit[i]
			setIdx = append(setIdx, i)
		}
	}
	if len(setIdx) == 0 {
		return Cell{Skip: true}
	}
	fg := meanRGB(samples, currentBg, setIdx)
	return Cell{Glyph: 0x2800 + pattern, Fg: fg, Bg: currentBg}
}
