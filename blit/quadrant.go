package blit

// quadrantGlyphs maps a 4-bit pattern (bit0=top-left, bit1=top-right,
// bit2=bottom-left, bit3=bottom-right) to the Unicode block-elements
// quadrant glyph with exactly those quadrants filled.
var quadrantGlyphs = [16]rune{
	0:  ' ',
	1:  '▘',
	2:  '▝',
	3:  '▀',
	4:  '▖',
	5:  '▌',
	6:  '▞',
	7:  '▛',
	8:  '▗',
	9:  '▚',
	10: '▐',
	11: '▜',
	12: '▄',
	13: '▙',
	14: '▟',
	15: '█',
}

// Quadrant partitions a 2x2 sub-cell grid (row-major: top-left,
// top-right, bottom-left, bottom-right) into a minimum-error two-color
// pattern and emits the matching quadrant block glyph (§4.3 "Quadrant
// (2x2)").
func Quadrant(samples []Sample, currentBg RGB) Cell {
	if len(samples) != 4 {
		return Cell{Skip: true}
	}
	if !anyOpaque(samples) {
		return Cell{Skip: true}
	}
	pattern, fg, bg := bestPartition(samples, currentBg, 4)
	return Cell{Glyph: quadrantGlyphs[pattern], Fg: fg, Bg: bg}
}
