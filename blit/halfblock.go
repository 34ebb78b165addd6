package blit

// upperHalfBlock is U+2580 "UPPER HALF BLOCK": foreground paints the
// top sub-row, background shows through the bottom sub-row.
const upperHalfBlock = '▀'

// lowerHalfBlock is U+2584 "LOWER HALF BLOCK": foreground paints the
// bottom sub-row, background shows through the top sub-row.
const lowerHalfBlock = '▄'

// space is emitted when top and bottom are close enough in color that a
// single-color space glyph (fg=bg=that color) is indistinguishable from
// splitting the cell (§4.3 "Δ²≤256 → single-color space").
const space = ' '

// colorDistSq returns the sum of squared per-channel RGB distances
// between a and b.
func colorDistSq(a, b RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// Halfblock splits a cell into top/bottom halves using a 1x2 sample
// grid (samples[0]=top, samples[1]=bottom) (§4.3 "Halfblock (1x2)").
// If the two halves are close enough in color (Δ²≤256) it collapses to
// a single-color space glyph with fg=bg=that color; otherwise it picks
// which half carries the upper-half-block foreground by opacity (an
// opaque half over an under-background one wins) or, if both samples
// are opaque, by BT.709 luminance.
func Halfblock(samples []Sample, currentBg RGB) Cell {
	if len(samples) != 2 {
		return Cell{Skip: true}
	}
	if !anyOpaque(samples) {
		return Cell{Skip: true}
	}
	top := effectiveColor(samples[0], currentBg)
	bottom := effectiveColor(samples[1], currentBg)

	if colorDistSq(top, bottom) <= 256 {
		return Cell{Glyph: space, Fg: top, Bg: top}
	}

	topOpaque := samples[0].A >= AlphaThreshold
	bottomOpaque := samples[1].A >= AlphaThreshold
	var upperIsFg bool
	switch {
	case topOpaque && !bottomOpaque:
		upperIsFg = true
	case bottomOpaque && !topOpaque:
		upperIsFg = false
	default:
		upperIsFg = luminance709(top) >= luminance709(bottom)
	}
	if upperIsFg {
		return Cell{Glyph: upperHalfBlock, Fg: top, Bg: bottom}
	}
	return Cell{Glyph: lowerHalfBlock, Fg: bottom, Bg: top}
}
