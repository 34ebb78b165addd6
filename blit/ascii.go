package blit

// ASCII renders the cell as a single foreground glyph chosen from a
// fixed luminance ramp, on the caller's current background — the
// fallback blitter for pipes and terminals with no block-element
// support (§4.3).
func ASCII(samples []Sample, bg RGB) Cell {
	if !anyOpaque(samples) {
		return Cell{Skip: true}
	}
	const ramp = " .:-=+*#%@"
	var sumLum float64
	var r, g, b, n int
	for _, s := range samples {
		c := effectiveColor(s, bg)
		sumLum += luminance709(c)
		r += int(c.R)
		g += int(c.G)
		b += int(c.B)
		n++
	}
	avg := sumLum / float64(n)
	idx := int(avg / 256.0 * float64(len(ramp)))
	if idx >= len(ramp) {
		idx = len(ramp) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return Cell{
		Glyph: rune(ramp[idx]),
		Fg:    RGB{uint8(r / n), uint8(g / n), uint8(b / n)},
		Bg:    bg,
	}
}
