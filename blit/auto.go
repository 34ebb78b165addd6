package blit

// AutoSelect resolves [ModeAuto] to a concrete blitter given the
// ambient conditions the caller already knows (§4.3 "AUTO selection").
// isTTY false (e.g. output is a pipe) always yields ASCII; so does
// hasUnicode false (a terminal not known to render Unicode block
// glyphs, §4.3 "not-Unicode -> ASCII"). preferBraille is taken as-is
// and never inferred (Open Question #1 in this engine's capability
// model: braille's higher resolution trades off against its
// monochrome-per-cell limitation, a call only the caller can make).
// Otherwise the choice falls back through sextant, quadrant, halfblock
// in descending resolution order, gated on whether the cell pixel
// geometry is known at all.
func AutoSelect(isTTY, hasUnicode, preferBraille bool, cellPixelW, cellPixelH int) Mode {
	if !isTTY {
		return ModeASCII
	}
	if !hasUnicode {
		return ModeASCII
	}
	if preferBraille {
		return ModeBraille
	}
	if cellPixelW <= 0 || cellPixelH <= 0 {
		return ModeHalfblock
	}
	// A cell roughly twice as tall as wide accommodates a 2x3 sextant
	// grid with near-square sub-pixels; flatter cells fall back to the
	// 2x2 quadrant grid instead of distorting sub-pixel aspect.
	if cellPixelH*2 >= cellPixelW*3 {
		return ModeSextant
	}
	return ModeQuadrant
}

// SubGrid returns the sample-grid width/height for mode, or (0,0) for
// modes that don't sample a grid (ASCII samples the whole cell as one
// region; treat it as 1x1 for CellSamples callers).
func SubGrid(mode Mode) (w, h int) {
	switch mode {
	case ModeASCII:
		return 1, 1
	case ModeHalfblock:
		return 1, 2
	case ModeQuadrant:
		return 2, 2
	case ModeSextant:
		return 2, 3
	case ModeBraille:
		return 2, 4
	default:
		return 0, 0
	}
}

// Blit dispatches to the concrete blitter for mode.
func Blit(mode Mode, samples []Sample, currentBg RGB) Cell {
	switch mode {
	case ModeASCII:
		return ASCII(samples, currentBg)
	case ModeHalfblock:
		return Halfblock(samples, currentBg)
	case ModeQuadrant:
		return Quadrant(samples, currentBg)
	case ModeSextant:
		return Sextant(samples, currentBg)
	case ModeBraille:
		return Braille(samples, currentBg)
	default:
		return Cell{Skip: true}
	}
}
