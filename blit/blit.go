// Package blit maps RGBA pixel rectangles onto the Unicode sub-cell
// glyphs a terminal can render in place of a true pixel blit: halfblock
// (1x2), quadrant (2x2), sextant (2x3), braille (2x4), and a plain
// ASCII fallback, plus an AUTO selector (§4.3).
package blit

import "image"

// Mode selects a blitter.
type Mode int

const (
	ModeAuto Mode = iota
	ModeASCII
	ModeHalfblock
	ModeQuadrant
	ModeSextant
	ModeBraille
	ModePixel // rejected as unsupported at this layer (§4.3)
)

// AlphaThreshold is the opacity cutoff below which a sub-pixel sample
// is treated as transparent and replaced by the cell's current
// background for color-averaging purposes (§4.3).
const AlphaThreshold = 128

// RGB is a packed 24-bit color, matching termcore.RGB's shape so
// callers can convert without an import cycle (blit does not import
// the root termcore package).
type RGB struct{ R, G, B uint8 }

// Sample is one sub-pixel read from the source image, alpha included
// so the caller can apply the threshold rule.
type Sample struct {
	R, G, B, A uint8
}

// Cell is the result of blitting one destination cell: the glyph to
// write, its foreground/background colors, and whether anything should
// be written at all (Skip means every sampled sub-pixel was
// transparent — the destination cell is left untouched, §8 "Blitter
// skip-when-transparent").
type Cell struct {
	Glyph  rune
	Fg, Bg RGB
	Skip   bool
}

// axisIndex maps a global sub-pixel coordinate back into source-image
// space: floor((subCoord * srcLen) / (dstCells * subPerCell)), clamped
// to srcLen-1 (§4.3's deterministic nearest-neighbor axis map).
func axisIndex(subCoord, subPerCell, dstCells, srcLen int) int {
	if srcLen <= 0 || dstCells <= 0 || subPerCell <= 0 {
		return 0
	}
	v := (subCoord * srcLen) / (dstCells * subPerCell)
	if v >= srcLen {
		v = srcLen - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

// CellSamples reads the subW x subH sub-pixel grid for destination
// cell (cellX,cellY) out of an dstCols x dstRows grid of cells mapped
// onto src, row-major (index = row*subW+col).
func CellSamples(src *image.NRGBA, dstCols, dstRows, cellX, cellY, subW, subH int) []Sample {
	b := src.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	out := make([]Sample, subW*subH)
	for sy := 0; sy < subH; sy++ {
		gy := cellY*subH + sy
		iy := axisIndex(gy, subH, dstRows, srcH)
		for sx := 0; sx < subW; sx++ {
			gx := cellX*subW + sx
			ix := axisIndex(gx, subW, dstCols, srcW)
			c := src.NRGBAAt(b.Min.X+ix, b.Min.Y+iy)
			out[sy*subW+sx] = Sample{c.R, c.G, c.B, c.A}
		}
	}
	return out
}

// anyOpaque reports whether at least one sample clears the alpha
// threshold.
func anyOpaque(samples []Sample) bool {
	for _, s := range samples {
		if s.A >= AlphaThreshold {
			return true
		}
	}
	return false
}

// effectiveColor returns s's own color if opaque, else bg (§4.3 "below
// -> use the cell's current background as sample color").
func effectiveColor(s Sample, bg RGB) RGB {
	if s.A >= AlphaThreshold {
		return RGB{s.R, s.G, s.B}
	}
	return bg
}

func luminance709(c RGB) float64 {
	return 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
}

func meanRGB(samples []Sample, bg RGB, idx []int) RGB {
	if len(idx) == 0 {
		return bg
	}
	var r, g, b int
	for _, i := range idx {
		c := effectiveColor(samples[i], bg)
		r += int(c.R)
		g += int(c.G)
		b += int(c.B)
	}
	n := len(idx)
	return RGB{uint8(r / n), uint8(g / n), uint8(b / n)}
}
