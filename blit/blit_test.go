package blit

import (
	"image"
	"image/color"
	"testing"
)

func solidNRGBA(w, h int, c Sample) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
	return img
}

func TestAxisIndexClampsToSourceBounds(t *testing.T) {
	cases := []struct {
		sub, perCell, cells, srcLen, want int
	}{
		{0, 2, 4, 10, 0},
		{7, 2, 4, 10, 8},
		{100, 2, 4, 10, 9},
	}
	for _, c := range cases {
		got := axisIndex(c.sub, c.perCell, c.cells, c.srcLen)
		if got != c.want {
			t.Errorf("axisIndex(%d,%d,%d,%d) = %d, want %d", c.sub, c.perCell, c.cells, c.srcLen, got, c.want)
		}
	}
}

func TestQuadrantAllOpaqueUniformTieBreaksToPatternZero(t *testing.T) {
	// Every pattern has zero error for a uniform cell; the smallest
	// pattern index (0, a space on the sample color background) wins.
	samples := []Sample{
		{255, 0, 0, 255}, {255, 0, 0, 255},
		{255, 0, 0, 255}, {255, 0, 0, 255},
	}
	cell := Quadrant(samples, RGB{0, 0, 0})
	if cell.Skip {
		t.Fatalf("expected non-skipped cell")
	}
	if cell.Glyph != ' ' {
		t.Errorf("glyph = %q, want space (pattern 0)", cell.Glyph)
	}
	if cell.Bg != (RGB{255, 0, 0}) {
		t.Errorf("bg = %+v, want the sample color", cell.Bg)
	}
}

func TestQuadrantAllTransparentSkips(t *testing.T) {
	samples := make([]Sample, 4)
	cell := Quadrant(samples, RGB{1, 2, 3})
	if !cell.Skip {
		t.Fatalf("expected skip for fully transparent cell")
	}
}

func TestQuadrantSplitPicksHalfGlyph(t *testing.T) {
	// top row opaque bright, bottom row opaque dark: best split is
	// top-half vs bottom-half (pattern 3 = bits 0,1 set).
	samples := []Sample{
		{255, 255, 255, 255}, {255, 255, 255, 255},
		{0, 0, 0, 255}, {0, 0, 0, 255},
	}
	cell := Quadrant(samples, RGB{0, 0, 0})
	if cell.Glyph != '▀' {
		t.Errorf("glyph = %q, want upper half block for top/bottom split", cell.Glyph)
	}
}

func TestSextantTableHasNoDuplicateNonSpecialGlyphs(t *testing.T) {
	seen := map[rune]int{}
	for p, r := range sextantGlyphs {
		if p == 0 || p == 21 || p == 42 || p == 63 {
			continue
		}
		seen[r]++
	}
	for r, n := range seen {
		if n != 1 {
			t.Errorf("glyph %q assigned to %d sextant patterns, want 1", r, n)
		}
	}
}

func TestBrailleAllOffSkips(t *testing.T) {
	samples := make([]Sample, 8)
	cell := Braille(samples, RGB{0, 0, 0})
	if !cell.Skip {
		t.Fatalf("expected skip for all-transparent braille cell")
	}
}

func TestBrailleSetsExpectedDotBits(t *testing.T) {
	samples := make([]Sample, 8)
	samples[0] = Sample{255, 255, 255, 255} // row0col0 -> dot1 -> bit0
	cell := Braille(samples, RGB{0, 0, 0})
	if cell.Glyph != 0x2800+1 {
		t.Errorf("glyph = %U, want U+2801", cell.Glyph)
	}
}

func TestHalfblockIdenticalSamplesProducesSpace(t *testing.T) {
	// §8 Scenario 6: a solid-color rectangle renders as a space glyph
	// with fg=bg=that color.
	samples := []Sample{
		{100, 150, 200, 255}, {100, 150, 200, 255},
	}
	cell := Halfblock(samples, RGB{0, 0, 0})
	if cell.Skip {
		t.Fatalf("expected non-skipped cell")
	}
	if cell.Glyph != ' ' {
		t.Errorf("glyph = %q, want space", cell.Glyph)
	}
	if cell.Fg != cell.Bg {
		t.Errorf("fg %+v != bg %+v, want equal", cell.Fg, cell.Bg)
	}
	if cell.Fg != (RGB{100, 150, 200}) {
		t.Errorf("fg = %+v, want sample color", cell.Fg)
	}
}

func TestHalfblockAllTransparentSkips(t *testing.T) {
	samples := make([]Sample, 2)
	cell := Halfblock(samples, RGB{1, 2, 3})
	if !cell.Skip {
		t.Fatalf("expected skip for fully transparent cell")
	}
}

func TestHalfblockOpaqueTopWinsOverUnderBackgroundBottom(t *testing.T) {
	samples := []Sample{
		{255, 0, 0, 255}, // top: opaque red
		{0, 0, 0, 0},     // bottom: fully transparent -> under-background
	}
	cell := Halfblock(samples, RGB{10, 10, 10})
	if cell.Glyph != upperHalfBlock {
		t.Errorf("glyph = %q, want upper half block when only top is opaque", cell.Glyph)
	}
	if cell.Fg != (RGB{255, 0, 0}) {
		t.Errorf("fg = %+v, want top color", cell.Fg)
	}
}

func TestHalfblockOpaqueBottomWinsOverUnderBackgroundTop(t *testing.T) {
	samples := []Sample{
		{0, 0, 0, 0},     // top: fully transparent -> under-background
		{0, 0, 255, 255}, // bottom: opaque blue
	}
	cell := Halfblock(samples, RGB{10, 10, 10})
	if cell.Glyph != lowerHalfBlock {
		t.Errorf("glyph = %q, want lower half block when only bottom is opaque", cell.Glyph)
	}
	if cell.Fg != (RGB{0, 0, 255}) {
		t.Errorf("fg = %+v, want bottom color", cell.Fg)
	}
}

func TestHalfblockBothOpaqueTieBreaksOnLuminance(t *testing.T) {
	samples := []Sample{
		{255, 255, 255, 255}, // top: bright white
		{0, 0, 0, 255},       // bottom: dark black
	}
	cell := Halfblock(samples, RGB{10, 10, 10})
	if cell.Glyph != upperHalfBlock {
		t.Errorf("glyph = %q, want upper half block when top is brighter", cell.Glyph)
	}
	if cell.Fg != (RGB{255, 255, 255}) {
		t.Errorf("fg = %+v, want the brighter (top) color", cell.Fg)
	}
}

func TestAutoSelectNonTTYIsASCII(t *testing.T) {
	if AutoSelect(false, true, true, 10, 20) != ModeASCII {
		t.Errorf("non-tty must select ASCII regardless of other inputs")
	}
}

func TestAutoSelectNotUnicodeIsASCII(t *testing.T) {
	if AutoSelect(true, false, true, 10, 20) != ModeASCII {
		t.Errorf("non-unicode terminal must select ASCII regardless of other inputs")
	}
}

func TestAutoSelectPreferBrailleWins(t *testing.T) {
	if AutoSelect(true, true, true, 10, 20) != ModeBraille {
		t.Errorf("preferBraille must be honored when set")
	}
}

func TestAutoSelectUnknownGeometryFallsBackToHalfblock(t *testing.T) {
	if AutoSelect(true, true, false, 0, 0) != ModeHalfblock {
		t.Errorf("unknown cell geometry must fall back to halfblock")
	}
}

func TestCellSamplesReadsExpectedGrid(t *testing.T) {
	img := solidNRGBA(4, 4, Sample{R: 10, G: 20, B: 30, A: 255})
	s := CellSamples(img, 2, 2, 0, 0, 2, 2)
	if len(s) != 4 {
		t.Fatalf("len(samples) = %d, want 4", len(s))
	}
	for _, v := range s {
		if v.R != 10 || v.G != 20 || v.B != 30 || v.A != 255 {
			t.Errorf("sample = %+v, want solid color", v)
		}
	}
}
