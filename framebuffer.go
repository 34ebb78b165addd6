package termcore

import "github.com/gridvt/termcore/bounded"

// MaxClipDepth bounds the clip stack (§4.1 "Painter clip stack: bounded").
const MaxClipDepth = 32

// Framebuffer is a rectangular grid of cells, row-major, plus a clip
// stack. The engine exclusively owns the backing storage (§3): on
// Resize a new backing is allocated and the old one released only if
// the new allocation succeeds, so a failed resize leaves the existing
// grid untouched ("no partial effects").
type Framebuffer struct {
	cols, rows int
	cells      []Cell // len == cols*rows, row-major
	clips      []Rect // clip stack; clips[0] is always the full bounds
}

// NewFramebuffer allocates a cols x rows grid of blank cells.
func NewFramebuffer(cols, rows int) *Framebuffer {
	fb := &Framebuffer{cols: cols, rows: rows}
	fb.cells = make([]Cell, cols*rows)
	blank := BlankCell(DefaultStyle)
	for i := range fb.cells {
		fb.cells[i] = blank
	}
	fb.clips = make([]Rect, 1, MaxClipDepth)
	fb.clips[0] = Rect{0, 0, cols, rows}
	return fb
}

// Cols returns the grid width.
func (fb *Framebuffer) Cols() int { return fb.cols }

// Rows returns the grid height.
func (fb *Framebuffer) Rows() int { return fb.rows }

// Bounds returns the full framebuffer rectangle, ignoring clips.
func (fb *Framebuffer) Bounds() Rect { return Rect{0, 0, fb.cols, fb.rows} }

// Clip returns the current effective clip: the intersection of the
// framebuffer bounds and every pushed clip rectangle.
func (fb *Framebuffer) Clip() Rect { return fb.clips[len(fb.clips)-1] }

// PushClip intersects rect with the current clip and pushes the result.
// Returns Limit if the stack is already at MaxClipDepth.
func (fb *Framebuffer) PushClip(rect Rect) error {
	if len(fb.clips) >= MaxClipDepth {
		return bounded.New(bounded.Limit, "clip stack overflow")
	}
	fb.clips = append(fb.clips, fb.Clip().Intersect(rect))
	return nil
}

// PopClip removes the innermost clip. Returns InvalidArgument if only
// the base (whole-framebuffer) clip remains.
func (fb *Framebuffer) PopClip() error {
	if len(fb.clips) <= 1 {
		return bounded.New(bounded.InvalidArgument, "clip stack underflow")
	}
	fb.clips = fb.clips[:len(fb.clips)-1]
	return nil
}

// ClipDepth returns the number of clips currently pushed beyond the base.
func (fb *Framebuffer) ClipDepth() int { return len(fb.clips) - 1 }

// ResetClips drops every pushed clip, restoring the full-bounds clip.
func (fb *Framebuffer) ResetClips() { fb.clips = fb.clips[:1] }

func (fb *Framebuffer) index(x, y int) int { return y*fb.cols + x }

// At returns a pointer to the cell at (x,y), or nil if out of bounds.
func (fb *Framebuffer) At(x, y int) *Cell {
	if x < 0 || x >= fb.cols || y < 0 || y >= fb.rows {
		return nil
	}
	return &fb.cells[fb.index(x, y)]
}

// Clear overwrites every cell with a space of the given style,
// ignoring clip — it establishes a baseline (§4.1).
func (fb *Framebuffer) Clear(style Style) {
	blank := BlankCell(style)
	for i := range fb.cells {
		fb.cells[i] = blank
	}
}

// FillRect paints spaces of the given style within rect, clipped to the
// current clip rectangle.
func (fb *Framebuffer) FillRect(rect Rect, style Style) {
	area := rect.Intersect(fb.Clip()).Intersect(fb.Bounds())
	if area.Empty() {
		return
	}
	blank := BlankCell(style)
	for y := area.Y0; y < area.Y1; y++ {
		row := fb.cells[fb.index(area.X0, y):fb.index(area.X1, y)]
		for i := range row {
			row[i] = blank
		}
	}
}

// Resize reallocates the framebuffer to new dimensions, clearing the
// grid to a blank style. Allocation failure (cols/rows <= 0) leaves the
// existing grid untouched.
func (fb *Framebuffer) Resize(cols, rows int) error {
	if cols <= 0 || rows <= 0 {
		return bounded.New(bounded.InvalidArgument, "non-positive framebuffer dimensions")
	}
	cells := make([]Cell, cols*rows)
	blank := BlankCell(DefaultStyle)
	for i := range cells {
		cells[i] = blank
	}
	fb.cells = cells
	fb.cols = cols
	fb.rows = rows
	fb.clips = fb.clips[:1]
	fb.clips[0] = Rect{0, 0, cols, rows}
	return nil
}

// CopyFrom overwrites fb's cells with src's, which must have identical
// dimensions. Used to snapshot a staging framebuffer into a caller's
// "current" framebuffer after a successful drawlist execution.
func (fb *Framebuffer) CopyFrom(src *Framebuffer) error {
	if fb.cols != src.cols || fb.rows != src.rows {
		return bounded.New(bounded.InvalidArgument, "framebuffer dimension mismatch")
	}
	copy(fb.cells, src.cells)
	return nil
}

// Clone returns a deep copy of fb, clip stack included.
func (fb *Framebuffer) Clone() *Framebuffer {
	out := &Framebuffer{cols: fb.cols, rows: fb.rows}
	out.cells = make([]Cell, len(fb.cells))
	copy(out.cells, fb.cells)
	out.clips = make([]Rect, len(fb.clips), MaxClipDepth)
	copy(out.clips, fb.clips)
	return out
}
