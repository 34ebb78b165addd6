package termcore

import "github.com/gridvt/termcore/bounded"

// Damage accumulates per-row spans into a bounded set of rectangles
// (§4.4), promoting to a single full-frame rectangle on capacity
// overflow, out-of-bounds spans, or a structurally disruptive edit
// (e.g. the scroll optimizer invalidating a range it can no longer
// trust). The backing rectangle storage is caller-owned scratch,
// matching the arena/scratch-buffer discipline the rest of the engine
// uses to stay allocation-free per frame.
type Damage struct {
	rects      []Rect
	cap        int
	cols, rows int
	full       bool
}

// BeginFrame resets d to track a cols x rows grid using storage as
// backing capacity for up to cap(storage) rectangles.
func (d *Damage) BeginFrame(storage []Rect, cols, rows int) {
	d.rects = storage[:0]
	d.cap = cap(storage)
	d.cols = cols
	d.rows = rows
	d.full = false
}

// FullFrame reports whether damage has latched to whole-screen.
func (d *Damage) FullFrame() bool { return d.full }

// Rects returns the accumulated rectangles. If FullFrame is true this
// is a single rectangle covering the whole grid.
func (d *Damage) Rects() []Rect {
	if d.full {
		return []Rect{{0, 0, d.cols, d.rows}}
	}
	return d.rects
}

func (d *Damage) latchFull() {
	d.full = true
	d.rects = d.rects[:0]
}

// AddSpan records that row y's columns [x0,x1) changed. It tries to
// extend an existing rectangle whose x-range matches (x0,x1) and whose
// last row is y-1, i.e. Y1 == y (a contiguous run of identical-width rows merges
// into one rectangle); otherwise it appends a new one-row rectangle.
// Exceeding capacity or an out-of-bounds span latches full-frame.
func (d *Damage) AddSpan(y, x0, x1 int) {
	if d.full {
		return
	}
	if y < 0 || y >= d.rows || x0 < 0 || x1 > d.cols || x0 >= x1 {
		d.latchFull()
		return
	}
	for i := range d.rects {
		r := &d.rects[i]
		if r.X0 == x0 && r.X1 == x1 && r.Y1 == y {
			r.Y1 = y + 1
			return
		}
	}
	if len(d.rects) >= d.cap {
		d.latchFull()
		return
	}
	d.rects = append(d.rects, Rect{x0, y, x1, y + 1})
}

// Invalidate forces the full-frame flag, used when per-rect damage
// cannot be trusted; Diff calls it when it has to establish a fresh
// screen baseline.
func (d *Damage) Invalidate() { d.latchFull() }

// CellCount returns the total number of cells covered by the current
// damage, saturating at 2^32-1 rather than overflowing (§8 "Damage
// saturation").
func (d *Damage) CellCount() uint32 {
	if d.full {
		return bounded.SaturatingMulU32(uint32(d.cols), uint32(d.rows))
	}
	var total uint32
	for _, r := range d.rects {
		w := uint32(r.X1 - r.X0)
		h := uint32(r.Y1 - r.Y0)
		total = bounded.SaturatingAddU32(total, bounded.SaturatingMulU32(w, h))
	}
	return total
}
