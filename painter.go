package termcore

import (
	"unicode/utf8"

	"github.com/gridvt/termcore/text"
)

// breakPairAt clears whichever half of a wide pair sits at (x,y) if it
// is about to be overwritten, so the other half never survives as an
// orphan (§3's wide-glyph invariant).
func (fb *Framebuffer) breakPairAt(x, y int) {
	c := fb.At(x, y)
	if c == nil {
		return
	}
	switch {
	case c.IsWideLead():
		if r := fb.At(x+1, y); r != nil {
			r.reset(r.Style)
		}
	case c.IsContinuation():
		if l := fb.At(x-1, y); l != nil {
			l.reset(l.Style)
		}
	}
}

// PutGrapheme writes a single grapheme cluster at (x,y) under the given
// style and width policy. Writes outside the current clip (or the
// framebuffer bounds) are silently dropped. A wide (width-2) grapheme
// whose right half would fall outside the clip is replaced with U+FFFD
// at width 1 rather than split or left unwritten (§4.1 "put_grapheme
// out-of-bounds wide write"); a grapheme whose bytes don't fit the
// fixed cell storage is likewise replaced, per [Cell.setGrapheme].
func (fb *Framebuffer) PutGrapheme(x, y int, grapheme string, style Style, policy text.Policy) {
	clip := fb.Clip()
	if !clip.Contains(x, y) {
		return
	}
	cell := fb.At(x, y)
	if cell == nil {
		return
	}

	w := policy.StringWidth(grapheme)
	if w <= 0 {
		w = 1
	}
	if w > 2 {
		w = 2
	}

	fb.breakPairAt(x, y)

	if w == 2 {
		if x+1 >= clip.X1 {
			cell.setReplacementChar(style)
			return
		}
		fb.breakPairAt(x+1, y)
		cell.setGrapheme(grapheme, 2, style)
		if cell.Width != 2 {
			// setGrapheme fell back to U+FFFD (oversized bytes); the
			// cell is now width 1, no continuation to write.
			return
		}
		cont := fb.At(x+1, y)
		cont.glyphLen = 0
		cont.Width = 0
		cont.Style = style
		return
	}

	cell.setGrapheme(grapheme, 1, style)
}

// DrawTextBytes renders data (UTF-8; a cluster holding invalid bytes is
// drawn as a single U+FFFD) starting at (x,y),
// advancing one row's worth of columns, honoring tab stops, and
// stopping at the current clip's right edge. It returns the column the
// cursor ends at.
func (fb *Framebuffer) DrawTextBytes(x, y int, data []byte, style Style, policy text.Policy) int {
	clip := fb.Clip()
	s := string(data)
	cx := x
	state := -1
	for s != "" {
		var cluster string
		cluster, s, state = text.NextGraphemeCluster(s, state)
		if cluster == "" {
			break
		}
		if cx >= clip.X1 {
			break
		}
		if cluster == "\t" {
			cx = text.NextTabStop(cx, 8, clip.X1)
			continue
		}
		if cluster == "\n" || cluster == "\r" {
			continue
		}
		if !utf8.ValidString(cluster) {
			cluster = string(text.ReplacementChar)
		}
		w := policy.StringWidth(cluster)
		if w <= 0 {
			w = 1
		}
		fb.PutGrapheme(cx, y, cluster, style, policy)
		cx += w
	}
	return cx
}

// BlitRect copies the cells of srcRect (clamped to src's bounds) from
// src into fb at (dstX,dstY), clamped to fb's current clip. When fb and
// src are the same framebuffer and the rectangles overlap, the copy
// direction is chosen so no row or column is read after it has already
// been overwritten (matching the teacher's overlap-safe resize/scroll
// copies in buffer.go, generalized from whole-row to arbitrary-rect).
func (fb *Framebuffer) BlitRect(dstX, dstY int, src *Framebuffer, srcRect Rect) {
	area := srcRect.Intersect(src.Bounds())
	if area.Empty() {
		return
	}
	w := area.X1 - area.X0
	h := area.Y1 - area.Y0

	clip := fb.Clip()
	dst := Rect{dstX, dstY, dstX + w, dstY + h}.Intersect(clip).Intersect(fb.Bounds())
	if dst.Empty() {
		return
	}
	// Trim the source rectangle to match any clamping applied to dst.
	area.X0 += dst.X0 - dstX
	area.Y0 += dst.Y0 - dstY
	area.X1 = area.X0 + (dst.X1 - dst.X0)
	area.Y1 = area.Y0 + (dst.Y1 - dst.Y0)

	rowOrder := rowsTopDown
	colOrder := colsLeftRight
	if fb == src {
		if dst.Y0 > area.Y0 {
			rowOrder = rowsBottomUp
		}
		if dst.Y0 == area.Y0 && dst.X0 > area.X0 {
			colOrder = colsRightLeft
		}
	}

	rows := dst.Y1 - dst.Y0
	cols := dst.X1 - dst.X0
	for ri := 0; ri < rows; ri++ {
		sy, dy := srcDstRow(ri, rows, area.Y0, dst.Y0, rowOrder)
		copyRow(fb, src, dst.X0, sy, dy, cols, colOrder, area.X0)
	}
}

type rowDir int
type colDir int

const (
	rowsTopDown rowDir = iota
	rowsBottomUp
)

const (
	colsLeftRight colDir = iota
	colsRightLeft
)

func srcDstRow(i, n, srcY0, dstY0 int, dir rowDir) (sy, dy int) {
	if dir == rowsBottomUp {
		i = n - 1 - i
	}
	return srcY0 + i, dstY0 + i
}

func copyRow(fb, src *Framebuffer, dstX0, sy, dy, cols int, dir colDir, srcX0 int) {
	for ci := 0; ci < cols; ci++ {
		j := ci
		if dir == colsRightLeft {
			j = cols - 1 - ci
		}
		s := src.At(srcX0+j, sy)
		if s == nil {
			continue
		}
		d := fb.At(dstX0+j, dy)
		if d == nil {
			continue
		}
		*d = *s
	}
}
