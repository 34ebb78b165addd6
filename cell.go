package termcore

import (
	"unicode/utf8"

	"github.com/gridvt/termcore/text"
)

// MaxGraphemeBytes is the fixed glyph storage size per cell (§3): any
// grapheme cluster longer than this is rejected in favor of U+FFFD at
// the painter layer rather than grown, keeping Cell fixed-size and
// allocation-free.
const MaxGraphemeBytes = 32

// Cell is a fixed-size record: grapheme bytes, glyph byte length,
// width (0 = continuation, 1 = normal, 2 = wide lead), and style.
//
// Invariant: for every lead cell of width 2 at (x,y) there is exactly
// one continuation cell (width 0) at (x+1,y) with identical style; no
// continuation cell exists without a lead cell immediately to its left.
type Cell struct {
	glyph    [MaxGraphemeBytes]byte
	glyphLen uint8
	Width    uint8
	Style    Style
}

// BlankCell returns a single space cell with the given style.
func BlankCell(style Style) Cell {
	c := Cell{Width: 1, Style: style}
	c.glyph[0] = ' '
	c.glyphLen = 1
	return c
}

// Grapheme returns the cell's glyph bytes as a string.
func (c *Cell) Grapheme() string {
	return string(c.glyph[:c.glyphLen])
}

// IsContinuation reports whether this cell is the right half of a wide
// pair (Width == 0).
func (c *Cell) IsContinuation() bool { return c.Width == 0 }

// IsWideLead reports whether this cell is the left half of a wide pair
// (Width == 2).
func (c *Cell) IsWideLead() bool { return c.Width == 2 }

// setGrapheme writes grapheme bytes into the cell's fixed storage. If
// the bytes don't fit, it falls back to U+FFFD at width 1, matching
// §4.1's put_grapheme overflow rule.
func (c *Cell) setGrapheme(s string, width int, style Style) {
	if len(s) > MaxGraphemeBytes {
		c.setReplacementChar(style)
		return
	}
	n := copy(c.glyph[:], s)
	c.glyphLen = uint8(n)
	c.Width = uint8(width)
	c.Style = style
}

func (c *Cell) setReplacementChar(style Style) {
	n := utf8.EncodeRune(c.glyph[:], text.ReplacementChar)
	c.glyphLen = uint8(n)
	c.Width = 1
	c.Style = style
}

// reset clears the cell to a default space with the given style.
func (c *Cell) reset(style Style) {
	*c = BlankCell(style)
}
