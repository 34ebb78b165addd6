package termcore

// AttrFlags is a bitmask of SGR rendering attributes, the same shape as
// the teacher's CellFlags but trimmed to attributes only — color lives
// in Style's RGB fields instead of being folded into the flag bitmask.
type AttrFlags uint16

const (
	AttrBold AttrFlags = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrDoubleUnderline
	AttrCurlyUnderline
	AttrDottedUnderline
	AttrDashedUnderline
	AttrBlinkSlow
	AttrBlinkFast
	AttrReverse
	AttrHidden
	AttrStrike
	AttrOverline
)

// RGB is a packed 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Style is a cell's full rendering state: foreground/background RGB,
// attribute bits, an optional colored-underline RGB, and an optional
// hyperlink reference index (0 means "no hyperlink" — valid indices
// start at 1, resolved by the caller's hyperlink table).
type Style struct {
	Fg             RGB
	Bg             RGB
	Attrs          AttrFlags
	UnderlineColor RGB
	HasUnderlineFg bool
	HyperlinkRef   uint32
}

// HasAttr reports whether flag is set.
func (s Style) HasAttr(flag AttrFlags) bool { return s.Attrs&flag != 0 }

// Equal reports whether two styles render identically.
func (s Style) Equal(o Style) bool {
	return s.Fg == o.Fg && s.Bg == o.Bg && s.Attrs == o.Attrs &&
		s.HasUnderlineFg == o.HasUnderlineFg &&
		(!s.HasUnderlineFg || s.UnderlineColor == o.UnderlineColor) &&
		s.HyperlinkRef == o.HyperlinkRef
}

// DefaultStyle is the zero-value style: default terminal fg/bg, no
// attributes, no hyperlink.
var DefaultStyle = Style{}
