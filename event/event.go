// Package event defines the normalized input event record, a
// single-producer/single-consumer ring queue of fixed-size records
// backed by a separate byte ring for variable-length USER payloads,
// and a batch packer that serializes a queue drain into the little-
// endian v1 wire format external consumers decode (§3, §4.8).
package event

// Kind tags the variant held by an Event.
type Kind uint8

const (
	KindKey Kind = iota
	KindMouse
	KindPasteStart
	KindPasteEnd
	KindResize
	KindFocus
	KindUser
	KindTick
)

// Modifiers is a bitmask of held modifier keys, attached to key and
// mouse events per the xterm modifier-code convention.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
	ModSuper
)

// ModifiersFromXterm decodes the xterm modifier parameter (1 = none,
// then +1 shift, +2 alt, +4 ctrl, +8 meta/super) into [Modifiers].
func ModifiersFromXterm(code int) Modifiers {
	if code <= 0 {
		return 0
	}
	v := code - 1
	var m Modifiers
	if v&1 != 0 {
		m |= ModShift
	}
	if v&2 != 0 {
		m |= ModAlt
	}
	if v&4 != 0 {
		m |= ModCtrl
	}
	if v&8 != 0 {
		m |= ModSuper
	}
	return m
}

// Key enumerates the non-printable keys the input parser recognizes.
type Key int

const (
	KeyNone Key = iota
	KeyRune     // printable scalar, carried in Event.Rune
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeyInsert
	KeyDelete
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// MouseKind classifies a mouse event, independent of which buttons are
// held (§3 "kind∈{move, down, up, drag, wheel}").
type MouseKind int

const (
	MouseMove MouseKind = iota
	MouseDown
	MouseUp
	MouseDrag
	MouseWheel
)

// MouseButtons is a bitmask of which buttons are held, carried
// separately from [MouseKind] so a drag or release event preserves
// which button is involved (§3 "buttons bitmask").
type MouseButtons uint8

const (
	ButtonLeft MouseButtons = 1 << iota
	ButtonMiddle
	ButtonRight
)

// Event is the fixed-shape record the queue stores. USER events carry
// Tag plus a payload view (UserOffset/UserLen index into the queue's
// byte ring; UserPayload is filled in by Pop for caller convenience and
// is only valid until the next Pop on the same queue, per §5's
// lifetime-tied-to-the-popping-consumer rule).
type Event struct {
	Kind   Kind
	TimeMs uint32

	Key  Key
	Rune rune
	Mods Modifiers

	MouseKind      MouseKind
	Buttons        MouseButtons
	Col, Row       int // 0-based cell coordinates (wire reports are 1-based; the parser converts)
	WheelX, WheelY int // KindMouse, only meaningful when MouseKind == MouseWheel

	Cols, Rows int // KindResize

	DtMs uint32 // KindTick: elapsed milliseconds since the previous tick

	UserTag     uint32
	UserOffset  uint32
	UserLen     uint32
	UserPayload []byte
}
