package input

import "github.com/gridvt/termcore/event"

// parseEscape handles everything starting with ESC (0x1b): CSI
// sequences, SS3 sequences, and the bare-ESC-means-Escape fallback.
func parseEscape(b []byte, timeMs uint32) (n int, ev []event.Event, ok bool, incomplete bool) {
	if len(b) < 2 {
		return 0, nil, false, true // lone trailing ESC: might start a sequence
	}
	switch b[1] {
	case '[':
		return parseCSI(b, timeMs)
	case 'O':
		return parseSS3(b, timeMs)
	default:
		// Bare ESC not followed by a recognized introducer: Escape key,
		// consuming only the ESC byte so the next byte is reprocessed.
		return 1, single(event.Event{Kind: event.KindKey, Key: event.KeyEscape, TimeMs: timeMs}), true, false
	}
}

// cursorKeyFinals maps the CSI/SS3 final byte to the arrow/home/end key
// it names (xterm convention, shared by both CSI and SS3 forms).
var cursorKeyFinals = map[byte]event.Key{
	'A': event.KeyUp,
	'B': event.KeyDown,
	'C': event.KeyRight,
	'D': event.KeyLeft,
	'H': event.KeyHome,
	'F': event.KeyEnd,
}

// ss3Finals maps SS3 final bytes that aren't shared with cursorKeyFinals.
var ss3Finals = map[byte]event.Key{
	'P': event.KeyF1,
	'Q': event.KeyF2,
	'R': event.KeyF3,
	'S': event.KeyF4,
}

func parseSS3(b []byte, timeMs uint32) (n int, ev []event.Event, ok bool, incomplete bool) {
	if len(b) < 3 {
		return 0, nil, false, true
	}
	final := b[2]
	if k, isCursor := cursorKeyFinals[final]; isCursor {
		return 3, single(event.Event{Kind: event.KindKey, Key: k, TimeMs: timeMs}), true, false
	}
	if k, isF := ss3Finals[final]; isF {
		return 3, single(event.Event{Kind: event.KindKey, Key: k, TimeMs: timeMs}), true, false
	}
	// Unrecognized SS3 final: drop the 3-byte introducer rather than
	// stalling the parser on a sequence it will never understand.
	return 3, nil, false, false
}

// tildeFinals maps the numeric code preceding '~' to its key.
var tildeFinals = map[int]event.Key{
	1:  event.KeyHome,
	2:  event.KeyInsert,
	3:  event.KeyDelete,
	4:  event.KeyEnd,
	5:  event.KeyPageUp,
	6:  event.KeyPageDown,
	15: event.KeyF5,
	17: event.KeyF6,
	18: event.KeyF7,
	19: event.KeyF8,
	20: event.KeyF9,
	21: event.KeyF10,
	23: event.KeyF11,
	24: event.KeyF12,
}

// parseCSI handles ESC [ ... sequences: arrows/home/end with optional
// modifier, N~ function keys with optional modifier, SGR mouse
// reports, and bracketed-paste markers.
func parseCSI(b []byte, timeMs uint32) (n int, ev []event.Event, ok bool, incomplete bool) {
	if len(b) < 3 {
		return 0, nil, false, true
	}
	if b[2] == '<' {
		return parseSGRMouse(b, timeMs)
	}

	// Scan params: digits and ';' until a final byte.
	i := 2
	for i < len(b) && (isDigit(b[i]) || b[i] == ';') {
		i++
	}
	if i >= len(b) {
		return 0, nil, false, true // ran off the end still in params
	}
	final := b[i]
	params := splitParams(b[2:i])

	switch final {
	case '~':
		if len(params) == 0 {
			return i + 1, nil, false, false
		}
		code := atoiOr(params[0], -1)
		if code == 200 {
			return i + 1, single(event.Event{Kind: event.KindPasteStart, TimeMs: timeMs}), true, false
		}
		if code == 201 {
			return i + 1, single(event.Event{Kind: event.KindPasteEnd, TimeMs: timeMs}), true, false
		}
		key, known := tildeFinals[code]
		if !known {
			return i + 1, nil, false, false
		}
		mods := modFromParams(params, 1)
		return i + 1, single(event.Event{Kind: event.KindKey, Key: key, Mods: mods, TimeMs: timeMs}), true, false
	case 'A', 'B', 'C', 'D', 'H', 'F':
		mods := modFromParams(params, 1)
		return i + 1, single(event.Event{Kind: event.KindKey, Key: cursorKeyFinals[final], Mods: mods, TimeMs: timeMs}), true, false
	default:
		// Unrecognized CSI final: consume and drop, don't stall forever.
		return i + 1, nil, false, false
	}
}

// modFromParams reads the modifier code out of params at modIndex (the
// xterm convention puts it as the second CSI parameter: `1;mod`, with
// the leading `1` often implicit/omitted).
func modFromParams(params []string, modIndex int) event.Modifiers {
	if len(params) <= modIndex {
		return 0
	}
	return event.ModifiersFromXterm(atoiOr(params[modIndex], 0))
}

func parseSGRMouse(b []byte, timeMs uint32) (n int, ev []event.Event, ok bool, incomplete bool) {
	i := 3
	for i < len(b) && b[i] != 'M' && b[i] != 'm' {
		if !(isDigit(b[i]) || b[i] == ';') {
			// malformed: not a digit/semicolon before terminator found yet.
			// Could still be incomplete if we simply haven't seen the
			// terminator; but an unexpected byte here means this was
			// never a valid SGR mouse report.
			return i + 1, nil, false, false
		}
		i++
	}
	if i >= len(b) {
		return 0, nil, false, true
	}
	press := b[i] == 'M'
	params := splitParams(b[3:i])
	if len(params) != 3 {
		return i + 1, nil, false, false
	}
	btnCode := atoiOr(params[0], 0)
	col := atoiOr(params[1], 1)
	row := atoiOr(params[2], 1)

	kind, buttons, wheelX, wheelY, mods := decodeSGRButton(btnCode, press)
	return i + 1, single(event.Event{
		Kind:      event.KindMouse,
		MouseKind: kind,
		Buttons:   buttons,
		Mods:      mods,
		Col:       col - 1, // wire coordinates are 1-based; Event.Col/Row are 0-based cell coordinates, matching Cursor and Cell
		Row:       row - 1,
		WheelX:    wheelX,
		WheelY:    wheelY,
		TimeMs:    timeMs,
	}), true, false
}

// decodeSGRButton decodes the SGR mouse button code: bits 0-1 select
// the button (3=no button in the legacy scheme, but SGR instead uses
// the trailing M/m to signal press/release so here 0-2 are left/
// middle/right), bit 5 (32) marks motion, bit 6 (64) marks a wheel
// event, and bits 2-4 carry shift/alt/ctrl. Kind and the held-button
// bitmask are returned independently (§3 "kind∈{move, down, up, drag,
// wheel}, buttons bitmask") so a drag never loses which button is held
// the way a single combined enum would.
func decodeSGRButton(code int, press bool) (event.MouseKind, event.MouseButtons, int, int, event.Modifiers) {
	var mods event.Modifiers
	if code&4 != 0 {
		mods |= event.ModShift
	}
	if code&8 != 0 {
		mods |= event.ModAlt
	}
	if code&16 != 0 {
		mods |= event.ModCtrl
	}

	if code&64 != 0 {
		if code&1 != 0 {
			return event.MouseWheel, 0, 0, 1, mods // wheel down
		}
		return event.MouseWheel, 0, 0, -1, mods // wheel up
	}

	btnBits := code & 3
	var buttons event.MouseButtons
	switch btnBits {
	case 0:
		buttons = event.ButtonLeft
	case 1:
		buttons = event.ButtonMiddle
	case 2:
		buttons = event.ButtonRight
	}

	if code&32 != 0 {
		if btnBits == 3 {
			return event.MouseMove, 0, 0, 0, mods
		}
		return event.MouseDrag, buttons, 0, 0, mods
	}
	if !press {
		return event.MouseUp, buttons, 0, 0, mods
	}
	return event.MouseDown, buttons, 0, 0, mods
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func splitParams(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(b); i++ {
		if i == len(b) || b[i] == ';' {
			out = append(out, string(b[start:i]))
			start = i + 1
		}
	}
	return out
}

func atoiOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return fallback
		}
		n = n*10 + int(c-'0')
	}
	return n
}
