package input

import (
	"testing"

	"github.com/gridvt/termcore/event"
)

func parseAll(t *testing.T, b []byte) ([]event.Event, int) {
	t.Helper()
	evs, n := Parse(b, 1, nil)
	return evs, n
}

func TestPlainRuneDecodes(t *testing.T) {
	evs, n := parseAll(t, []byte("a"))
	if n != 1 || len(evs) != 1 || evs[0].Rune != 'a' {
		t.Fatalf("got evs=%v n=%d", evs, n)
	}
}

func TestArrowKeyNoModifier(t *testing.T) {
	evs, n := parseAll(t, []byte("\x1b[A"))
	if n != 3 || len(evs) != 1 || evs[0].Key != event.KeyUp {
		t.Fatalf("got evs=%v n=%d", evs, n)
	}
}

func TestArrowKeyWithModifier(t *testing.T) {
	evs, n := parseAll(t, []byte("\x1b[1;5C")) // ctrl-right
	if n != len("\x1b[1;5C") || len(evs) != 1 {
		t.Fatalf("got evs=%v n=%d", evs, n)
	}
	if evs[0].Key != event.KeyRight || evs[0].Mods&event.ModCtrl == 0 {
		t.Errorf("got key=%v mods=%v, want right+ctrl", evs[0].Key, evs[0].Mods)
	}
}

func TestTildeFunctionKey(t *testing.T) {
	evs, n := parseAll(t, []byte("\x1b[15~")) // F5
	if n != len("\x1b[15~") || len(evs) != 1 || evs[0].Key != event.KeyF5 {
		t.Fatalf("got evs=%v n=%d", evs, n)
	}
}

func TestSS3FunctionKey(t *testing.T) {
	evs, n := parseAll(t, []byte("\x1bOP")) // F1
	if n != 3 || len(evs) != 1 || evs[0].Key != event.KeyF1 {
		t.Fatalf("got evs=%v n=%d", evs, n)
	}
}

func TestBracketedPasteMarkers(t *testing.T) {
	evs, n := parseAll(t, []byte("\x1b[200~\x1b[201~"))
	if n != len("\x1b[200~\x1b[201~") {
		t.Fatalf("n = %d, want full consumption", n)
	}
	if len(evs) != 2 || evs[0].Kind != event.KindPasteStart || evs[1].Kind != event.KindPasteEnd {
		t.Fatalf("got evs=%v", evs)
	}
}

func TestSGRMousePress(t *testing.T) {
	evs, n := parseAll(t, []byte("\x1b[<0;10;20M"))
	if n != len("\x1b[<0;10;20M") || len(evs) != 1 {
		t.Fatalf("got evs=%v n=%d", evs, n)
	}
	e := evs[0]
	if e.Kind != event.KindMouse || e.MouseKind != event.MouseDown || e.Buttons != event.ButtonLeft || e.Col != 9 || e.Row != 19 {
		t.Errorf("got %+v", e)
	}
}

func TestSGRMouseRelease(t *testing.T) {
	evs, _ := parseAll(t, []byte("\x1b[<0;10;20m"))
	if evs[0].MouseKind != event.MouseUp || evs[0].Buttons != event.ButtonLeft {
		t.Errorf("got kind=%v buttons=%v, want up+left", evs[0].MouseKind, evs[0].Buttons)
	}
}

func TestSGRMouseDragPreservesButton(t *testing.T) {
	// motion bit (32) set with button bits = left (0): a drag, not a
	// bare hover move, and the held button must survive (§3).
	evs, n := parseAll(t, []byte("\x1b[<32;5;6M"))
	if n != len("\x1b[<32;5;6M") || len(evs) != 1 {
		t.Fatalf("got evs=%v n=%d", evs, n)
	}
	e := evs[0]
	if e.MouseKind != event.MouseDrag || e.Buttons != event.ButtonLeft {
		t.Errorf("got kind=%v buttons=%v, want drag+left", e.MouseKind, e.Buttons)
	}
}

func TestSGRMouseHoverNoButtonIsMove(t *testing.T) {
	// motion bit set with button bits = 3 (none held): a bare hover.
	evs, _ := parseAll(t, []byte("\x1b[<35;5;6M"))
	if evs[0].MouseKind != event.MouseMove || evs[0].Buttons != 0 {
		t.Errorf("got kind=%v buttons=%v, want move with no buttons", evs[0].MouseKind, evs[0].Buttons)
	}
}

func TestSGRMouseWheelSetsWheelY(t *testing.T) {
	evs, _ := parseAll(t, []byte("\x1b[<64;5;6M")) // wheel up
	if evs[0].MouseKind != event.MouseWheel || evs[0].WheelY != -1 {
		t.Errorf("got kind=%v wheelY=%d, want wheel with WheelY=-1", evs[0].MouseKind, evs[0].WheelY)
	}
	evs, _ = parseAll(t, []byte("\x1b[<65;5;6M")) // wheel down
	if evs[0].MouseKind != event.MouseWheel || evs[0].WheelY != 1 {
		t.Errorf("got kind=%v wheelY=%d, want wheel with WheelY=1", evs[0].MouseKind, evs[0].WheelY)
	}
}

func TestControlBytesMapToKeys(t *testing.T) {
	evs, n := parseAll(t, []byte{'\r', '\t', 0x7f})
	if n != 3 || len(evs) != 3 {
		t.Fatalf("got evs=%v n=%d", evs, n)
	}
	want := []event.Key{event.KeyEnter, event.KeyTab, event.KeyBackspace}
	for i, w := range want {
		if evs[i].Key != w {
			t.Errorf("evs[%d].Key = %v, want %v", i, evs[i].Key, w)
		}
	}
}

func TestBareEscapeIsEscapeKey(t *testing.T) {
	evs, n := parseAll(t, []byte{0x1b, 'x'})
	if n != 1 || len(evs) != 1 || evs[0].Key != event.KeyEscape {
		t.Fatalf("got evs=%v n=%d", evs, n)
	}
}

func TestIncompleteEscapeSequenceStopsBeforeConsuming(t *testing.T) {
	evs, n := parseAll(t, []byte("\x1b["))
	if n != 0 || len(evs) != 0 {
		t.Fatalf("expected prefix mode to consume nothing, got evs=%v n=%d", evs, n)
	}
}

func TestIncompleteUTF8StopsBeforeConsuming(t *testing.T) {
	evs, n := parseAll(t, []byte{0xE2, 0x82}) // truncated 3-byte sequence
	if n != 0 || len(evs) != 0 {
		t.Fatalf("expected prefix mode to consume nothing, got evs=%v n=%d", evs, n)
	}
}

func TestInvalidUTF8YieldsReplacementChar(t *testing.T) {
	evs, n := parseAll(t, []byte{0xFF, 'a'})
	if n != 2 || len(evs) != 2 {
		t.Fatalf("got evs=%v n=%d", evs, n)
	}
	if evs[0].Rune != 0xFFFD {
		t.Errorf("evs[0].Rune = %U, want U+FFFD", evs[0].Rune)
	}
}

func TestEventOrderIsLeftToRight(t *testing.T) {
	evs, n := parseAll(t, []byte("a\x1b[Ab"))
	if n != len("a\x1b[Ab") {
		t.Fatalf("n = %d", n)
	}
	if len(evs) != 3 || evs[0].Rune != 'a' || evs[1].Key != event.KeyUp || evs[2].Rune != 'b' {
		t.Fatalf("got evs=%v", evs)
	}
}
