package termcore

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gridvt/termcore/bounded"
	"github.com/gridvt/termcore/capability"
	"github.com/gridvt/termcore/text"
)

func fbWithText(cols, rows int, row int, s string, style Style) *Framebuffer {
	fb := NewFramebuffer(cols, rows)
	fb.DrawTextBytes(0, row, []byte(s), style, text.DefaultPolicy)
	return fb
}

func TestDiffRejectsDimensionMismatch(t *testing.T) {
	a := NewFramebuffer(10, 5)
	b := NewFramebuffer(11, 5)
	out := make([]byte, 256)
	_, _, _, err := Diff(a, b, capability.Profile{}, TerminalState{}, Cursor{}, true, CursorSteadyBlock, nil, nil, DefaultDiffOptions, out)
	var be *bounded.Error
	if !errors.As(err, &be) || be.Code != bounded.InvalidArgument {
		t.Fatalf("got %v, want InvalidArgument", err)
	}
}

func TestDiffFreshStateEmitsFullBaseline(t *testing.T) {
	prev := NewFramebuffer(10, 3)
	next := fbWithText(10, 3, 0, "hi", DefaultStyle)
	out := make([]byte, 4096)
	n, stats, final, err := Diff(prev, next, capability.Profile{}, TerminalState{}, Cursor{}, true, CursorSteadyBlock, nil, nil, DefaultDiffOptions, out)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if !stats.SweepPath {
		t.Errorf("expected sweep path on a fresh (invalid) TerminalState")
	}
	if !bytes.Contains(out[:n], []byte("\x1b[2J\x1b[H")) {
		t.Errorf("expected a full-screen clear sequence")
	}
	if !final.ScreenValid() {
		t.Errorf("resulting state should be screen-valid")
	}
}

func TestDiffNoChangesEmitsNothingButCursorSteadyState(t *testing.T) {
	fb := fbWithText(10, 3, 0, "hi", DefaultStyle)
	init := TerminalState{
		CursorX: 0, CursorY: 0, CursorVisible: true, CursorShape: CursorSteadyBlock,
		Style: DefaultStyle,
		Valid: ValidCursorPos | ValidCursorVisible | ValidCursorShape | ValidStyle | ValidScreen,
	}
	out := make([]byte, 4096)
	n, stats, _, err := Diff(fb, fb, capability.Profile{}, init, Cursor{Col: 0, Row: 0}, true, CursorSteadyBlock, nil, nil, DefaultDiffOptions, out)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if stats.DirtyCells != 0 {
		t.Errorf("expected zero dirty cells for identical frames, got %d", stats.DirtyCells)
	}
	if n != 0 {
		t.Errorf("expected no bytes for identical frames in steady state, got %d: %q", n, out[:n])
	}
}

func TestDiffReturnsLimitAndZeroesOutputWhenTooSmall(t *testing.T) {
	prev := NewFramebuffer(10, 3)
	next := fbWithText(10, 3, 0, "hello world this is long enough", DefaultStyle)
	out := []byte{1, 2, 3, 4} // tiny, guaranteed too small for a full baseline redraw
	n, stats, final, err := Diff(prev, next, capability.Profile{}, TerminalState{}, Cursor{}, true, CursorSteadyBlock, nil, nil, DefaultDiffOptions, out)
	var be *bounded.Error
	if !errors.As(err, &be) || be.Code != bounded.Limit {
		t.Fatalf("got %v, want Limit", err)
	}
	if n != 0 || stats != (Stats{}) || final != (TerminalState{}) {
		t.Errorf("expected fully zeroed outputs on Limit failure")
	}
	for _, b := range out {
		if b != 0 {
			t.Fatalf("out buffer not zeroed on Limit failure: %v", out)
		}
	}
}

func TestDiffWrapsInSyncUpdateWhenCapable(t *testing.T) {
	prev := NewFramebuffer(10, 3)
	next := fbWithText(10, 3, 0, "hi", DefaultStyle)
	caps := capability.Profile{Flags: capability.SyncUpdate}
	out := make([]byte, 4096)
	n, _, _, err := Diff(prev, next, caps, TerminalState{}, Cursor{}, true, CursorSteadyBlock, nil, nil, DefaultDiffOptions, out)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if !bytes.HasPrefix(out[:n], []byte("\x1b[?2026h")) || !bytes.HasSuffix(out[:n], []byte("\x1b[?2026l")) {
		t.Errorf("expected sync-update wrapping, got %q", out[:n])
	}
}

func TestDiffOnlyRowChangedIsRedrawn(t *testing.T) {
	prev := fbWithText(10, 3, 0, "aa", DefaultStyle)
	next := fbWithText(10, 3, 0, "aa", DefaultStyle)
	next.DrawTextBytes(0, 1, []byte("bb"), DefaultStyle, text.DefaultPolicy)
	init := TerminalState{
		CursorVisible: true, CursorShape: CursorSteadyBlock, Style: DefaultStyle,
		Valid: ValidCursorPos | ValidCursorVisible | ValidCursorShape | ValidStyle | ValidScreen,
	}
	out := make([]byte, 4096)
	_, stats, _, err := Diff(prev, next, capability.Profile{}, init, Cursor{}, true, CursorSteadyBlock, nil, nil, DefaultDiffOptions, out)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if stats.SweepPath {
		t.Errorf("a single dirty row with no damage tracking and no scroll should not force a sweep by itself unless over threshold")
	}
	if stats.DirtyRows != 1 {
		t.Errorf("got DirtyRows = %d, want 1", stats.DirtyRows)
	}
}

func TestDiffScrollByOneEmitsScrollAndSingleRowRedraw(t *testing.T) {
	// §8 Scenario 3: prev rows = [A,B,C], next rows = [B,C,D] on a
	// 3-row grid; scroll optimization should emit a scroll-up sequence
	// plus a single row redraw of D, not three full row redraws.
	prev := NewFramebuffer(3, 3)
	prev.DrawTextBytes(0, 0, []byte("A"), DefaultStyle, text.DefaultPolicy)
	prev.DrawTextBytes(0, 1, []byte("B"), DefaultStyle, text.DefaultPolicy)
	prev.DrawTextBytes(0, 2, []byte("C"), DefaultStyle, text.DefaultPolicy)

	next := NewFramebuffer(3, 3)
	next.DrawTextBytes(0, 0, []byte("B"), DefaultStyle, text.DefaultPolicy)
	next.DrawTextBytes(0, 1, []byte("C"), DefaultStyle, text.DefaultPolicy)
	next.DrawTextBytes(0, 2, []byte("D"), DefaultStyle, text.DefaultPolicy)

	caps := capability.Profile{Flags: capability.ScrollRegion}
	init := TerminalState{
		CursorVisible: true, CursorShape: CursorSteadyBlock, Style: DefaultStyle,
		Valid: ValidCursorPos | ValidCursorVisible | ValidCursorShape | ValidStyle | ValidScreen,
	}
	out := make([]byte, 4096)
	n, stats, _, err := Diff(prev, next, caps, init, Cursor{}, true, CursorSteadyBlock, nil, nil, DefaultDiffOptions, out)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if stats.ScrollOptHit != 1 {
		t.Errorf("got ScrollOptHit = %d, want 1", stats.ScrollOptHit)
	}
	if stats.CollisionGuardHits != 0 {
		t.Errorf("got CollisionGuardHits = %d, want 0 for a clean shift", stats.CollisionGuardHits)
	}
	if !bytes.Contains(out[:n], []byte("\x1b[1S")) {
		t.Errorf("expected a one-row scroll-up sequence, got %q", out[:n])
	}
	if !bytes.Contains(out[:n], []byte("D")) {
		t.Errorf("expected the newly exposed row D to be redrawn, got %q", out[:n])
	}
	if bytes.Contains(out[:n], []byte("A")) {
		t.Errorf("row A should have scrolled off rather than be redrawn, got %q", out[:n])
	}
}

func TestDetectScrollGuardCatchesHashCollision(t *testing.T) {
	// A direct unit check that the collision guard performs a real,
	// independent verification rather than re-deriving a result
	// detectScroll already guaranteed: feed it a shift that a cheap
	// fingerprint could plausibly accept but whose content differs.
	prev := NewFramebuffer(3, 2)
	prev.DrawTextBytes(0, 0, []byte("x"), DefaultStyle, text.DefaultPolicy)
	next := NewFramebuffer(3, 2)
	next.DrawTextBytes(0, 0, []byte("y"), DefaultStyle, text.DefaultPolicy)

	shift := scrollShift{k: 1, top: 0, bottom: 2}
	if scrollSurvivesGuard(prev, next, shift) {
		t.Errorf("guard should reject a shift whose rows actually differ")
	}
}

func TestHashRowChangesWithContent(t *testing.T) {
	a := fbWithText(5, 1, 0, "ab", DefaultStyle)
	b := fbWithText(5, 1, 0, "ac", DefaultStyle)
	if HashRow(a, 0) == HashRow(b, 0) {
		t.Errorf("expected different hashes for different row content")
	}
}

func TestHashRowStableForIdenticalContent(t *testing.T) {
	a := fbWithText(5, 1, 0, "xy", DefaultStyle)
	b := fbWithText(5, 1, 0, "xy", DefaultStyle)
	if HashRow(a, 0) != HashRow(b, 0) {
		t.Errorf("expected identical hashes for identical row content")
	}
}

func TestEmitMoveUsesCarriageReturnForColumnZero(t *testing.T) {
	b := new(scratchBuf)
	emitMove(b, 0, 5, 10, 5)
	if string(b.b) != "\r" {
		t.Errorf("got %q, want bare carriage return", b.b)
	}
}

func TestEmitMoveUsesCUPAcrossRows(t *testing.T) {
	b := new(scratchBuf)
	emitMove(b, 3, 2, 0, 0)
	if string(b.b) != "\x1b[3;4H" {
		t.Errorf("got %q, want CUP to row 3 col 4 (1-based)", b.b)
	}
}
