package capability

import "testing"

func TestParseIdentifiesKittyFromXTVersion(t *testing.T) {
	data := []byte("\x1bP>|kitty(0.28.0)\x1b\\")
	p, consumed, pass := Parse(data, Unknown)
	if p.ID != Kitty {
		t.Errorf("got ID %v, want Kitty", p.ID)
	}
	if consumed != len(data) {
		t.Errorf("consumed = %d, want %d", consumed, len(data))
	}
	if len(pass) != 0 {
		t.Errorf("expected no passthrough, got %q", pass)
	}
}

func TestParseDA1RecognizesSixelCapability(t *testing.T) {
	data := []byte("\x1b[?62;4;6c")
	p, _, _ := Parse(data, Unknown)
	if !p.Has(Sixel) {
		t.Errorf("expected Sixel flag set from DA1 capability 4")
	}
}

func TestParseDA1WithoutSixelCapabilityLeavesFlagUnset(t *testing.T) {
	data := []byte("\x1b[?62;1;2c")
	p, _, _ := Parse(data, Unknown)
	if p.Has(Sixel) {
		t.Errorf("did not expect Sixel flag without capability 4")
	}
}

func TestParseDECRQMSetsCapabilityOnReportedSet(t *testing.T) {
	data := []byte("\x1b[?2026;1$y")
	p, _, _ := Parse(data, Unknown)
	if !p.Has(SyncUpdate) {
		t.Errorf("expected SyncUpdate set for DECRQM value 1")
	}
}

func TestParseDECRQMIgnoresReportedReset(t *testing.T) {
	data := []byte("\x1b[?2026;2$y")
	p, _, _ := Parse(data, Unknown)
	if p.Has(SyncUpdate) {
		t.Errorf("did not expect SyncUpdate for DECRQM value 2 (reset)")
	}
}

func TestParseWindowReportsCellAndScreenPixelSize(t *testing.T) {
	data := []byte("\x1b[6;20;10t\x1b[4;600;900t")
	p, _, _ := Parse(data, Unknown)
	if p.CellPixelH != 20 || p.CellPixelW != 10 {
		t.Errorf("cell pixel size = %dx%d, want 10x20", p.CellPixelW, p.CellPixelH)
	}
	if p.ScreenPxH != 600 || p.ScreenPxW != 900 {
		t.Errorf("screen pixel size = %dx%d, want 900x600", p.ScreenPxW, p.ScreenPxH)
	}
}

func TestParseUnrecognizedBytesBecomePassthrough(t *testing.T) {
	data := []byte("hello\x1b[?2026;1$y")
	p, _, pass := Parse(data, Unknown)
	if string(pass) != "hello" {
		t.Errorf("passthrough = %q, want %q", pass, "hello")
	}
	if !p.Has(SyncUpdate) {
		t.Errorf("expected the probe response to still be parsed past the passthrough prefix")
	}
}

func TestParseFallsBackToProvidedIDWhenUnidentified(t *testing.T) {
	p, _, _ := Parse(nil, XtermCompatible)
	if p.ID != XtermCompatible {
		t.Errorf("got ID %v, want fallback XtermCompatible", p.ID)
	}
}

func TestParseDA2DoesNotSetAnyCapabilityFlags(t *testing.T) {
	data := []byte("\x1b[>0;10;1c")
	p, _, _ := Parse(data, Unknown)
	if p.Flags != 0 {
		t.Errorf("expected no flags set from bare DA2, got %v", p.Flags)
	}
}
