package capability

import "testing"

func TestProfileHasRequiresAllBits(t *testing.T) {
	p := Profile{Flags: Mouse | Sixel}
	if !p.Has(Mouse) {
		t.Errorf("expected Mouse bit set")
	}
	if p.Has(KittyGraphics) {
		t.Errorf("did not expect KittyGraphics bit set")
	}
	if !p.Has(Mouse | Sixel) {
		t.Errorf("expected combined mask satisfied")
	}
}

func TestBaselineDefaultsIsConservative(t *testing.T) {
	b := baselineDefaults()
	if b.ID != Unknown {
		t.Errorf("expected Unknown id, got %v", b.ID)
	}
	if !b.Has(Mouse) || !b.Has(BracketedPaste) {
		t.Errorf("baseline should carry Mouse and BracketedPaste")
	}
	if b.Has(Sixel) || b.Has(KittyGraphics) || b.Has(SyncUpdate) {
		t.Errorf("baseline should not assume any image/sync capability")
	}
}

func TestKnownDefaultsPerTerminal(t *testing.T) {
	cases := []struct {
		id   TerminalID
		want Flag
	}{
		{Kitty, KittyGraphics},
		{ITerm2, ITerm2Images},
		{WezTerm, Sixel},
		{Alacritty, Hyperlinks},
		{GhosttyTerm, KittyGraphics},
		{XtermCompatible, Sixel},
	}
	for _, c := range cases {
		got := knownDefaults(c.id)
		if got&c.want == 0 {
			t.Errorf("knownDefaults(%v) = %v, missing expected bit %v", c.id, got, c.want)
		}
	}
	if knownDefaults(Unknown) != 0 {
		t.Errorf("knownDefaults(Unknown) should be empty")
	}
}

func TestKnownDefaultsUnicodeOnlyForModernTerminals(t *testing.T) {
	for _, id := range []TerminalID{Kitty, ITerm2, WezTerm, Alacritty, GhosttyTerm, XtermCompatible} {
		if knownDefaults(id)&Unicode == 0 {
			t.Errorf("knownDefaults(%v) should carry Unicode", id)
		}
	}
	if knownDefaults(VT100)&Unicode != 0 {
		t.Errorf("knownDefaults(VT100) should not carry Unicode")
	}
}

func TestOverrideMaskSuppressWinsOverForce(t *testing.T) {
	m := OverrideMask{Force: Sixel | Mouse, Suppress: Sixel}
	p := Profile{Flags: 0}
	out := m.Apply(p)
	if out.Has(Sixel) {
		t.Errorf("suppress should have cleared the forced Sixel bit")
	}
	if !out.Has(Mouse) {
		t.Errorf("expected forced Mouse bit set")
	}
}

func TestOverrideMaskPreservesUntouchedBits(t *testing.T) {
	m := OverrideMask{Force: KittyGraphics}
	p := Profile{Flags: Hyperlinks}
	out := m.Apply(p)
	if !out.Has(Hyperlinks) || !out.Has(KittyGraphics) {
		t.Errorf("expected both pre-existing and forced bits set, got %v", out.Flags)
	}
}
