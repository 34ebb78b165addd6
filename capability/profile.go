// Package capability builds a stable terminal capability [Profile] from
// a startup probe: a fixed query batch is written once, responses are
// parsed opportunistically from whatever bytes come back (possibly
// interleaved with user keystrokes), and the result is layered onto a
// baseline plus known-terminal defaults (§4.6).
package capability

// TerminalID identifies the detected terminal emulator, used to look up
// a table of known-good defaults before per-probe observations refine
// them (§4.6 "known-terminal defaults").
type TerminalID int

const (
	Unknown TerminalID = iota
	XtermCompatible
	Kitty
	ITerm2
	WezTerm
	Alacritty
	GhosttyTerm
	VT100
)

// Flag is a single boolean capability bit (§3 "fixed set of boolean
// capability bits").
type Flag uint32

const (
	Sixel Flag = 1 << iota
	KittyGraphics
	ITerm2Images
	UnderlineStyles
	ColoredUnderlines
	Hyperlinks
	GraphemeClusters
	Overline
	PixelMouse
	KittyKeyboard
	SyncUpdate
	Mouse
	BracketedPaste
	FocusEvents
	OSC52
	ScrollRegion
	CursorShape
	OutputWaitWritable
	// Unicode reports whether the terminal is known to render Unicode
	// block/sextant/quadrant/braille glyphs rather than mangling them
	// (§4.3 "not-Unicode -> ASCII"). Never inferred from the probe
	// (§4.6 lists no Unicode-detecting query); only ever set via
	// known-terminal defaults or an explicit override.
	Unicode
)

// Profile is the resolved terminal capability record consumed by the
// diff renderer and blitter selection (§3).
type Profile struct {
	ID         TerminalID
	Flags      Flag
	CellPixelW int // 0 if unknown
	CellPixelH int
	ScreenPxW  int
	ScreenPxH  int

	// PreferBraille resolves §9's "include-braille-in-auto" open
	// question: it is never inferred by the detector, only ever set
	// explicitly by the caller (SPEC_FULL.md Open Question #1).
	PreferBraille bool
}

// Has reports whether every bit in mask is set.
func (p Profile) Has(mask Flag) bool { return p.Flags&mask == mask }

// baselineDefaults returns the conservative profile assumed before any
// terminal identity is known: no image protocols, no sync-update, basic
// mouse/paste only — a dumb VT100-like terminal.
func baselineDefaults() Profile {
	return Profile{ID: Unknown, Flags: Mouse | BracketedPaste}
}

// knownDefaults returns the static per-terminal-id default flag table
// (§4.6 "known-terminal defaults (a static table keyed by the detected
// terminal id)"). These are applied atop the baseline before per-probe
// observations refine them further.
func knownDefaults(id TerminalID) Flag {
	switch id {
	case Kitty:
		return Mouse | BracketedPaste | KittyGraphics | KittyKeyboard | SyncUpdate |
			Hyperlinks | UnderlineStyles | ColoredUnderlines | FocusEvents | OSC52 |
			ScrollRegion | CursorShape | PixelMouse | Unicode
	case ITerm2:
		return Mouse | BracketedPaste | ITerm2Images | Hyperlinks | OSC52 |
			ScrollRegion | CursorShape | FocusEvents | Unicode
	case WezTerm:
		return Mouse | BracketedPaste | Sixel | ITerm2Images | Hyperlinks |
			UnderlineStyles | ColoredUnderlines | SyncUpdate | OSC52 | ScrollRegion |
			CursorShape | FocusEvents | Unicode
	case Alacritty:
		return Mouse | BracketedPaste | Hyperlinks | OSC52 | ScrollRegion | CursorShape | Unicode
	case GhosttyTerm:
		return Mouse | BracketedPaste | KittyGraphics | KittyKeyboard | SyncUpdate |
			Hyperlinks | UnderlineStyles | ColoredUnderlines | OSC52 | ScrollRegion |
			CursorShape | FocusEvents | Unicode
	case XtermCompatible:
		return Mouse | BracketedPaste | Sixel | ScrollRegion | CursorShape | Unicode
	case VT100:
		return 0
	default:
		return 0
	}
}

// OverrideMask is a force/suppress pair applied on top of a detected
// profile (§3 "a single flag mask projection exists for force/suppress
// overrides"). When a bit is set in both Force and Suppress, suppress
// wins (§4.6).
type OverrideMask struct {
	Force, Suppress Flag
}

// Apply returns p with mask's force bits set and suppress bits cleared,
// suppress taking precedence over force on overlap.
func (m OverrideMask) Apply(p Profile) Profile {
	p.Flags |= m.Force
	p.Flags &^= m.Suppress
	return p
}
