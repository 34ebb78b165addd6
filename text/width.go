package text

import (
	"github.com/unilibs/uniwidth"
	"golang.org/x/text/width"
)

// EmojiPolicy selects how emoji-range scalars are measured, resolving
// the §9 open question ("the source's include-braille-in-auto toggle
// ... is ambiguous — leave the policy pluggable") for the analogous
// emoji-width ambiguity: different terminals render emoji as one cell
// (narrow, text-style) or two (wide, emoji-presentation), and nothing
// in the byte stream itself says which: it depends on the terminal's
// font and presentation defaults.
type EmojiPolicy int

const (
	// EmojiAuto defers to the baseline width library's answer.
	EmojiAuto EmojiPolicy = iota
	// EmojiNarrow forces emoji-range scalars to width 1.
	EmojiNarrow
	// EmojiWide forces emoji-range scalars to width 2.
	EmojiWide
)

// Policy is the pinned width policy the framebuffer painter and the
// diff renderer both consult. It must be held constant for the
// lifetime of a single diff computation (§8 "Diff purity").
type Policy struct {
	Emoji EmojiPolicy
}

// DefaultPolicy leaves emoji width to the baseline library.
var DefaultPolicy = Policy{Emoji: EmojiAuto}

// RuneWidth returns the display width of r under this policy: 2 for
// wide, 1 for normal, 0 for zero-width (combining marks, control
// characters). The baseline comes from uniwidth (the teacher's own
// width dependency); x/text/width's Kind classification picks out
// East-Asian-Ambiguous scalars, which are still measured by uniwidth
// (narrow) with no CJK-locale widening, and the EmojiPolicy switch
// overrides the emoji block specifically.
func (p Policy) RuneWidth(r rune) int {
	if isEmojiRune(r) {
		switch p.Emoji {
		case EmojiNarrow:
			return 1
		case EmojiWide:
			return 2
		}
	}

	if k := width.LookupRune(r).Kind(); k == width.EastAsianAmbiguous {
		// Ambiguous-width scalars (e.g. box-drawing, Cyrillic-adjacent
		// Greek letters) default to narrow; uniwidth agrees for the
		// common case, this just documents the override point.
		return uniwidth.RuneWidth(r)
	}

	return uniwidth.RuneWidth(r)
}

// StringWidth sums RuneWidth over every rune in s.
func (p Policy) StringWidth(s string) int {
	total := 0
	for _, r := range s {
		total += p.RuneWidth(r)
	}
	return total
}

// isEmojiRune reports whether r falls in a block commonly assigned
// emoji presentation (misc symbols, dingbats, transport, supplemental
// symbols, and the core emoji plane).
func isEmojiRune(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x27BF:
		return true
	case r >= 0x2190 && r <= 0x21FF && r == 0x2194:
		return true
	case r == 0x2764 || r == 0x2B50 || r == 0x2B55:
		return true
	default:
		return false
	}
}
