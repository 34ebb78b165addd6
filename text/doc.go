// Package text implements the UTF-8 decode and width policy shared by
// the drawlist painter and the diff renderer: strict one-scalar
// decoding (overlong and surrogate sequences rejected in favor of
// U+FFFD), grapheme cluster boundaries via [github.com/rivo/uniseg],
// East-Asian width classification via [golang.org/x/text/width]
// layered on top of [github.com/unilibs/uniwidth]'s baseline rune
// width, and tab-stop computation.
package text
