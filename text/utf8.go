package text

import "unicode/utf8"

// ReplacementChar is emitted in place of any invalid, overlong, or
// surrogate-encoding scalar.
const ReplacementChar = utf8.RuneError

// DecodeScalar decodes one scalar value from the front of b, strictly:
// overlong encodings and UTF-16 surrogate halves are rejected the same
// way unicode/utf8 already rejects them (RFC 3629), producing
// ReplacementChar with a size of exactly 1 so the caller always makes
// forward progress one byte past the illegal lead byte.
//
// This is unicode/utf8.DecodeRune under a name that documents the
// invariant termcore depends on (§8 "UTF-8 strictness"); every example
// in the pack that decodes terminal input bytes (gdamore/tcell's
// parseRune, the teacher's own handler) relies on the same stdlib
// behavior rather than a hand-rolled decoder, and there is no
// third-party decoder in the retrieval pack that improves on it.
func DecodeScalar(b []byte) (r rune, size int) {
	if len(b) == 0 {
		return 0, 0
	}
	r, size = utf8.DecodeRune(b)
	if r == utf8.RuneError && size <= 1 {
		return ReplacementChar, 1
	}
	return r, size
}

// Incomplete reports whether b is a non-empty proper prefix of a valid
// multi-byte encoding — i.e. more bytes might complete it — as opposed
// to an outright invalid lead byte, which DecodeScalar already resolves
// to ReplacementChar without waiting for more input. Callers doing
// incremental/streaming decode (the input byte parser's prefix mode,
// §4.7) check this before falling back to DecodeScalar's verdict.
func Incomplete(b []byte) bool {
	return len(b) > 0 && !utf8.FullRune(b)
}

// DecodeScalarString is DecodeScalar over a string, avoiding a []byte copy.
func DecodeScalarString(s string) (r rune, size int) {
	if len(s) == 0 {
		return 0, 0
	}
	r, size = utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return ReplacementChar, 1
	}
	return r, size
}
