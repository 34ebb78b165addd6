// Package input turns a raw terminal input byte stream into normalized
// [event.Event] records (§4.7): cursor/function keys, SGR mouse
// reports, bracketed paste markers, control characters, and UTF-8 text,
// with a prefix mode that stops before an incomplete trailing sequence
// so the caller can buffer and retry once more bytes arrive.
package input

import (
	"github.com/gridvt/termcore/event"
	"github.com/gridvt/termcore/text"
)

// Parse scans data and appends the events it recognizes to events,
// returning the possibly-grown slice and the number of leading bytes
// of data it fully accounted for. Bytes after the returned count form
// an incomplete sequence (escape sequence or multi-byte UTF-8) and
// should be prepended to the next call once more input arrives. Events
// are appended in strict left-to-right order of the first byte of the
// sequence that produced them (§4.7).
func Parse(data []byte, timeMs uint32, events []event.Event) ([]event.Event, int) {
	i := 0
	for i < len(data) {
		n, ev, ok, incomplete := parseOne(data[i:], timeMs)
		if incomplete {
			break
		}
		if ok {
			events = append(events, ev...)
		}
		i += n
	}
	return events, i
}

// parseOne consumes exactly one logical unit (a key, control byte, or
// one UTF-8 scalar) from the front of b. incomplete means b is a
// genuine prefix of a longer sequence and nothing should be consumed
// yet. ev is a slice for the caller's convenience, but each call yields
// at most one event.
func parseOne(b []byte, timeMs uint32) (n int, ev []event.Event, ok bool, incomplete bool) {
	switch b[0] {
	case 0x1b:
		return parseEscape(b, timeMs)
	case 0x0d, 0x0a:
		return 1, single(event.Event{Kind: event.KindKey, Key: event.KeyEnter, TimeMs: timeMs}), true, false
	case 0x09:
		return 1, single(event.Event{Kind: event.KindKey, Key: event.KeyTab, TimeMs: timeMs}), true, false
	case 0x7f:
		return 1, single(event.Event{Kind: event.KindKey, Key: event.KeyBackspace, TimeMs: timeMs}), true, false
	}
	return parseUTF8(b, timeMs)
}

func single(e event.Event) []event.Event { return []event.Event{e} }

func parseUTF8(b []byte, timeMs uint32) (n int, ev []event.Event, ok bool, incomplete bool) {
	if text.Incomplete(b) {
		return 0, nil, false, true
	}
	r, size := text.DecodeScalar(b)
	return size, single(event.Event{
		Kind:   event.KindKey,
		Key:    event.KeyRune,
		Rune:   r,
		TimeMs: timeMs,
	}), true, false
}
