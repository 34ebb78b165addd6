package event

import "encoding/binary"

// Batch v1 wire layout (§4.8, §6): little-endian header followed by a
// sequence of 4-byte-aligned records. The writer never emits a partial
// record — when the next record would not fit in the destination
// buffer, it stops, marks the header TRUNCATED, and leaves what it has
// already written intact, so a decoder that trusts each record's
// recordSize field never reads past a whole record.
const (
	batchMagic   uint32 = 0x31544542 // "BET1"
	batchVersion uint32 = 1

	batchHeaderSize = 20 // magic, version, total_size, event_count, flags
	recordHeaderSize = 16 // type, record_size, time_ms, flags

	FlagTruncated uint32 = 1 << 0
)

func align4(n int) int { return (n + 3) &^ 3 }

// Packer serializes a queue drain into the batch v1 format into a
// caller-owned destination buffer.
type Packer struct {
	dst        []byte
	used       int
	eventCount uint32
	truncated  bool
}

// NewPacker reserves the header region of dst and returns a Packer
// ready to accept events.
func NewPacker(dst []byte) *Packer {
	p := &Packer{dst: dst}
	if len(dst) >= batchHeaderSize {
		p.used = batchHeaderSize
	} else {
		p.used = len(dst)
		p.truncated = true
	}
	return p
}

func encodePayload(e Event) []byte {
	switch e.Kind {
	case KindKey:
		b := make([]byte, 12)
		binary.LittleEndian.PutUint32(b[0:4], uint32(e.Key))
		binary.LittleEndian.PutUint32(b[4:8], uint32(e.Rune))
		binary.LittleEndian.PutUint32(b[8:12], uint32(e.Mods))
		return b
	case KindMouse:
		b := make([]byte, 28)
		binary.LittleEndian.PutUint32(b[0:4], uint32(e.MouseKind))
		binary.LittleEndian.PutUint32(b[4:8], uint32(e.Buttons))
		binary.LittleEndian.PutUint32(b[8:12], uint32(e.Col))
		binary.LittleEndian.PutUint32(b[12:16], uint32(e.Row))
		binary.LittleEndian.PutUint32(b[16:20], uint32(e.Mods))
		binary.LittleEndian.PutUint32(b[20:24], uint32(e.WheelX))
		binary.LittleEndian.PutUint32(b[24:28], uint32(e.WheelY))
		return b
	case KindPasteStart, KindPasteEnd:
		return nil
	case KindResize:
		b := make([]byte, 8)
		binary.LittleEndian.PutUint32(b[0:4], uint32(e.Cols))
		binary.LittleEndian.PutUint32(b[4:8], uint32(e.Rows))
		return b
	case KindFocus:
		b := make([]byte, 4)
		if e.Mods&ModShift != 0 { // reuse: ModShift set in Mods is the "gained focus" sentinel set by caller
			binary.LittleEndian.PutUint32(b, 1)
		}
		return b
	case KindUser:
		b := make([]byte, 8+len(e.UserPayload))
		binary.LittleEndian.PutUint32(b[0:4], e.UserTag)
		binary.LittleEndian.PutUint32(b[4:8], uint32(len(e.UserPayload)))
		copy(b[8:], e.UserPayload)
		return b
	case KindTick:
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b[0:4], e.DtMs)
		return b
	default:
		return nil
	}
}

// PushEvent appends one record whole-or-not-at-all. It returns false
// (and latches the packer's truncated state) when the record does not
// fit in the remaining destination space.
func (p *Packer) PushEvent(e Event) bool {
	if p.truncated {
		return false
	}
	payload := encodePayload(e)
	recSize := align4(recordHeaderSize + len(payload))
	if p.used+recSize > len(p.dst) {
		p.truncated = true
		return false
	}
	off := p.used
	binary.LittleEndian.PutUint32(p.dst[off:off+4], uint32(e.Kind))
	binary.LittleEndian.PutUint32(p.dst[off+4:off+8], uint32(recSize))
	binary.LittleEndian.PutUint32(p.dst[off+8:off+12], e.TimeMs)
	binary.LittleEndian.PutUint32(p.dst[off+12:off+16], 0)
	copy(p.dst[off+recordHeaderSize:], payload)
	for i := off + recordHeaderSize + len(payload); i < off+recSize; i++ {
		p.dst[i] = 0
	}
	p.used += recSize
	p.eventCount++
	return true
}

// Finish patches the header fields and returns the total number of
// bytes written and whether the batch was truncated.
func (p *Packer) Finish() (int, bool) {
	if len(p.dst) >= 4 {
		binary.LittleEndian.PutUint32(p.dst[0:4], batchMagic)
	}
	if len(p.dst) >= 8 {
		binary.LittleEndian.PutUint32(p.dst[4:8], batchVersion)
	}
	if len(p.dst) >= 12 {
		binary.LittleEndian.PutUint32(p.dst[8:12], uint32(p.used))
	}
	if len(p.dst) >= 16 {
		binary.LittleEndian.PutUint32(p.dst[12:16], p.eventCount)
	}
	var flags uint32
	if p.truncated {
		flags |= FlagTruncated
	}
	if len(p.dst) >= 20 {
		binary.LittleEndian.PutUint32(p.dst[16:20], flags)
	}
	return p.used, p.truncated
}
