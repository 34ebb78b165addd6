package termcore

import (
	"encoding/binary"

	"github.com/gridvt/termcore/bounded"
	"github.com/gridvt/termcore/text"
)

// Opcode tags a drawlist command (§3 "Drawlist v1 wire format").
type Opcode uint8

const (
	OpInvalid Opcode = iota
	OpClear
	OpFillRect
	OpDrawText
	OpPushClip
	OpPopClip
	OpDrawTextRun
)

const (
	drawlistMagic   uint32 = 0x314C5644 // "DVL1" little-endian
	drawlistVersion uint32 = 1

	headerSize  = 56
	cmdHdrSize  = 8
	styleSize   = 18
	spanEntSize = 8 // offset uint32 + length uint32
)

// Limits bounds drawlist validation (§4.2 "limits (max commands, max
// strings, max blob bytes) are exceeded").
type Limits struct {
	MaxCommands  int
	MaxStrings   int
	MaxBlobBytes int
}

// DefaultLimits are generous but non-infinite bounds suitable for a
// single frame's drawlist.
var DefaultLimits = Limits{MaxCommands: 65536, MaxStrings: 4096, MaxBlobBytes: 1 << 20}

// Command is the decoded, structured form of one drawlist entry —
// validation converts the wire bytes into these once so that repeated
// execution never re-parses or re-validates (§8 "deterministic
// execution").
type Command struct {
	Op    Opcode
	Rect  Rect
	X, Y  int
	Style Style
	Text  string // resolved string payload for OpDrawText
	Run   []string // resolved grapheme clusters for OpDrawTextRun
}

// Drawlist is the validated, executable form of a drawlist v1 byte
// stream: a flat slice of [Command], independent of the original
// buffer's lifetime.
type Drawlist struct {
	Commands []Command
}

func u32(b []byte, off uint32) uint32 { return binary.LittleEndian.Uint32(b[off:]) }
func i32(b []byte, off uint32) int32  { return int32(binary.LittleEndian.Uint32(b[off:])) }

func decodeStyle(b []byte) Style {
	return Style{
		Fg:             RGB{b[0], b[1], b[2]},
		Bg:             RGB{b[3], b[4], b[5]},
		Attrs:          AttrFlags(binary.LittleEndian.Uint16(b[6:8])),
		UnderlineColor: RGB{b[8], b[9], b[10]},
		HasUnderlineFg: b[11] != 0,
		HyperlinkRef:   binary.LittleEndian.Uint32(b[14:18]),
	}
}

// EncodeStyle writes style's 18-byte wire representation, matching
// decodeStyle's layout. Exported so callers constructing drawlists in
// tests (or a future encoder) don't have to hand-roll the byte layout.
func EncodeStyle(dst []byte, s Style) {
	dst[0], dst[1], dst[2] = s.Fg.R, s.Fg.G, s.Fg.B
	dst[3], dst[4], dst[5] = s.Bg.R, s.Bg.G, s.Bg.B
	binary.LittleEndian.PutUint16(dst[6:8], uint16(s.Attrs))
	dst[8], dst[9], dst[10] = s.UnderlineColor.R, s.UnderlineColor.G, s.UnderlineColor.B
	if s.HasUnderlineFg {
		dst[11] = 1
	}
	dst[12], dst[13] = 0, 0
	binary.LittleEndian.PutUint32(dst[14:18], s.HyperlinkRef)
}

// ValidateDrawlist parses and validates a drawlist v1 byte stream
// against limits, returning a ready-to-execute [Drawlist] or a
// *bounded.Error with Code InvalidArgument or Limit (§4.2).
func ValidateDrawlist(data []byte, limits Limits) (*Drawlist, error) {
	if len(data) < headerSize {
		return nil, bounded.New(bounded.InvalidArgument, "drawlist shorter than header")
	}
	if u32(data, 0) != drawlistMagic {
		return nil, bounded.New(bounded.InvalidArgument, "drawlist magic mismatch")
	}
	if u32(data, 4) != drawlistVersion {
		return nil, bounded.New(bounded.InvalidArgument, "drawlist unknown version")
	}
	hdrSize := u32(data, 8)
	totalSize := u32(data, 12)
	if hdrSize != headerSize || totalSize != uint32(len(data)) {
		return nil, bounded.New(bounded.InvalidArgument, "drawlist header/total size mismatch")
	}

	cmdOffset, cmdBytes := u32(data, 16), u32(data, 20)
	strSpanOffset, strSpanCount := u32(data, 24), u32(data, 28)
	strBytesOffset, strBytesLen := u32(data, 32), u32(data, 36)
	blobSpanOffset, blobSpanCount := u32(data, 40), u32(data, 44)
	blobBytesOffset, blobBytesLen := u32(data, 48), u32(data, 52)

	total := uint32(len(data))
	if !bounded.InSpan(cmdOffset, cmdBytes, total) ||
		!bounded.InSpan(strSpanOffset, strSpanCount*spanEntSize, total) ||
		!bounded.InSpan(strBytesOffset, strBytesLen, total) ||
		!bounded.InSpan(blobSpanOffset, blobSpanCount*spanEntSize, total) ||
		!bounded.InSpan(blobBytesOffset, blobBytesLen, total) {
		return nil, bounded.New(bounded.InvalidArgument, "drawlist span out of bounds")
	}
	if spansOverlap(strBytesOffset, strBytesLen, blobBytesOffset, blobBytesLen) {
		return nil, bounded.New(bounded.InvalidArgument, "drawlist string/blob spans overlap")
	}
	if int(strSpanCount) > limits.MaxStrings {
		return nil, bounded.New(bounded.Limit, "too many strings")
	}
	if int(blobBytesLen) > limits.MaxBlobBytes {
		return nil, bounded.New(bounded.Limit, "blob bytes exceed limit")
	}

	strings_, err := readSpans(data, strSpanOffset, strSpanCount, strBytesOffset, strBytesLen)
	if err != nil {
		return nil, err
	}
	blobSpans, err := readRawSpans(data, blobSpanOffset, blobSpanCount, blobBytesOffset, blobBytesLen)
	if err != nil {
		return nil, err
	}

	dl := &Drawlist{}
	var consumed uint32
	clipDepth := 0
	for consumed < cmdBytes {
		if len(dl.Commands) >= limits.MaxCommands {
			return nil, bounded.New(bounded.Limit, "too many commands")
		}
		base := cmdOffset + consumed
		if !bounded.InSpan(base, cmdHdrSize, total) {
			return nil, bounded.New(bounded.InvalidArgument, "truncated command header")
		}
		op := Opcode(data[base])
		flags := data[base+1]
		_ = flags
		reserved := binary.LittleEndian.Uint16(data[base+2 : base+4])
		size := u32(data, base+4)
		if reserved != 0 {
			return nil, bounded.New(bounded.InvalidArgument, "nonzero reserved command bytes")
		}
		if size < cmdHdrSize || !bounded.InSpan(base, size, total) {
			return nil, bounded.New(bounded.InvalidArgument, "command size out of bounds")
		}
		payload := data[base+cmdHdrSize : base+size]

		cmd, want, err := decodeCommand(op, payload, strings_, blobSpans, &clipDepth)
		if err != nil {
			return nil, err
		}
		if want+cmdHdrSize != size {
			return nil, bounded.New(bounded.InvalidArgument, "command size does not match opcode shape")
		}
		dl.Commands = append(dl.Commands, cmd)
		consumed += size
	}
	if consumed != cmdBytes {
		return nil, bounded.New(bounded.InvalidArgument, "command sizes do not sum to cmd_bytes")
	}
	if clipDepth != 0 {
		// The wire format alone could encode unbalanced PUSH_CLIP/
		// POP_CLIP, but leaving clips pushed across a frame boundary
		// is not permitted here: execution starts from a bare clip
		// stack, so a net-positive depth would silently leak clips
		// into the next drawlist. Reject it explicitly.
		return nil, bounded.New(bounded.InvalidArgument, "unbalanced clip stack")
	}
	return dl, nil
}

func spansOverlap(off1, len1, off2, len2 uint32) bool {
	if len1 == 0 || len2 == 0 {
		return false
	}
	end1 := off1 + len1
	end2 := off2 + len2
	return off1 < end2 && off2 < end1
}

func readSpans(data []byte, spanOff, count, bytesOff, bytesLen uint32) ([]string, error) {
	out := make([]string, count)
	for i := uint32(0); i < count; i++ {
		base := spanOff + i*spanEntSize
		off := u32(data, base)
		ln := u32(data, base+4)
		if !bounded.InSpan(off, ln, bytesLen) {
			return nil, bounded.New(bounded.InvalidArgument, "string span out of bounds")
		}
		out[i] = string(data[bytesOff+off : bytesOff+off+ln])
	}
	return out, nil
}

func readRawSpans(data []byte, spanOff, count, bytesOff, bytesLen uint32) ([][]byte, error) {
	out := make([][]byte, count)
	for i := uint32(0); i < count; i++ {
		base := spanOff + i*spanEntSize
		off := u32(data, base)
		ln := u32(data, base+4)
		if !bounded.InSpan(off, ln, bytesLen) {
			return nil, bounded.New(bounded.InvalidArgument, "blob span out of bounds")
		}
		out[i] = data[bytesOff+off : bytesOff+off+ln]
	}
	return out, nil
}

// decodeCommand returns the structured command and the payload size it
// expects (excluding the 8-byte command header), so the caller can
// verify it against the wire-declared size.
func decodeCommand(op Opcode, p []byte, strs []string, blobs [][]byte, clipDepth *int) (Command, uint32, error) {
	switch op {
	case OpClear:
		if len(p) < styleSize {
			return Command{}, 0, bounded.New(bounded.InvalidArgument, "truncated CLEAR payload")
		}
		return Command{Op: op, Style: decodeStyle(p)}, styleSize, nil

	case OpFillRect:
		const want = 16 + styleSize
		if len(p) < want {
			return Command{}, 0, bounded.New(bounded.InvalidArgument, "truncated FILL_RECT payload")
		}
		r := Rect{int(i32(p, 0)), int(i32(p, 4)), int(i32(p, 8)), int(i32(p, 12))}
		return Command{Op: op, Rect: r, Style: decodeStyle(p[16:])}, want, nil

	case OpDrawText:
		const want = 8 + 4 + styleSize
		if len(p) < want {
			return Command{}, 0, bounded.New(bounded.InvalidArgument, "truncated DRAW_TEXT payload")
		}
		idx := u32(p, 8)
		if int(idx) >= len(strs) {
			return Command{}, 0, bounded.New(bounded.InvalidArgument, "DRAW_TEXT string index out of range")
		}
		return Command{
			Op: op, X: int(i32(p, 0)), Y: int(i32(p, 4)),
			Text: strs[idx], Style: decodeStyle(p[12:]),
		}, want, nil

	case OpPushClip:
		const want = 16
		if len(p) < want {
			return Command{}, 0, bounded.New(bounded.InvalidArgument, "truncated PUSH_CLIP payload")
		}
		*clipDepth++
		if *clipDepth > MaxClipDepth-1 {
			return Command{}, 0, bounded.New(bounded.Limit, "clip stack overflow in drawlist")
		}
		r := Rect{int(i32(p, 0)), int(i32(p, 4)), int(i32(p, 8)), int(i32(p, 12))}
		return Command{Op: op, Rect: r}, want, nil

	case OpPopClip:
		*clipDepth--
		if *clipDepth < 0 {
			return Command{}, 0, bounded.New(bounded.InvalidArgument, "clip stack underflow in drawlist")
		}
		return Command{Op: op}, 0, nil

	case OpDrawTextRun:
		const want = 8 + 4 + styleSize
		if len(p) < want {
			return Command{}, 0, bounded.New(bounded.InvalidArgument, "truncated DRAW_TEXT_RUN payload")
		}
		idx := u32(p, 8)
		if int(idx) >= len(blobs) {
			return Command{}, 0, bounded.New(bounded.InvalidArgument, "DRAW_TEXT_RUN blob index out of range")
		}
		run, err := decodeGraphemeRun(blobs[idx])
		if err != nil {
			return Command{}, 0, err
		}
		return Command{
			Op: op, X: int(i32(p, 0)), Y: int(i32(p, 4)),
			Run: run, Style: decodeStyle(p[12:]),
		}, want, nil

	default:
		return Command{}, 0, bounded.New(bounded.InvalidArgument, "unknown opcode")
	}
}

// decodeGraphemeRun splits a DRAW_TEXT_RUN blob into pre-segmented
// clusters: each entry is a uint16 length prefix followed by that many
// UTF-8 bytes (a "pre-segmented blob" per §3, avoiding re-clustering at
// execution time).
func decodeGraphemeRun(b []byte) ([]string, error) {
	var out []string
	off := 0
	for off < len(b) {
		if off+2 > len(b) {
			return nil, bounded.New(bounded.InvalidArgument, "truncated grapheme run length")
		}
		n := int(binary.LittleEndian.Uint16(b[off : off+2]))
		off += 2
		if off+n > len(b) {
			return nil, bounded.New(bounded.InvalidArgument, "truncated grapheme run bytes")
		}
		out = append(out, string(b[off:off+n]))
		off += n
	}
	return out, nil
}

// Execute walks dl's commands in order against dst and cur, matching
// §4.2's "all-or-nothing with respect to the caller's framebuffer"
// contract: the caller is expected to pass a staging framebuffer and
// swap it in only once Execute returns nil (§9 "no partial effects
// contract"). policy pins the width/grapheme rules used by the text
// commands.
func Execute(dl *Drawlist, dst *Framebuffer, cur *Cursor, policy text.Policy) error {
	dst.ResetClips()
	for _, c := range dl.Commands {
		switch c.Op {
		case OpClear:
			dst.Clear(c.Style)
		case OpFillRect:
			dst.FillRect(c.Rect, c.Style)
		case OpDrawText:
			end := dst.DrawTextBytes(c.X, c.Y, []byte(c.Text), c.Style, policy)
			cur.Col, cur.Row = end, c.Y
		case OpDrawTextRun:
			x := c.X
			for _, g := range c.Run {
				w := policy.StringWidth(g)
				if w <= 0 {
					w = 1
				}
				dst.PutGrapheme(x, c.Y, g, c.Style, policy)
				x += w
			}
			cur.Col, cur.Row = x, c.Y
		case OpPushClip:
			if err := dst.PushClip(c.Rect); err != nil {
				return err
			}
		case OpPopClip:
			if err := dst.PopClip(); err != nil {
				return err
			}
		default:
			return bounded.New(bounded.InvalidArgument, "unexecutable opcode")
		}
	}
	return nil
}
