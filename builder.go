package termcore

import "encoding/binary"

// Builder assembles a drawlist v1 byte stream (§3, §6) command by
// command, so a caller that wants to submit a drawlist doesn't have to
// hand-roll the wire layout [ValidateDrawlist] parses. It is the
// encoder side of the codec; ValidateDrawlist/Execute are the decode
// and execute sides.
type Builder struct {
	cmds  []byte
	strs  [][]byte
	blobs [][]byte
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) addString(s string) uint32 {
	idx := uint32(len(b.strs))
	b.strs = append(b.strs, []byte(s))
	return idx
}

func (b *Builder) addBlob(raw []byte) uint32 {
	idx := uint32(len(b.blobs))
	b.blobs = append(b.blobs, raw)
	return idx
}

func (b *Builder) cmd(op Opcode, payload []byte) {
	hdr := make([]byte, cmdHdrSize)
	hdr[0] = byte(op)
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(cmdHdrSize+len(payload)))
	b.cmds = append(b.cmds, hdr...)
	b.cmds = append(b.cmds, payload...)
}

func i32le(v int32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(v))
	return buf
}

func rectPayload(r Rect) []byte {
	return append(append(append(
		i32le(int32(r.X0)), i32le(int32(r.Y0))...), i32le(int32(r.X1))...), i32le(int32(r.Y1))...)
}

// Clear appends an OpClear command.
func (b *Builder) Clear(s Style) {
	buf := make([]byte, styleSize)
	EncodeStyle(buf, s)
	b.cmd(OpClear, buf)
}

// FillRect appends an OpFillRect command.
func (b *Builder) FillRect(r Rect, s Style) {
	styleBuf := make([]byte, styleSize)
	EncodeStyle(styleBuf, s)
	b.cmd(OpFillRect, append(rectPayload(r), styleBuf...))
}

// DrawText appends an OpDrawText command, interning s as a string span.
func (b *Builder) DrawText(x, y int, s string, style Style) {
	idx := b.addString(s)
	idxBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(idxBuf, idx)
	styleBuf := make([]byte, styleSize)
	EncodeStyle(styleBuf, style)
	p := append(append(append(i32le(int32(x)), i32le(int32(y))...), idxBuf...), styleBuf...)
	b.cmd(OpDrawText, p)
}

// DrawTextRun appends an OpDrawTextRun command over a pre-segmented
// sequence of grapheme clusters, interning them as one blob span
// (§3 "a pre-segmented blob").
func (b *Builder) DrawTextRun(x, y int, clusters []string, style Style) {
	var raw []byte
	for _, c := range clusters {
		lenBuf := make([]byte, 2)
		binary.LittleEndian.PutUint16(lenBuf, uint16(len(c)))
		raw = append(raw, lenBuf...)
		raw = append(raw, c...)
	}
	idx := b.addBlob(raw)
	idxBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(idxBuf, idx)
	styleBuf := make([]byte, styleSize)
	EncodeStyle(styleBuf, style)
	p := append(append(append(i32le(int32(x)), i32le(int32(y))...), idxBuf...), styleBuf...)
	b.cmd(OpDrawTextRun, p)
}

// PushClip appends an OpPushClip command.
func (b *Builder) PushClip(r Rect) { b.cmd(OpPushClip, rectPayload(r)) }

// PopClip appends an OpPopClip command.
func (b *Builder) PopClip() { b.cmd(OpPopClip, nil) }

// Encode finalizes the builder into a complete drawlist v1 byte stream
// (header, command stream, string span table + bytes, blob span table
// + bytes), ready for [ValidateDrawlist].
func (b *Builder) Encode() []byte {
	var strBytes, blobBytes, strSpans, blobSpans []byte
	for _, s := range b.strs {
		off, ln := uint32(len(strBytes)), uint32(len(s))
		strSpans = append(strSpans, append(u32le(off), u32le(ln)...)...)
		strBytes = append(strBytes, s...)
	}
	for _, raw := range b.blobs {
		off, ln := uint32(len(blobBytes)), uint32(len(raw))
		blobSpans = append(blobSpans, append(u32le(off), u32le(ln)...)...)
		blobBytes = append(blobBytes, raw...)
	}

	cmdOff := uint32(headerSize)
	cmdBytes := uint32(len(b.cmds))
	strSpanOff := cmdOff + cmdBytes
	strBytesOff := strSpanOff + uint32(len(strSpans))
	blobSpanOff := strBytesOff + uint32(len(strBytes))
	blobBytesOff := blobSpanOff + uint32(len(blobSpans))
	total := blobBytesOff + uint32(len(blobBytes))

	out := make([]byte, total)
	binary.LittleEndian.PutUint32(out[0:4], drawlistMagic)
	binary.LittleEndian.PutUint32(out[4:8], drawlistVersion)
	binary.LittleEndian.PutUint32(out[8:12], headerSize)
	binary.LittleEndian.PutUint32(out[12:16], total)
	binary.LittleEndian.PutUint32(out[16:20], cmdOff)
	binary.LittleEndian.PutUint32(out[20:24], cmdBytes)
	binary.LittleEndian.PutUint32(out[24:28], strSpanOff)
	binary.LittleEndian.PutUint32(out[28:32], uint32(len(b.strs)))
	binary.LittleEndian.PutUint32(out[32:36], strBytesOff)
	binary.LittleEndian.PutUint32(out[36:40], uint32(len(strBytes)))
	binary.LittleEndian.PutUint32(out[40:44], blobSpanOff)
	binary.LittleEndian.PutUint32(out[44:48], uint32(len(b.blobs)))
	binary.LittleEndian.PutUint32(out[48:52], blobBytesOff)
	binary.LittleEndian.PutUint32(out[52:56], uint32(len(blobBytes)))

	copy(out[cmdOff:], b.cmds)
	copy(out[strSpanOff:], strSpans)
	copy(out[strBytesOff:], strBytes)
	copy(out[blobSpanOff:], blobSpans)
	copy(out[blobBytesOff:], blobBytes)
	return out
}

func u32le(v uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	return buf
}
