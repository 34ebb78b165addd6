package image

import (
	"encoding/binary"
	"hash/adler32"
	"hash/crc32"
	"image"
)

var pngSignature = [8]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

const storedBlockMax = 65535

// EncodePNG emits a minimal 8-bit RGBA PNG: signature, one IHDR, one
// IDAT whose payload is a zlib stream of hand-rolled stored-deflate
// blocks (no compression — the payload is already small per-cell
// imagery, and a real DEFLATE implementation is out of scope for this
// engine), and IEND (§4.9, §6). CRC32/Adler32 use the standard
// library's table-driven checksum implementations rather than
// reimplementing either.
func EncodePNG(img *image.RGBA) []byte {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	raw := make([]byte, 0, h*(1+w*4))
	for y := 0; y < h; y++ {
		raw = append(raw, 0) // filter type 0 (none)
		rowStart := img.PixOffset(img.Bounds().Min.X, img.Bounds().Min.Y+y)
		raw = append(raw, img.Pix[rowStart:rowStart+w*4]...)
	}

	zlibStream := encodeZlibStored(raw)

	out := make([]byte, 0, 8+64+len(zlibStream)+64)
	out = append(out, pngSignature[:]...)
	out = append(out, chunk("IHDR", ihdrPayload(uint32(w), uint32(h)))...)
	out = append(out, chunk("IDAT", zlibStream)...)
	out = append(out, chunk("IEND", nil)...)
	return out
}

func ihdrPayload(w, h uint32) []byte {
	b := make([]byte, 13)
	binary.BigEndian.PutUint32(b[0:4], w)
	binary.BigEndian.PutUint32(b[4:8], h)
	b[8] = 8  // bit depth
	b[9] = 6  // color type: RGBA (truecolor + alpha)
	b[10] = 0 // compression method
	b[11] = 0 // filter method
	b[12] = 0 // interlace method
	return b
}

func chunk(typ string, data []byte) []byte {
	out := make([]byte, 0, 12+len(data))
	lenField := make([]byte, 4)
	binary.BigEndian.PutUint32(lenField, uint32(len(data)))
	out = append(out, lenField...)
	typAndData := append([]byte(typ), data...)
	out = append(out, typAndData...)
	crc := crc32.ChecksumIEEE(typAndData)
	crcField := make([]byte, 4)
	binary.BigEndian.PutUint32(crcField, crc)
	out = append(out, crcField...)
	return out
}

// encodeZlibStored wraps raw in a zlib stream (RFC 1950) using only
// stored (uncompressed) DEFLATE blocks (RFC 1951 §3.2.4), each at most
// storedBlockMax bytes: a header byte (bit0 = final), LEN and its
// one's-complement NLEN (both little-endian), then the raw bytes
// verbatim, followed by the big-endian Adler-32 of the whole input.
func encodeZlibStored(raw []byte) []byte {
	out := []byte{0x78, 0x01} // zlib header: deflate, 32K window, no dict, fastest level (FLEVEL 0; check bits valid for 0x78)
	for off := 0; off < len(raw) || off == 0 && len(raw) == 0; {
		n := len(raw) - off
		if n > storedBlockMax {
			n = storedBlockMax
		}
		final := off+n >= len(raw)
		var hdr byte
		if final {
			hdr = 1
		}
		out = append(out, hdr)
		lenField := make([]byte, 2)
		binary.LittleEndian.PutUint16(lenField, uint16(n))
		out = append(out, lenField...)
		nlenField := make([]byte, 2)
		binary.LittleEndian.PutUint16(nlenField, ^uint16(n))
		out = append(out, nlenField...)
		out = append(out, raw[off:off+n]...)
		off += n
		if final {
			break
		}
	}
	sum := adler32.Checksum(raw)
	sumField := make([]byte, 4)
	binary.BigEndian.PutUint32(sumField, sum)
	out = append(out, sumField...)
	return out
}
