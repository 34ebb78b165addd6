package image

import (
	"encoding/base64"
	"fmt"
)

// kittyChunkRawMax is the largest raw chunk transmitted per APC (3072
// bytes raw encodes to 4096 base64 bytes, §4.9).
const kittyChunkRawMax = 3072

func apc(ctrl, payload string) []byte {
	s := "\x1b_G" + ctrl
	if payload != "" {
		s += ";" + payload
	}
	s += "\x1b\\"
	return []byte(s)
}

// EncodeKittyTransmit emits the chunked APC transmit sequence for an
// RGBA image: the first chunk carries the format/dimensions/id
// control data, every chunk after it carries only the continuation
// flag, and m=1/m=0 marks continuation/last (§4.9 "Kitty").
func EncodeKittyTransmit(imageID uint32, pixelW, pixelH uint32, rgba []byte) []byte {
	var out []byte
	for off := 0; off < len(rgba) || (off == 0 && len(rgba) == 0); {
		end := off + kittyChunkRawMax
		if end > len(rgba) {
			end = len(rgba)
		}
		more := end < len(rgba)
		mFlag := 0
		if more {
			mFlag = 1
		}
		chunkB64 := base64.StdEncoding.EncodeToString(rgba[off:end])
		var ctrl string
		if off == 0 {
			ctrl = fmt.Sprintf("a=t,f=32,s=%d,v=%d,i=%d,m=%d", pixelW, pixelH, imageID, mFlag)
		} else {
			ctrl = fmt.Sprintf("m=%d", mFlag)
		}
		out = append(out, apc(ctrl, chunkB64)...)
		off = end
		if !more {
			break
		}
	}
	return out
}

// EncodeKittyPlace emits a cursor move to (row,col) (0-based) followed
// by the placement APC sizing the image to cols x rows cells at the
// given z-index.
func EncodeKittyPlace(row, col int, imageID uint32, cols, rows uint32, z int32) []byte {
	cup := []byte(fmt.Sprintf("\x1b[%d;%dH", row+1, col+1))
	place := apc(fmt.Sprintf("a=p,i=%d,c=%d,r=%d,z=%d", imageID, cols, rows, z), "")
	return append(cup, place...)
}

// EncodeKittyDelete emits the delete-by-id APC (§4.9 "delete with APC
// a=d,d=i,i=").
func EncodeKittyDelete(imageID uint32) []byte {
	return apc(fmt.Sprintf("a=d,d=i,i=%d", imageID), "")
}
