package image

import (
	"encoding/base64"
	"fmt"
	"image"
)

// EncodeITerm2 renders img as an OSC 1337 inline image: cursor move,
// the File= header naming the target cell size, base64 of a PNG
// payload built by [EncodePNG], terminated by BEL (§4.9 "iTerm2").
func EncodeITerm2(img *image.RGBA, row, col int, cellCols, cellRows int) []byte {
	png := EncodePNG(img)
	b64 := base64.StdEncoding.EncodeToString(png)

	var out []byte
	out = append(out, []byte(fmt.Sprintf("\x1b[%d;%dH", row+1, col+1))...)
	header := fmt.Sprintf(
		"\x1b]1337;File=inline=1;width=%d;height=%d;preserveAspectRatio=1;size=%d:",
		cellCols, cellRows, len(png),
	)
	out = append(out, []byte(header)...)
	out = append(out, []byte(b64)...)
	out = append(out, 0x07) // BEL
	return out
}
