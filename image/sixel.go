package image

import (
	"fmt"
	"image"
)

const sixelBandHeight = 6

// sixelLevel quantizes an 8-bit channel to one of 6 uniform levels
// (§4.9 "level = floor((c*5 + 127) / 255)").
func sixelLevel(c uint8) int { return (int(c)*5 + 127) / 255 }

// sixelTransparentIndex is reserved for alpha<128 pixels (§4.9 "Alpha
// <128 is a transparent palette index") — no dot is ever plotted for
// it, so it needs no palette definition.
const sixelTransparentIndex = -1

func sixelColorIndex(r, g, b uint8) int {
	return sixelLevel(r)*36 + sixelLevel(g)*6 + sixelLevel(b)
}

// EncodeSixel renders img as a DCS sixel sequence: cursor move, DCS
// introducer, raster attributes, a palette of the distinct quantized
// colors present, then bands of up to 6 rows each emitting one sixel
// run per present color with RLE for runs of 4 or more repeats,
// terminated by ST (§4.9 "Sixel").
func EncodeSixel(img *image.RGBA, row, col int) []byte {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	idx := make([][]int, h)
	present := map[int]bool{}
	for y := 0; y < h; y++ {
		idx[y] = make([]int, w)
		for x := 0; x < w; x++ {
			c := img.RGBAAt(img.Bounds().Min.X+x, img.Bounds().Min.Y+y)
			if c.A < 128 {
				idx[y][x] = sixelTransparentIndex
				continue
			}
			ci := sixelColorIndex(c.R, c.G, c.B)
			idx[y][x] = ci
			present[ci] = true
		}
	}

	var out []byte
	out = append(out, []byte(fmt.Sprintf("\x1b[%d;%dH", row+1, col+1))...)
	out = append(out, []byte("\x1bP0;1;0q")...)
	out = append(out, []byte(fmt.Sprintf("\"1;1;%d;%d", w, h))...)

	for ci := 0; ci < 216; ci++ {
		if !present[ci] {
			continue
		}
		r := (ci / 36) * 100 / 5
		g := ((ci / 6) % 6) * 100 / 5
		b := (ci % 6) * 100 / 5
		out = append(out, []byte(fmt.Sprintf("#%d;2;%d;%d;%d", ci, r, g, b))...)
	}

	for bandTop := 0; bandTop < h; bandTop += sixelBandHeight {
		bandH := sixelBandHeight
		if bandTop+bandH > h {
			bandH = h - bandTop
		}
		first := true
		for ci := 0; ci < 216; ci++ {
			if !present[ci] {
				continue
			}
			if !bandHasColor(idx, bandTop, bandH, w, ci) {
				continue
			}
			if !first {
				out = append(out, '$')
			}
			first = false
			out = append(out, []byte(fmt.Sprintf("#%d", ci))...)
			out = append(out, encodeSixelRow(idx, bandTop, bandH, w, ci)...)
		}
		out = append(out, '-')
	}
	out = append(out, []byte("\x1b\\")...)
	return out
}

func bandHasColor(idx [][]int, top, h, w, ci int) bool {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if idx[top+y][x] == ci {
				return true
			}
		}
	}
	return false
}

// encodeSixelRow builds one color's sixel character run across a
// band's columns, bit i of each character set when row i of the band
// has color ci at that column, RLE-compressed with "!n" for runs of
// 4 or more identical characters.
func encodeSixelRow(idx [][]int, top, bandH, w, ci int) []byte {
	chars := make([]byte, w)
	for x := 0; x < w; x++ {
		var bits byte
		for y := 0; y < bandH; y++ {
			if idx[top+y][x] == ci {
				bits |= 1 << uint(y)
			}
		}
		chars[x] = 0x3F + bits
	}

	var out []byte
	i := 0
	for i < len(chars) {
		j := i + 1
		for j < len(chars) && chars[j] == chars[i] {
			j++
		}
		run := j - i
		if run >= 4 {
			out = append(out, []byte(fmt.Sprintf("!%d", run))...)
			out = append(out, chars[i])
		} else {
			for k := 0; k < run; k++ {
				out = append(out, chars[i])
			}
		}
		i = j
	}
	return out
}
