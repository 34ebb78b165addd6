package image

import (
	"image"

	"golang.org/x/image/draw"
)

// FitMode selects how a source image maps onto a cell-pixel target
// rectangle whose aspect ratio may not match the source's (§4.9).
type FitMode int

const (
	FitFill    FitMode = iota // stretch to exactly fill the target
	FitContain                // letterbox, centered, whole image visible
	FitCover                  // center-crop, target fully covered
)

// Scale resamples src onto a dstW x dstH canvas per mode, using
// integer nearest-neighbor axis mapping (§4.9 "Axis mapping is integer
// nearest-neighbor") via golang.org/x/image/draw's NearestNeighbor
// scaler — the same package the retrieval pack's terminal-image tools
// use for this exact job rather than hand-rolling a resampler.
func Scale(src image.Image, dstW, dstH int, mode FitMode) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	if dstW <= 0 || dstH <= 0 {
		return dst
	}
	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	if sw <= 0 || sh <= 0 {
		return dst
	}

	switch mode {
	case FitFill:
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, sb, draw.Src, nil)
	case FitContain:
		scale := minFloat(float64(dstW)/float64(sw), float64(dstH)/float64(sh))
		w := int(float64(sw) * scale)
		h := int(float64(sh) * scale)
		x0 := (dstW - w) / 2
		y0 := (dstH - h) / 2
		target := image.Rect(x0, y0, x0+w, y0+h)
		draw.NearestNeighbor.Scale(dst, target, src, sb, draw.Src, nil)
	case FitCover:
		scale := maxFloat(float64(dstW)/float64(sw), float64(dstH)/float64(sh))
		w := int(float64(sw) * scale)
		h := int(float64(sh) * scale)
		x0 := (dstW - w) / 2
		y0 := (dstH - h) / 2
		target := image.Rect(x0, y0, x0+w, y0+h)
		draw.NearestNeighbor.Scale(dst, target, src, sb, draw.Src, nil)
	}
	return dst
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
