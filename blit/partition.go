package blit

// bestPartition enumerates every 2^n two-color assignment of samples
// (bit set = glyph's "foreground" sub-cells, clear = "background"),
// scores each by the summed squared RGB distance from every sample's
// effective color to its assigned class's mean, and returns the
// minimum-error pattern plus its two class means (§4.3 "enumerate all
// 2^N patterns... pick the minimum-error pattern").
//
// Per-class means are computed over every sample assigned to the
// class (using its effective color — opaque samples' own RGB, or bg
// for transparent ones), not only opaque samples: with zero-to-few
// opaque sub-pixels per cell this keeps every class non-empty without
// a special-cased fallback mean.
func bestPartition(samples []Sample, bg RGB, n int) (pattern int, fg, bgOut RGB) {
	bestErr := -1.0
	bestPattern := 0
	effective := make([]RGB, len(samples))
	for i, s := range samples {
		effective[i] = effectiveColor(s, bg)
	}

	for p := 0; p < (1 << uint(n)); p++ {
		var setIdx, clrIdx []int
		for i := 0; i < n; i++ {
			if p&(1<<uint(i)) != 0 {
				setIdx = append(setIdx, i)
			} else {
				clrIdx = append(clrIdx, i)
			}
		}
		meanSet := meanOf(effective, setIdx, bg)
		meanClr := meanOf(effective, clrIdx, bg)

		var errSum float64
		for _, i := range setIdx {
			errSum += sqDist(effective[i], meanSet)
		}
		for _, i := range clrIdx {
			errSum += sqDist(effective[i], meanClr)
		}
		if bestErr < 0 || errSum < bestErr {
			bestErr = errSum
			bestPattern = p
			fg, bgOut = meanSet, meanClr
		}
	}
	return bestPattern, fg, bgOut
}

func meanOf(colors []RGB, idx []int, fallback RGB) RGB {
	if len(idx) == 0 {
		return fallback
	}
	var r, g, b int
	for _, i := range idx {
		r += int(colors[i].R)
		g += int(colors[i].G)
		b += int(colors[i].B)
	}
	n := len(idx)
	return RGB{uint8(r / n), uint8(g / n), uint8(b / n)}
}

func sqDist(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return dr*dr + dg*dg + db*db
}
