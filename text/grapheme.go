package text

import "github.com/rivo/uniseg"

// NextGraphemeCluster returns the first grapheme cluster in s (a
// sequence of one or more runes rendered as a single glyph — e.g. a
// base letter plus combining marks, or a ZWJ emoji sequence) and the
// remainder of s after it. state should be -1 on the first call for a
// given string and the returned state threaded into subsequent calls,
// matching github.com/rivo/uniseg's stateful boundary API (used the
// same way across the pack's terminal UIs, e.g. charmbracelet's cellbuf
// and the ssh-x-term vterm).
func NextGraphemeCluster(s string, state int) (cluster, rest string, newState int) {
	if s == "" {
		return "", "", state
	}
	cluster, rest, _, newState = uniseg.FirstGraphemeClusterInString(s, state)
	return cluster, rest, newState
}

// GraphemeClusters splits s into its grapheme clusters.
func GraphemeClusters(s string) []string {
	var out []string
	state := -1
	for s != "" {
		var cluster string
		cluster, s, state = NextGraphemeCluster(s, state)
		if cluster == "" {
			break
		}
		out = append(out, cluster)
	}
	return out
}
