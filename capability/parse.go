package capability

import (
	"strconv"
	"strings"
)

// Parse scans data for the probe responses described in §4.6 and §6,
// returning the observations it could make, the number of bytes it
// scanned (recognized responses and passthrough alike), and the bytes it
// could not recognize as part of a response (passthrough — these may
// be user keystrokes interleaved with the terminal's replies, and the
// input parser is responsible for them, not this package). fallbackID
// seeds Profile.ID when no XTVERSION reply identifies the terminal; a
// DA2 reply sets no identity.
func Parse(data []byte, fallbackID TerminalID) (profile Profile, consumed int, passthrough []byte) {
	profile.ID = Unknown
	i := 0
	for i < len(data) {
		if n, ok := tryXTVersion(data[i:], &profile); ok {
			i += n
			continue
		}
		if n, ok := tryDA1(data[i:], &profile); ok {
			i += n
			continue
		}
		if n, ok := tryDA2(data[i:], &profile); ok {
			i += n
			continue
		}
		if n, ok := tryDECRQM(data[i:], &profile); ok {
			i += n
			continue
		}
		if n, ok := tryWindowReport(data[i:], &profile); ok {
			i += n
			continue
		}
		passthrough = append(passthrough, data[i])
		i++
	}
	if profile.ID == Unknown {
		profile.ID = fallbackID
	}
	return profile, i, passthrough
}

// tryXTVersion recognizes `DCS > | text ST` (ESC P > | text ESC \).
func tryXTVersion(b []byte, p *Profile) (int, bool) {
	const prefix = "\x1bP>|"
	if !strings.HasPrefix(string(b), prefix) {
		return 0, false
	}
	end := indexST(b, len(prefix))
	if end < 0 {
		return 0, false
	}
	text := string(b[len(prefix):end])
	p.ID = identifyFromVersionString(text)
	return end + 2, true // +2 for ST (ESC \)
}

func indexST(b []byte, from int) int {
	for i := from; i+1 < len(b); i++ {
		if b[i] == 0x1b && b[i+1] == '\\' {
			return i
		}
	}
	return -1
}

func identifyFromVersionString(s string) TerminalID {
	ls := strings.ToLower(s)
	switch {
	case strings.Contains(ls, "kitty"):
		return Kitty
	case strings.Contains(ls, "iterm"):
		return ITerm2
	case strings.Contains(ls, "wezterm"):
		return WezTerm
	case strings.Contains(ls, "alacritty"):
		return Alacritty
	case strings.Contains(ls, "ghostty"):
		return GhosttyTerm
	case strings.Contains(ls, "xterm"):
		return XtermCompatible
	default:
		return Unknown
	}
}

// tryDA1 recognizes `CSI ? params c` (ESC [ ? 62;4;6 c). DA1 is
// authoritative for sixel: capability 4 present means Sixel (§4.6).
func tryDA1(b []byte, p *Profile) (int, bool) {
	const prefix = "\x1b[?"
	if !strings.HasPrefix(string(b), prefix) {
		return 0, false
	}
	end, params, ok := scanParamSeq(b, len(prefix), 'c')
	if !ok {
		return 0, false
	}
	for _, v := range params {
		if v == "4" {
			p.Flags |= Sixel
		}
	}
	return end, true
}

// tryDA2 recognizes `CSI > model;version;serial c` (ESC [ > 0;10;1 c).
func tryDA2(b []byte, p *Profile) (int, bool) {
	const prefix = "\x1b[>"
	if !strings.HasPrefix(string(b), prefix) {
		return 0, false
	}
	end, _, ok := scanParamSeq(b, len(prefix), 'c')
	if !ok {
		return 0, false
	}
	return end, true
}

// tryDECRQM recognizes `CSI ? mode ; value $ y` (ESC [ ? 2026 ; 1 $ y).
// An observed-set value (1 or 3) for a probed mode sets the
// corresponding capability bit.
func tryDECRQM(b []byte, p *Profile) (int, bool) {
	const prefix = "\x1b[?"
	if !strings.HasPrefix(string(b), prefix) {
		return 0, false
	}
	end, params, ok := scanParamSeq(b, len(prefix), 'y')
	if !ok || len(params) != 2 {
		return 0, false
	}
	mode, err1 := strconv.Atoi(params[0])
	valueStr := strings.TrimSuffix(params[1], "$")
	value, err2 := strconv.Atoi(valueStr)
	if err1 != nil || err2 != nil {
		return 0, false
	}
	set := value == 1 || value == 3
	if set {
		switch mode {
		case 2026:
			p.Flags |= SyncUpdate
		case 2027:
			p.Flags |= GraphemeClusters
		case 1016:
			p.Flags |= PixelMouse
		case 2004:
			p.Flags |= BracketedPaste
		}
	}
	return end, true
}

// tryWindowReport recognizes `CSI code ; height ; width t` for codes 4
// (screen pixel size) and 6 (cell pixel size).
func tryWindowReport(b []byte, p *Profile) (int, bool) {
	const prefix = "\x1b["
	if !strings.HasPrefix(string(b), prefix) {
		return 0, false
	}
	end, params, ok := scanParamSeq(b, len(prefix), 't')
	if !ok || len(params) != 3 {
		return 0, false
	}
	code, e1 := strconv.Atoi(params[0])
	h, e2 := strconv.Atoi(params[1])
	w, e3 := strconv.Atoi(params[2])
	if e1 != nil || e2 != nil || e3 != nil {
		return 0, false
	}
	switch code {
	case 4:
		p.ScreenPxH, p.ScreenPxW = h, w
	case 6:
		p.CellPixelH, p.CellPixelW = h, w
	default:
		return 0, false
	}
	return end, true
}

// scanParamSeq scans a ';'-delimited parameter list starting at offset
// from until it finds final, returning the byte offset just past
// final, the split params, and whether a terminator was found before
// the buffer ran out (a missing terminator means "not yet, try again
// once more bytes arrive" — the caller treats that as no match here
// rather than consuming a partial sequence).
func scanParamSeq(b []byte, from int, final byte) (int, []string, bool) {
	i := from
	for i < len(b) {
		c := b[i]
		if c == final {
			params := strings.Split(string(b[from:i]), ";")
			return i + 1, params, true
		}
		if !(c == ';' || c == '$' || (c >= '0' && c <= '9')) {
			return 0, nil, false
		}
		i++
	}
	return 0, nil, false
}
