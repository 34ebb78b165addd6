// Package image encodes RGBA pixel rectangles into the three terminal
// image protocols this engine targets (Kitty graphics APC, Sixel DCS,
// iTerm2 OSC 1337), provides the 64-slot Kitty placement cache, a
// hand-rolled minimal PNG emitter for the iTerm2 path, and RGBA
// scaling to a cell-pixel target under FILL/CONTAIN/COVER fit rules
// (§4.9).
package image
