// Package termcore is the rendering and I/O core of a terminal UI
// engine: given a versioned binary drawlist describing a desired screen
// state, it maintains an in-memory cell framebuffer, then emits a
// minimal sequence of terminal control bytes (VT/ANSI, optionally
// Kitty/Sixel/iTerm2 images) to transform a terminal from its
// last-known visible state into the new state, while separately parsing
// raw input bytes back into structured events.
//
// # Architecture
//
// The package is organized the way the teacher this engine was built
// from organizes a terminal emulator — around a handful of core types —
// except the data flow runs the opposite direction: instead of decoding
// an inbound VT stream into a screen, termcore decodes an inbound
// drawlist into a screen and then *emits* a VT stream.
//
//   - [Framebuffer]: a grid of [Cell] with a clip stack and painter ops
//   - [Drawlist]: the validated, executable form of the wire format
//   - [Diff]: computes the minimal byte stream between two framebuffers
//   - [Damage]: bounded per-row span tracking feeding the diff's fast path
//
// Sibling packages cover the rest of the pipeline:
//
//   - [termcore/text]: UTF-8 decode and width policy
//   - [termcore/capability]: terminal capability probe/parse
//   - [termcore/blit]: RGBA-to-sub-cell-glyph blitters
//   - [termcore/input]: raw input byte parser
//   - [termcore/event]: event queue and batch packer
//   - [termcore/image]: Kitty/Sixel/iTerm2 byte encoders
//   - [termcore/bounded]: arena, builder, checked arithmetic, error Code
//
// # Quick start
//
//	fb := termcore.NewFramebuffer(80, 24)
//	dl, err := termcore.ValidateDrawlist(wireBytes, termcore.DefaultLimits)
//	if err != nil { ... }
//	if err := termcore.Execute(dl, fb, &cur, text.DefaultPolicy); err != nil { ... }
//
//	out := make([]byte, 64*1024)
//	n, stats, newState, err := termcore.Diff(prev, fb, caps, state,
//		desiredCursor, true, termcore.CursorSteadyBlock, dmg, rowScratch,
//		termcore.DefaultDiffOptions, out)
//
// # Thread safety
//
// The core is strictly single-threaded and cooperative (§5): every type
// in this package is a plain value/pointer with no internal locking. A
// caller that shares a [Framebuffer] or [Diff] scratch across goroutines
// must synchronize externally.
package termcore
