package termcore

import "testing"

func TestDamageMergesContiguousRows(t *testing.T) {
	var d Damage
	storage := make([]Rect, 8)
	d.BeginFrame(storage, 80, 24)
	d.AddSpan(0, 5, 10)
	d.AddSpan(1, 5, 10)
	d.AddSpan(2, 5, 10)
	rects := d.Rects()
	if len(rects) != 1 {
		t.Fatalf("got %d rects, want 1 merged rect: %v", len(rects), rects)
	}
	want := Rect{5, 0, 10, 3}
	if rects[0] != want {
		t.Errorf("got %v, want %v", rects[0], want)
	}
}

func TestDamageKeepsDistinctXRangesSeparate(t *testing.T) {
	var d Damage
	storage := make([]Rect, 8)
	d.BeginFrame(storage, 80, 24)
	d.AddSpan(0, 5, 10)
	d.AddSpan(1, 6, 12)
	if len(d.Rects()) != 2 {
		t.Fatalf("got %d rects, want 2", len(d.Rects()))
	}
}

func TestDamageLatchesFullOnCapacityOverflow(t *testing.T) {
	var d Damage
	storage := make([]Rect, 2)
	d.BeginFrame(storage, 80, 24)
	d.AddSpan(0, 0, 5)
	d.AddSpan(2, 0, 5)
	d.AddSpan(4, 0, 5) // third non-contiguous rect overflows capacity 2
	if !d.FullFrame() {
		t.Fatalf("expected full-frame latch on overflow")
	}
	rects := d.Rects()
	if len(rects) != 1 || rects[0] != (Rect{0, 0, 80, 24}) {
		t.Errorf("got %v, want single whole-grid rect", rects)
	}
}

func TestDamageLatchesFullOnOutOfBoundsSpan(t *testing.T) {
	var d Damage
	storage := make([]Rect, 8)
	d.BeginFrame(storage, 80, 24)
	d.AddSpan(0, 70, 90) // x1 past cols
	if !d.FullFrame() {
		t.Fatalf("expected full-frame latch on out-of-bounds span")
	}
}

func TestDamageCellCountSumsRectangleAreas(t *testing.T) {
	var d Damage
	storage := make([]Rect, 8)
	d.BeginFrame(storage, 80, 24)
	d.AddSpan(0, 0, 10)  // 10 cells
	d.AddSpan(5, 20, 25) // 5 cells
	if got := d.CellCount(); got != 15 {
		t.Errorf("CellCount() = %d, want 15", got)
	}
}

func TestDamageCellCountFullFrameIsWholeGrid(t *testing.T) {
	var d Damage
	storage := make([]Rect, 8)
	d.BeginFrame(storage, 80, 24)
	d.Invalidate()
	if got := d.CellCount(); got != 80*24 {
		t.Errorf("CellCount() = %d, want %d", got, 80*24)
	}
}
