package bounded

import "math"

// AddU32 adds two uint32 values, reporting overflow instead of wrapping.
func AddU32(a, b uint32) (uint32, bool) {
	sum := a + b
	return sum, sum >= a
}

// MulU32 multiplies two uint32 values, reporting overflow instead of wrapping.
func MulU32(a, b uint32) (uint32, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := uint64(a) * uint64(b)
	if p > math.MaxUint32 {
		return 0, false
	}
	return uint32(p), true
}

// InSpan reports whether [offset, offset+length) lies fully within
// [0, parentLen), rejecting overflow in offset+length.
func InSpan(offset, length, parentLen uint32) bool {
	end, ok := AddU32(offset, length)
	if !ok {
		return false
	}
	return end <= parentLen
}

// SaturatingAddU32 adds two uint32 values, saturating at math.MaxUint32
// instead of wrapping. Used by the damage tracker's cell-count query.
func SaturatingAddU32(a, b uint32) uint32 {
	sum, ok := AddU32(a, b)
	if !ok {
		return math.MaxUint32
	}
	return sum
}

// SaturatingMulU32 multiplies two uint32 values, saturating at
// math.MaxUint32 instead of wrapping or erroring.
func SaturatingMulU32(a, b uint32) uint32 {
	p, ok := MulU32(a, b)
	if !ok {
		return math.MaxUint32
	}
	return p
}
