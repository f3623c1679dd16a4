// Bit-budgeted slicing of a word stream.
//
// YieldBits cuts each 64-bit word into consecutive groups of a fixed width,
// least significant bits first. When the remainder of the current word is
// too short for another group it is discarded and a fresh word is fetched;
// bits are never carried across words. Test vectors depend on this exact
// policy.
package foldbloom

// WordBits is the width of the words YieldBits consumes.
const WordBits = 64

// YieldBits re-slices a Words stream into smaller bit groups.
type YieldBits struct {
	src  Words
	bits uint
	used uint
	last uint64
	warm bool
}

// NewYieldBits returns groups of width bits taken from src. Width zero is
// allowed and always yields 0.
func NewYieldBits(src Words, bits uint) (*YieldBits, error) {
	if bits > WordBits {
		return nil, ErrBadWidth
	}
	return &YieldBits{src: src, bits: bits}, nil
}

// Next returns the next group.
func (y *YieldBits) Next() uint64 {
	switch {
	case y.used+y.bits > WordBits:
		y.used = 0
		y.last = y.src.Next()
	case !y.warm:
		y.last = y.src.Next()
	}
	y.warm = true

	g := (y.last >> y.used) & mask(y.bits)
	y.used += y.bits
	return g
}

// mask returns the low n bits set. A shift by 64 yields 0 in Go, so the
// full-width case wraps to all ones.
func mask(n uint) uint64 {
	return uint64(1)<<n - 1
}
