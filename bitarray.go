// Fixed-capacity bit storage.
//
// Bit i lives in byte i/8 at bit i%8, least significant bit first. The
// buffer length is fixed at construction and never reallocated, so the hex
// form of a BitArray is a stable fixture format.
package foldbloom

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/bits"
)

// BitArray is a fixed-length bit-addressable byte buffer.
type BitArray struct {
	bytes []byte
}

// NewBitArray returns a zeroed array of n bytes.
func NewBitArray(n int) *BitArray {
	return &BitArray{bytes: make([]byte, n)}
}

// ParseBitArray decodes the hex form produced by Hex.
func ParseBitArray(s string) (*BitArray, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadHex, err)
	}
	return &BitArray{bytes: b}, nil
}

// Set sets bit i.
func (a *BitArray) Set(i uint64) {
	a.bytes[i/8] |= 1 << (i % 8)
}

// Test reports whether bit i is set.
func (a *BitArray) Test(i uint64) bool {
	return a.bytes[i/8]&(1<<(i%8)) != 0
}

// Count returns the number of set bits.
func (a *BitArray) Count() int {
	n := 0
	b := a.bytes
	for len(b) >= 8 {
		n += bits.OnesCount64(binary.LittleEndian.Uint64(b))
		b = b[8:]
	}
	for _, x := range b {
		n += bits.OnesCount8(x)
	}
	return n
}

// Len returns the length in bytes.
func (a *BitArray) Len() int {
	return len(a.bytes)
}

// Bits returns the capacity in bits.
func (a *BitArray) Bits() uint64 {
	return uint64(len(a.bytes)) * 8
}

// Bytes returns a copy of the underlying buffer.
func (a *BitArray) Bytes() []byte {
	return append([]byte(nil), a.bytes...)
}

// Clone returns an independent copy.
func (a *BitArray) Clone() *BitArray {
	return &BitArray{bytes: a.Bytes()}
}

// Hex returns the buffer as lowercase hex, byte 0 first.
func (a *BitArray) Hex() string {
	return hex.EncodeToString(a.bytes)
}

// restore overwrites a with the contents of src, which must have the same
// length. The buffer itself is kept.
func (a *BitArray) restore(src *BitArray) {
	copy(a.bytes, src.bytes)
}
