// Hash streams for index generation and padding.
//
// Every stream is a pure function of (algorithm, label, input, draw index):
// replaying the same input reproduces the same sequence, which is what lets
// Query recompute exactly the positions Insert set. Two shapes exist. Words
// yields 64-bit words for index generation; Stream yields raw bytes for
// synthetic elements (saturation candidates, experiment workloads).
package foldbloom

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Hash algorithm constants.
const (
	AlgXXH3     = 1 // Default for index words, counter-seeded, not an XOF
	AlgBlake3   = 2 // Default XOF, label used as derive-key context
	AlgBlake2b  = 3 // BLAKE2X, label hashed into the key
	AlgShake256 = 4 // cSHAKE256, label used as customization string
)

// ElementSize is the width of synthetic elements drawn from a Stream.
const ElementSize = 32

// Words is an unbounded source of 64-bit words.
type Words interface {
	Next() uint64
}

// XXH3Words hashes one element under seeds 0, 1, 2, ... in turn.
type XXH3Words struct {
	elem []byte
	seed uint64
}

// NewXXH3Words returns the word stream for elem starting at seed 0.
func NewXXH3Words(elem []byte) *XXH3Words {
	return &XXH3Words{elem: elem}
}

// Next returns xxh3(elem, seed) and advances the seed.
func (w *XXH3Words) Next() uint64 {
	h := xxh3.HashSeed(w.elem, w.seed)
	w.seed++
	return h
}

// xofWords reads little-endian words from an extendable output.
type xofWords struct {
	r   io.Reader
	buf [8]byte
}

func (w *xofWords) Next() uint64 {
	// XOF readers never run dry for the lengths used here.
	_, _ = io.ReadFull(w.r, w.buf[:])
	return binary.LittleEndian.Uint64(w.buf[:])
}

// NewWords returns the index word stream for elem under alg. AlgXXH3 ignores
// label; the XOF algorithms use it for domain separation.
func NewWords(alg int, label string, elem []byte) (Words, error) {
	if alg == AlgXXH3 {
		return NewXXH3Words(elem), nil
	}
	r, err := xof(alg, label, elem)
	if err != nil {
		return nil, err
	}
	return &xofWords{r: r}, nil
}

// Stream is a deterministic byte stream from an extendable output function.
type Stream struct {
	r io.Reader
}

// NewStream absorbs data under label and returns the resulting output
// stream. An empty label selects the unkeyed mode of the algorithm.
func NewStream(alg int, label string, data ...[]byte) (*Stream, error) {
	r, err := xof(alg, label, data...)
	if err != nil {
		return nil, err
	}
	return &Stream{r: r}, nil
}

// Read fills p with the next len(p) bytes of output.
func (s *Stream) Read(p []byte) (int, error) {
	return io.ReadFull(s.r, p)
}

// Element returns the next ElementSize bytes as a fresh slice.
func (s *Stream) Element() []byte {
	elem := make([]byte, ElementSize)
	_, _ = io.ReadFull(s.r, elem)
	return elem
}

func xof(alg int, label string, data ...[]byte) (io.Reader, error) {
	switch alg {
	case AlgBlake3:
		h := blake3.New()
		if label != "" {
			h = blake3.NewDeriveKey(label)
		}
		for _, d := range data {
			_, _ = h.Write(d)
		}
		return h.Digest(), nil
	case AlgBlake2b:
		var key []byte
		if label != "" {
			sum := blake2b.Sum256([]byte(label))
			key = sum[:]
		}
		x, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
		if err != nil {
			return nil, fmt.Errorf("blake2b: %w", err)
		}
		for _, d := range data {
			_, _ = x.Write(d)
		}
		return x, nil
	case AlgShake256:
		h := sha3.NewCShake256(nil, []byte(label))
		for _, d := range data {
			_, _ = h.Write(d)
		}
		return h, nil
	default:
		return nil, ErrBadAlgorithm
	}
}
