// Index generation: turning a word stream into positions below a bound.
//
// Each generator is a lazy producer bound to one element. It is restartable
// per element (build a new one from a fresh word stream) but never resumed
// across elements. Callers bound the sequence themselves with Take.
package foldbloom

import (
	"iter"
	"math/bits"
)

// Index strategy constants.
const (
	StrategyModulo    = 1 // word % bound, biased unless bound is a power of two
	StrategyRejection = 2 // low log2(P) bits of each word, redraw while >= bound
	StrategyBitBudget = 3 // log2(P)-bit groups via YieldBits, redraw while >= bound
)

// MaxDraws bounds the consecutive fruitless draws a generator may make
// before reporting ErrIterationLimit.
const MaxDraws = 1 << 16

// Indexer produces positions in [0, bound).
type Indexer interface {
	Next() (uint64, error)
}

// Take draws exactly k positions from ix.
func Take(ix Indexer, k int) ([]uint64, error) {
	out := make([]uint64, 0, k)
	for range k {
		p, err := ix.Next()
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Seq adapts ix to a range-over-func sequence. The sequence is unbounded
// unless the generator fails; callers break out once they have enough.
func Seq(ix Indexer) iter.Seq2[uint64, error] {
	return func(yield func(uint64, error) bool) {
		for {
			p, err := ix.Next()
			if !yield(p, err) || err != nil {
				return
			}
		}
	}
}

type modulo struct {
	src   Words
	bound uint64
}

// NewModulo returns positions word % bound. O(1) per position, biased toward
// low values when bound is not a power of two.
func NewModulo(src Words, bound uint64) (Indexer, error) {
	if bound == 0 {
		return nil, ErrBadBound
	}
	return &modulo{src: src, bound: bound}, nil
}

func (m *modulo) Next() (uint64, error) {
	return m.src.Next() % m.bound, nil
}

type masked struct {
	src  Words
	mask uint64
}

func (m *masked) Next() uint64 {
	return m.src.Next() & m.mask
}

// rejection redraws candidates from src, each already below a power of two.
type rejection struct {
	src   Words
	bound uint64
}

func (r *rejection) Next() (uint64, error) {
	for range MaxDraws {
		if v := r.src.Next(); v < r.bound {
			return v, nil
		}
	}
	return 0, ErrIterationLimit
}

// NewRejection returns uniform positions by masking each word to the
// smallest power of two P >= bound and redrawing while the result is >= bound.
// One word is consumed per candidate.
func NewRejection(src Words, bound uint64) (Indexer, error) {
	if bound == 0 {
		return nil, ErrBadBound
	}
	return &rejection{src: &masked{src: src, mask: mask(width(bound))}, bound: bound}, nil
}

// NewBitBudget is NewRejection drawing log2(P)-bit groups through
// YieldBits, so one word serves several candidates when bound is small.
func NewBitBudget(src Words, bound uint64) (Indexer, error) {
	if bound == 0 {
		return nil, ErrBadBound
	}
	y, err := NewYieldBits(src, width(bound))
	if err != nil {
		return nil, err
	}
	return &rejection{src: y, bound: bound}, nil
}

// width returns log2 of the smallest power of two >= bound.
func width(bound uint64) uint {
	if bound <= 1 {
		return 0
	}
	return uint(bits.Len64(bound - 1))
}

type distinct struct {
	src  Indexer
	seen []uint64
}

// NewDistinct wraps src and skips positions it has already yielded. Asking
// for more distinct positions than the bound allows can only end in
// ErrIterationLimit, so callers keep the count well below the bound.
func NewDistinct(src Indexer) Indexer {
	return &distinct{src: src}
}

func (d *distinct) Next() (uint64, error) {
	for range MaxDraws {
		p, err := d.src.Next()
		if err != nil {
			return 0, err
		}
		if !d.used(p) {
			d.seen = append(d.seen, p)
			return p, nil
		}
	}
	return 0, ErrIterationLimit
}

func (d *distinct) used(p uint64) bool {
	for _, q := range d.seen {
		if q == p {
			return true
		}
	}
	return false
}

// newIndexer builds the generator a Config asks for over [0, bound).
func newIndexer(c Config, elem []byte, bound uint64) (Indexer, error) {
	words, err := NewWords(c.Hash, "", elem)
	if err != nil {
		return nil, err
	}

	var ix Indexer
	switch c.Strategy {
	case StrategyModulo:
		ix, err = NewModulo(words, bound)
	case StrategyRejection:
		ix, err = NewRejection(words, bound)
	case StrategyBitBudget:
		ix, err = NewBitBudget(words, bound)
	default:
		return nil, ErrBadStrategy
	}
	if err != nil {
		return nil, err
	}
	if c.Distinct {
		ix = NewDistinct(ix)
	}
	return ix, nil
}
