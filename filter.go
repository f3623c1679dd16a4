// Unfolded approximate-membership filter.
//
// Insert sets K positions derived from the element; Query checks them.
// Position generation is deterministic per element, so Query after Insert
// of the same element is always true. There is no "full" state: a crowded
// filter only answers true more often.
package foldbloom

// Filter is a bit array plus the rules for deriving K positions.
type Filter struct {
	bits   *BitArray
	config Config
}

// New returns an empty filter of config.Size bytes. Fold and Wide must be
// left at their zero values; use NewFolded for folding.
func New(config Config) (*Filter, error) {
	if config.Fold != 0 {
		return nil, ErrBadFold
	}
	config, err := config.normalise(StrategyRejection)
	if err != nil {
		return nil, err
	}
	return &Filter{bits: NewBitArray(config.Size), config: config}, nil
}

// Decode rebuilds a filter from the hex form returned by Hex.
func Decode(config Config, s string) (*Filter, error) {
	f, err := New(config)
	if err != nil {
		return nil, err
	}
	bits, err := ParseBitArray(s)
	if err != nil {
		return nil, err
	}
	if bits.Len() != f.bits.Len() {
		return nil, ErrBadSize
	}
	f.bits = bits
	return f, nil
}

// Positions returns the K positions of elem. With Distinct unset they may
// repeat.
func (f *Filter) Positions(elem []byte) ([]uint64, error) {
	ix, err := newIndexer(f.config, elem, f.bits.Bits())
	if err != nil {
		return nil, err
	}
	return Take(ix, f.config.K)
}

// Insert adds elem to the filter.
func (f *Filter) Insert(elem []byte) error {
	return f.insert(f.bits, elem)
}

func (f *Filter) insert(dst *BitArray, elem []byte) error {
	pos, err := f.Positions(elem)
	if err != nil {
		return err
	}
	for _, p := range pos {
		dst.Set(p)
	}
	return nil
}

// Query returns true if elem might be present, false if definitely absent.
func (f *Filter) Query(elem []byte) (bool, error) {
	pos, err := f.Positions(elem)
	if err != nil {
		return false, err
	}
	for _, p := range pos {
		if !f.bits.Test(p) {
			return false, nil
		}
	}
	return true, nil
}

// Count returns the number of set bits.
func (f *Filter) Count() int {
	return f.bits.Count()
}

// Saturate pads the filter toward ceiling set bits. See saturate.
func (f *Filter) Saturate(ceiling int) error {
	return saturate(f.bits, f.config.XOF, ceiling, f.insert)
}

// Clone returns an independent copy sharing the configuration.
func (f *Filter) Clone() *Filter {
	return &Filter{bits: f.bits.Clone(), config: f.config}
}

// Config returns the normalised configuration.
func (f *Filter) Config() Config {
	return f.config
}

// Bytes returns a copy of the bit buffer.
func (f *Filter) Bytes() []byte {
	return f.bits.Bytes()
}

// Hex returns the bit buffer as hex.
func (f *Filter) Hex() string {
	return f.bits.Hex()
}

// Reset clears all bits.
func (f *Filter) Reset() {
	clear(f.bits.bytes)
}
