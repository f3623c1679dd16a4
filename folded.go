// XOR-folded filter.
//
// Positions are generated over a virtual array of Size<<Fold bytes and
// collapsed into the physical array of Size bytes. The wide positions of an
// element form a set (repeats from different rounds collapse). Folding then
// flips p>>Fold for each of them, so two wide positions sharing a physical
// bit cancel and that bit drops out of the element's signature. The
// signature is OR-ed into the array on Insert and checked on Query.
//
// A cancelled bit is neither set nor checked. An element's own Query
// therefore still passes, but its signature is shorter than K, and an
// element whose positions all cancel has an empty signature that every
// filter, even an empty one, reports as present. FoldedRates measures the
// resulting rates rather than hiding them.
package foldbloom

// Folded is a filter whose virtual address space is folded by XOR.
type Folded struct {
	bits   *BitArray
	config Config
}

// NewFolded returns an empty folded filter. config.Size is the physical
// size; config.Wide, if set, must equal Size<<Fold.
func NewFolded(config Config) (*Folded, error) {
	config, err := config.normalise(StrategyModulo)
	if err != nil {
		return nil, err
	}
	return &Folded{bits: NewBitArray(config.Size), config: config}, nil
}

// Wide returns the wide index set of elem before folding.
func (f *Folded) Wide(elem []byte) (*IndexSet, error) {
	ix, err := newIndexer(f.config, elem, f.config.wideBits())
	if err != nil {
		return nil, err
	}
	wide := NewIndexSet(f.config.K)
	for range f.config.K {
		p, err := ix.Next()
		if err != nil {
			return nil, err
		}
		wide.Set(p)
	}
	return wide, nil
}

// Signature returns the physical positions elem sets and checks.
func (f *Folded) Signature(elem []byte) ([]uint64, error) {
	wide, err := f.Wide(elem)
	if err != nil {
		return nil, err
	}
	return wide.Fold(uint(f.config.Fold)).Indices(), nil
}

// Insert adds elem to the filter.
func (f *Folded) Insert(elem []byte) error {
	return f.insert(f.bits, elem)
}

func (f *Folded) insert(dst *BitArray, elem []byte) error {
	sig, err := f.Signature(elem)
	if err != nil {
		return err
	}
	for _, p := range sig {
		dst.Set(p)
	}
	return nil
}

// Query returns true if every bit of elem's signature is set.
func (f *Folded) Query(elem []byte) (bool, error) {
	sig, err := f.Signature(elem)
	if err != nil {
		return false, err
	}
	for _, p := range sig {
		if !f.bits.Test(p) {
			return false, nil
		}
	}
	return true, nil
}

// Count returns the number of set bits.
func (f *Folded) Count() int {
	return f.bits.Count()
}

// Saturate pads the filter toward ceiling set bits. See saturate.
func (f *Folded) Saturate(ceiling int) error {
	return saturate(f.bits, f.config.XOF, ceiling, f.insert)
}

// Clone returns an independent copy sharing the configuration.
func (f *Folded) Clone() *Folded {
	return &Folded{bits: f.bits.Clone(), config: f.config}
}

// Config returns the normalised configuration.
func (f *Folded) Config() Config {
	return f.config
}

// Bytes returns a copy of the physical bit buffer.
func (f *Folded) Bytes() []byte {
	return f.bits.Bytes()
}

// Hex returns the physical bit buffer as hex.
func (f *Folded) Hex() string {
	return f.bits.Hex()
}
