// Small sets of distinct positions used while folding.
//
// Set is idempotent; Flip toggles. The wide index set of an element is built
// with Set, so hash rounds landing on the same wide position collapse into
// one. Folding is built with Flip, so two wide positions landing on the same
// folded position cancel. With K in the tens a linear scan beats hashing.
package foldbloom

// IndexSet is a set of positions kept in first-insertion order.
type IndexSet struct {
	idx []uint64
}

// NewIndexSet returns an empty set with room for n positions.
func NewIndexSet(n int) *IndexSet {
	return &IndexSet{idx: make([]uint64, 0, n)}
}

// Set adds p. Adding a present position is a no-op.
func (s *IndexSet) Set(p uint64) {
	if s.find(p) < 0 {
		s.idx = append(s.idx, p)
	}
}

// Flip adds p if absent and removes it if present.
func (s *IndexSet) Flip(p uint64) {
	i := s.find(p)
	if i < 0 {
		s.idx = append(s.idx, p)
		return
	}
	s.idx = append(s.idx[:i], s.idx[i+1:]...)
}

// Has reports whether p is present.
func (s *IndexSet) Has(p uint64) bool {
	return s.find(p) >= 0
}

// Len returns the number of positions.
func (s *IndexSet) Len() int {
	return len(s.idx)
}

// Indices returns the positions in set order. The slice aliases the set.
func (s *IndexSet) Indices() []uint64 {
	return s.idx
}

// Fold returns a new set holding p>>f for every p, combined with Flip.
func (s *IndexSet) Fold(f uint) *IndexSet {
	out := NewIndexSet(len(s.idx))
	for _, p := range s.idx {
		out.Flip(p >> f)
	}
	return out
}

func (s *IndexSet) find(p uint64) int {
	for i, q := range s.idx {
		if q == p {
			return i
		}
	}
	return -1
}
