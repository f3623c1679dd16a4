// Saturation tests.
//
// Saturation pads a filter toward a ceiling so that filters with different
// contents look alike by density. It must never overshoot the ceiling,
// never remove bits, land within one insertion of the ceiling, and be
// reproducible for identical starting filters.
package foldbloom

import (
	"bytes"
	"errors"
	"strconv"
	"testing"
)

const (
	satSize    = 256
	satK       = 30
	satCeiling = 1019
)

func saturated(t *testing.T, cfg Config, elem string) *Filter {
	t.Helper()
	f, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := f.Insert([]byte(elem)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := f.Saturate(satCeiling); err != nil {
		t.Fatalf("Saturate: %v", err)
	}
	return f
}

// TestSaturateBounds verifies the ceiling and the lower landing bound. The
// loop stops on the first candidate that would overshoot, and a candidate
// adds at most K bits, so the result is within K-1 of the ceiling.
func TestSaturateBounds(t *testing.T) {
	for i := range 10 {
		f := saturated(t, Config{Size: satSize, K: satK}, strconv.Itoa(i))
		n := f.Count()
		if n > satCeiling {
			t.Errorf("elem %d: Count %d exceeds ceiling", i, n)
		}
		if n < satCeiling-satK+1 {
			t.Errorf("elem %d: Count %d stopped short of %d", i, n, satCeiling-satK+1)
		}
	}
}

// TestSaturateMonotone verifies that saturation only adds bits: every bit
// of the starting filter survives.
func TestSaturateMonotone(t *testing.T) {
	f, _ := New(Config{Size: satSize, K: satK})
	for i := range 5 {
		if err := f.Insert([]byte(strconv.Itoa(i))); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	before := f.Bytes()
	if err := f.Saturate(satCeiling); err != nil {
		t.Fatalf("Saturate: %v", err)
	}
	after := f.Bytes()
	for i := range before {
		if before[i]&^after[i] != 0 {
			t.Fatalf("byte %d lost bits: %08b -> %08b", i, before[i], after[i])
		}
	}
}

// TestSaturateDeterministic verifies that the padding is a function of
// the filter's contents.
func TestSaturateDeterministic(t *testing.T) {
	a := saturated(t, Config{Size: satSize, K: satK}, "same")
	b := saturated(t, Config{Size: satSize, K: satK}, "same")
	if a.Hex() != b.Hex() {
		t.Error("identical filters saturated differently")
	}
	c := saturated(t, Config{Size: satSize, K: satK}, "other")
	if a.Hex() == c.Hex() {
		t.Error("different filters saturated to the same bytes")
	}
}

// TestSaturateAboveCeiling verifies that a filter already above the
// ceiling is left untouched.
func TestSaturateAboveCeiling(t *testing.T) {
	f, _ := New(Config{Size: satSize, K: satK})
	for i := range 40 {
		if err := f.Insert([]byte(strconv.Itoa(i))); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	before := f.Bytes()
	if err := f.Saturate(100); err != nil {
		t.Fatalf("Saturate: %v", err)
	}
	if !bytes.Equal(before, f.Bytes()) {
		t.Error("saturating below the current count changed the filter")
	}
}

// TestSaturateBadCeiling verifies that unreachable ceilings are refused.
// A ceiling at or above capacity can never be overshot, so the loop would
// never end.
func TestSaturateBadCeiling(t *testing.T) {
	f, _ := New(Config{Size: 4, K: 2})
	for _, c := range []int{-1, 32, 100} {
		if err := f.Saturate(c); !errors.Is(err, ErrBadCeiling) {
			t.Errorf("ceiling %d: got %v, want ErrBadCeiling", c, err)
		}
	}
	if err := f.Saturate(31); err != nil {
		t.Errorf("ceiling 31: %v", err)
	}
}

// TestSaturateAlgorithms verifies each XOF drives saturation, and that
// they pad differently.
func TestSaturateAlgorithms(t *testing.T) {
	seen := map[string]int{}
	for _, alg := range []int{AlgBlake3, AlgBlake2b, AlgShake256} {
		f := saturated(t, Config{Size: satSize, K: satK, XOF: alg}, "x")
		if f.Count() > satCeiling {
			t.Errorf("alg %d: Count %d exceeds ceiling", alg, f.Count())
		}
		if prev, ok := seen[f.Hex()]; ok {
			t.Errorf("algs %d and %d padded identically", prev, alg)
		}
		seen[f.Hex()] = alg
	}
}

// TestSaturateFolded verifies the same ceiling discipline for a folded
// filter, whose inserts can add fewer than K bits.
func TestSaturateFolded(t *testing.T) {
	f, _ := NewFolded(Config{Size: satSize, K: satK, Fold: 1})
	if err := f.Insert([]byte("x")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	before := f.Count()
	if err := f.Saturate(satCeiling); err != nil {
		t.Fatalf("Saturate: %v", err)
	}
	if n := f.Count(); n > satCeiling || n < before {
		t.Errorf("Count %d outside [%d, %d]", n, before, satCeiling)
	}
}

// TestSaturateToCapacity verifies that a ceiling one below capacity is
// reached exactly with K=1. Near the top most candidates land on bits that
// are already set, and the loop must keep drawing until the one free bit
// is hit.
func TestSaturateToCapacity(t *testing.T) {
	for _, alg := range []int{AlgBlake3, AlgBlake2b, AlgShake256} {
		for i := range 3 {
			f, _ := New(Config{Size: 64, K: 1, XOF: alg})
			if err := f.Insert([]byte(strconv.Itoa(i))); err != nil {
				t.Fatalf("Insert: %v", err)
			}
			ceiling := int(f.bits.Bits()) - 1
			if err := f.Saturate(ceiling); err != nil {
				t.Fatalf("alg %d elem %d: Saturate(%d): %v", alg, i, ceiling, err)
			}
			if n := f.Count(); n != ceiling {
				t.Errorf("alg %d elem %d: Count %d, want %d", alg, i, n, ceiling)
			}
		}
	}
}

// TestSaturateLongDrought verifies that a run of candidates adding no bits
// does not end saturation early, however long it is. The insert function
// ignores the first 4*MaxDraws candidates and then sets the lowest free bit.
func TestSaturateLongDrought(t *testing.T) {
	bits := NewBitArray(2)
	calls := 0
	insert := func(dst *BitArray, _ []byte) error {
		calls++
		if calls <= 4*MaxDraws {
			return nil
		}
		for i := range dst.Bits() {
			if !dst.Test(i) {
				dst.Set(i)
				return nil
			}
		}
		return nil
	}
	if err := saturate(bits, AlgBlake3, 15, insert); err != nil {
		t.Fatalf("saturate: %v", err)
	}
	if n := bits.Count(); n != 15 {
		t.Errorf("Count %d, want 15", n)
	}
}
