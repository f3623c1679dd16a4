package foldbloom

import (
	"strconv"
	"testing"
)

func BenchmarkInsert(b *testing.B) {
	f, _ := New(Config{Size: 256, K: 30})
	elem := make([]byte, ElementSize)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		elem[0] = byte(i)
		f.Insert(elem)
	}
}

func BenchmarkQuery(b *testing.B) {
	f, _ := New(Config{Size: 256, K: 30})
	Prefill(f, 47)
	probe := []byte("probe")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Query(probe)
	}
}

func BenchmarkStrategies(b *testing.B) {
	for _, s := range []struct {
		name     string
		strategy int
	}{
		{"modulo", StrategyModulo},
		{"rejection", StrategyRejection},
		{"bitbudget", StrategyBitBudget},
	} {
		b.Run(s.name, func(b *testing.B) {
			f, _ := New(Config{Size: 256, K: 30, Strategy: s.strategy})
			for i := 0; i < b.N; i++ {
				f.Positions([]byte(strconv.Itoa(i)))
			}
		})
	}
}

func BenchmarkFoldedInsert(b *testing.B) {
	f, _ := NewFolded(Config{Size: 32768, K: 18, Fold: 1})
	s, _ := Elements(AlgBlake3, InFilterLabel)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Insert(s.Element())
	}
}

func BenchmarkSaturate(b *testing.B) {
	for i := 0; i < b.N; i++ {
		f, _ := New(Config{Size: 256, K: 30})
		f.Insert([]byte(strconv.Itoa(i)))
		f.Saturate(1019)
	}
}
