// Filter configuration.
//
// Sizing is runtime configuration validated once at construction. The zero
// value of every optional field selects a default, as Config{Size: s, K: k}
// is the common case.
package foldbloom

import "math"

// MaxFold is the largest supported fold factor.
const MaxFold = 32

// Config holds filter configuration options.
type Config struct {
	Size     int  // Physical size in bytes (S), required
	K        int  // Hash rounds per element, required
	Fold     int  // Address bits folded away (F), Folded only
	Wide     int  // Virtual size in bytes (default Size << Fold), Folded only
	Strategy int  // Index strategy (default Rejection for Filter, Modulo for Folded)
	Distinct bool // Skip repeated positions within one element
	Hash     int  // Index word source (default AlgXXH3)
	XOF      int  // Saturation stream (default AlgBlake3)
}

// normalise applies defaults and checks every sizing invariant. strategy is
// the default index strategy of the caller.
func (c Config) normalise(strategy int) (Config, error) {
	if c.Size <= 0 {
		return c, ErrBadSize
	}
	if c.K <= 0 {
		return c, ErrBadK
	}
	if c.Fold < 0 || c.Fold > MaxFold {
		return c, ErrBadFold
	}
	if c.Size > math.MaxInt>>(c.Fold+3) {
		return c, ErrBadSize
	}
	if c.Wide == 0 {
		c.Wide = c.Size << c.Fold
	}
	if c.Size != c.Wide>>c.Fold || c.Wide != c.Size<<c.Fold {
		return c, ErrFoldMismatch
	}

	if c.Strategy == 0 {
		c.Strategy = strategy
	}
	if c.Strategy < StrategyModulo || c.Strategy > StrategyBitBudget {
		return c, ErrBadStrategy
	}
	if c.Hash == 0 {
		c.Hash = AlgXXH3
	}
	if c.Hash < AlgXXH3 || c.Hash > AlgShake256 {
		return c, ErrBadAlgorithm
	}
	if c.XOF == 0 {
		c.XOF = AlgBlake3
	}
	if c.XOF < AlgBlake3 || c.XOF > AlgShake256 {
		return c, ErrBadAlgorithm
	}

	if c.Distinct && uint64(c.K)*2 > c.wideBits() {
		return c, ErrBadK
	}
	return c, nil
}

// wideBits is the bound positions are generated against.
func (c Config) wideBits() uint64 {
	return uint64(c.Wide) * 8
}
