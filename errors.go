// Package foldbloom implements approximate-membership filters over fixed
// byte buffers, and the tooling to study them empirically.
//
// A Filter sets K bit positions per element in a fixed bit array. Folded
// computes its positions against a wider virtual array and folds them down
// with XOR into a smaller physical one, trading storage for correlated
// collisions. Index positions come from one of several interchangeable
// generators (biased modulo, masked rejection, bit-budgeted rejection,
// optionally deduplicated), all driven by deterministic hash streams so that
// insertion and lookup of the same element always agree. Saturate pads a
// filter's population count toward a ceiling using a domain-separated
// stream keyed by the filter's own contents.
package foldbloom

import "errors"

// Sentinel errors for programmatic handling. Callers can use errors.Is to
// tell construction mistakes (ErrBadSize, ErrBadK, ErrFoldMismatch, ...)
// from the runtime liveness guard (ErrIterationLimit).
var (
	ErrBadSize        = errors.New("filter size must be positive")
	ErrBadK           = errors.New("invalid number of hash rounds")
	ErrBadFold        = errors.New("fold factor out of range")
	ErrFoldMismatch   = errors.New("physical size does not match folded virtual size")
	ErrBadBound       = errors.New("index bound must be positive")
	ErrBadWidth       = errors.New("bit group width out of range")
	ErrBadAlgorithm   = errors.New("unknown hash algorithm")
	ErrBadStrategy    = errors.New("unknown index strategy")
	ErrBadCeiling     = errors.New("saturation ceiling out of range")
	ErrBadRange       = errors.New("invalid experiment range")
	ErrBadHex         = errors.New("invalid hex encoding")
	ErrIterationLimit = errors.New("iteration limit reached")
)
