// Experiment driver.
//
// The functions here feed filters with deterministic workloads and return
// the measured outcomes as plain rows. Printing is left to the caller;
// WriteJSONL renders any row slice as one JSON object per line. Progress is
// reported through an optional slog.Logger.
package foldbloom

import (
	"encoding/binary"
	"io"
	"log/slog"
	"slices"
	"time"

	json "github.com/goccy/go-json"
)

// Workload labels. In-set and probe elements come from disjoint streams.
const (
	InFilterLabel    = "In the filter"
	NotInFilterLabel = "Not in the filter"
	PrefillLabel     = "foldbloom 2024-03-01 prefill v1"
)

// Range is an inclusive sweep Min, Min+Step, ..., up to Max.
type Range struct {
	Min  int
	Max  int
	Step int
}

// Points returns the values of the sweep.
func (r Range) Points() ([]int, error) {
	if r.Step <= 0 || r.Min < 0 || r.Max < r.Min {
		return nil, ErrBadRange
	}
	var out []int
	for n := r.Min; n <= r.Max; n += r.Step {
		out = append(out, n)
	}
	return out, nil
}

// RatePoint is one row of a folded-rate sweep.
type RatePoint struct {
	N              int `json:"n"`
	FalseNegatives int `json:"fn"`
	FalsePositives int `json:"fp"`
}

// Bucket is one row of a population-count histogram.
type Bucket struct {
	Bits   int `json:"bits"`
	Amount int `json:"amount"`
}

// Histogram is the outcome of SaturationHistogram.
type Histogram struct {
	Buckets []Bucket      `json:"buckets"`
	Elapsed time.Duration `json:"elapsed"`
}

// Density is the outcome of AverageBits.
type Density struct {
	Trials         int     `json:"trials"`
	Prefill        int     `json:"prefill"`
	MeanOnes       float64 `json:"mean_ones"`
	MeanCompressed float64 `json:"mean_compressed"`
}

// Experiment carries options shared by the drivers.
type Experiment struct {
	Logger *slog.Logger // nil for silence
	Every  int          // Log every Every trials (default 1000)
}

func (e Experiment) progress(msg string, i, total int, attrs ...any) {
	if e.Logger == nil {
		return
	}
	every := e.Every
	if every <= 0 {
		every = 1000
	}
	if i%every != 0 && i != total-1 {
		return
	}
	e.Logger.Info(msg, append([]any{"done", i + 1, "total", total}, attrs...)...)
}

// Elements returns a deterministic element stream: the unkeyed XOF of
// label under alg.
func Elements(alg int, label string) (*Stream, error) {
	return NewStream(alg, "", []byte(label))
}

// FoldedRates builds a fresh folded filter for every n in r, inserts the
// first n elements of the InFilterLabel stream, and counts how many of them
// it rejects (false negatives) and how many of probes elements from the
// NotInFilterLabel stream it accepts (false positives).
func (e Experiment) FoldedRates(config Config, r Range, probes int) ([]RatePoint, error) {
	points, err := r.Points()
	if err != nil {
		return nil, err
	}
	base, err := NewFolded(config)
	if err != nil {
		return nil, err
	}
	config = base.config

	rows := make([]RatePoint, 0, len(points))
	for i, n := range points {
		f, _ := NewFolded(config)
		in, err := Elements(config.XOF, InFilterLabel)
		if err != nil {
			return nil, err
		}
		members := make([][]byte, n)
		for j := range members {
			members[j] = in.Element()
			if err := f.Insert(members[j]); err != nil {
				return nil, err
			}
		}

		row := RatePoint{N: n}
		for _, m := range members {
			ok, err := f.Query(m)
			if err != nil {
				return nil, err
			}
			if !ok {
				row.FalseNegatives++
			}
		}

		out, err := Elements(config.XOF, NotInFilterLabel)
		if err != nil {
			return nil, err
		}
		for range probes {
			ok, err := f.Query(out.Element())
			if err != nil {
				return nil, err
			}
			if ok {
				row.FalsePositives++
			}
		}

		rows = append(rows, row)
		e.progress("folded rates", i, len(points), "n", n, "fn", row.FalseNegatives, "fp", row.FalsePositives)
	}
	return rows, nil
}

// Prefill inserts n elements of the PrefillLabel stream into f.
func Prefill(f *Filter, n int) error {
	s, err := NewStream(f.config.XOF, PrefillLabel, []byte("Hello, world!"))
	if err != nil {
		return err
	}
	for range n {
		if err := f.Insert(s.Element()); err != nil {
			return err
		}
	}
	return nil
}

// FalsePositiveRate probes f with the little-endian encodings of 0 to
// probes-1 and returns how many it accepts.
func (e Experiment) FalsePositiveRate(f *Filter, probes int) (int, error) {
	var buf [8]byte
	hits := 0
	for i := range probes {
		binary.LittleEndian.PutUint64(buf[:], uint64(i))
		ok, err := f.Query(buf[:])
		if err != nil {
			return hits, err
		}
		if ok {
			hits++
		}
		e.progress("false positives", i, probes, "hits", hits)
	}
	return hits, nil
}

// SaturationHistogram runs trials filters, each holding one element of the
// InFilterLabel stream and then saturated to ceiling, and tallies their
// final population counts.
func (e Experiment) SaturationHistogram(config Config, ceiling, trials int) (Histogram, error) {
	base, err := New(config)
	if err != nil {
		return Histogram{}, err
	}
	config = base.config
	in, err := Elements(config.XOF, InFilterLabel)
	if err != nil {
		return Histogram{}, err
	}

	tally := map[int]int{}
	start := time.Now()
	for i := range trials {
		f, _ := New(config)
		if err := f.Insert(in.Element()); err != nil {
			return Histogram{}, err
		}
		if err := f.Saturate(ceiling); err != nil {
			return Histogram{}, err
		}
		tally[f.Count()]++
		e.progress("saturation", i, trials)
	}

	h := Histogram{Elapsed: time.Since(start)}
	for bits, amount := range tally {
		h.Buckets = append(h.Buckets, Bucket{Bits: bits, Amount: amount})
	}
	slices.SortFunc(h.Buckets, func(a, b Bucket) int { return a.Bits - b.Bits })
	return h, nil
}

// AverageBits fills trials filters with prefill elements each, taken from
// consecutive stretches of the InFilterLabel stream, and averages their
// population counts and compressed sizes.
func (e Experiment) AverageBits(config Config, prefill, trials int) (Density, error) {
	if trials <= 0 || prefill < 0 {
		return Density{}, ErrBadRange
	}
	base, err := New(config)
	if err != nil {
		return Density{}, err
	}
	config = base.config
	in, err := Elements(config.XOF, InFilterLabel)
	if err != nil {
		return Density{}, err
	}

	var ones, compressed int
	for i := range trials {
		f, _ := New(config)
		for range prefill {
			if err := f.Insert(in.Element()); err != nil {
				return Density{}, err
			}
		}
		ones += f.Count()
		compressed += CompressedSize(f.bits.bytes)
		e.progress("average bits", i, trials)
	}

	return Density{
		Trials:         trials,
		Prefill:        prefill,
		MeanOnes:       float64(ones) / float64(trials),
		MeanCompressed: float64(compressed) / float64(trials),
	}, nil
}

// WriteJSONL writes each row as a single line of JSON.
func WriteJSONL[T any](w io.Writer, rows []T) error {
	enc := json.NewEncoder(w)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}
