// Saturation: deterministic padding of a filter's population count.
//
// Candidates come from an XOF keyed by SaturationLabel over the filter's
// current bytes, so the padding depends on the filter's state but is
// reproducible. Every candidate is inserted into a scratch copy first and
// committed only if the copy stays at or below the ceiling; the first
// candidate that would overshoot ends the loop.
package foldbloom

// SaturationLabel separates the saturation stream from every other use of
// the same XOF.
const SaturationLabel = "foldbloom 2024-03-01 saturation v1"

// saturate pads bits using insert until the next candidate would push the
// population count above ceiling. The ceiling must be below the capacity,
// otherwise no candidate could ever overshoot. The count never drops and is
// bounded by the capacity, so the loop ends however many candidates in a
// row add nothing.
func saturate(bits *BitArray, alg int, ceiling int, insert func(*BitArray, []byte) error) error {
	if ceiling < 0 || uint64(ceiling) >= bits.Bits() {
		return ErrBadCeiling
	}
	stream, err := NewStream(alg, SaturationLabel, bits.bytes)
	if err != nil {
		return err
	}

	elem := make([]byte, ElementSize)
	trial := bits.Clone()
	for {
		if _, err := stream.Read(elem); err != nil {
			return err
		}
		trial.restore(bits)
		if err := insert(trial, elem); err != nil {
			return err
		}
		if trial.Count() > ceiling {
			return nil
		}
		bits.restore(trial)
	}
}
