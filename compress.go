// Compressed size as a density metric.
//
// A sparse filter compresses well and a saturated one hardly at all, so the
// zstd-compressed length of the bit buffer is a cheap entropy estimate that
// complements the raw population count in density reports.
package foldbloom

import (
	"github.com/klauspost/compress/zstd"
)

// Shared encoder, documented as safe for concurrent use. Construction is
// expensive, so it is built once.
var zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))

// CompressedSize returns the zstd-compressed length of data.
func CompressedSize(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	return len(zstdEncoder.EncodeAll(data, nil))
}
