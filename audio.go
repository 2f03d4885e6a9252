package render

import (
	"time"

	"github.com/pipelined/render/signal"
)

// Audio is a random-access, append-capable store of a single channel
// of samples. It is both the source the engine reads from and the
// sink processed output is written back to.
//
// Get fills dst with len(dst) samples starting at start; reads past
// the end yield silence. Set writes len(src) samples at start and may
// grow the store. Append adds samples at the end. Flush makes
// appended data readable.
type Audio interface {
	Rate() int
	MaxBlockSize() int
	Len() int64
	Get(dst []float64, start int64) error
	Set(src []float64, start int64) error
	Append(src []float64) error
	Flush() error

	// Clone returns a deep copy used as a working copy for one run.
	Clone() Audio
	// Spawn returns an empty store with the same rate and block size,
	// used to collect generated audio.
	Spawn() Audio
	// ClearAndPaste replaces the sample range [from, to) with the
	// full contents of src, preserving material outside the range.
	ClearAndPaste(from, to int64, src Audio) error
	// SyncAdjust follows a duration change of material elsewhere in
	// a sync-locked group: the range [oldEnd, newEnd) is inserted as
	// silence when growing or removed when shrinking.
	SyncAdjust(oldEnd, newEnd int64) error
}

// Selection is the half-open time range to process.
type Selection struct {
	Start time.Duration
	End   time.Duration
}

// SampleRange converts the selection into a start sample and a sample
// count at the given rate, rounding to the nearest sample.
func (s Selection) SampleRange(rate int) (start, count int64) {
	start = signal.SamplesIn(rate, s.Start)
	count = signal.SamplesIn(rate, s.End) - start
	if count < 0 {
		count = 0
	}
	return
}
