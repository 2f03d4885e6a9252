// Package asset provides in-memory audio storage for render tracks.
package asset

import (
	"fmt"

	"github.com/pipelined/render"
)

// DefaultBlockSize is the native block granularity of new assets.
const DefaultBlockSize = 4096

// Asset is a single channel of samples held in memory. It implements
// render.Audio and backs both original tracks and working copies.
type Asset struct {
	rate      int
	blockSize int
	data      []float64
}

// New creates an empty asset.
func New(rate int) *Asset {
	return &Asset{rate: rate, blockSize: DefaultBlockSize}
}

// FromSlice creates an asset over existing samples. The slice is not
// copied.
func FromSlice(rate int, data []float64) *Asset {
	return &Asset{rate: rate, blockSize: DefaultBlockSize, data: data}
}

// SetMaxBlockSize overrides the native block granularity.
func (a *Asset) SetMaxBlockSize(size int) {
	if size > 0 {
		a.blockSize = size
	}
}

// Rate returns the sample rate of the asset.
func (a *Asset) Rate() int {
	return a.rate
}

// MaxBlockSize returns the native block granularity.
func (a *Asset) MaxBlockSize() int {
	return a.blockSize
}

// Len returns the number of stored samples.
func (a *Asset) Len() int64 {
	return int64(len(a.data))
}

// Samples returns the underlying storage without copying.
func (a *Asset) Samples() []float64 {
	return a.data
}

// Get fills dst with samples starting at start. Reads past the end
// yield silence.
func (a *Asset) Get(dst []float64, start int64) error {
	if start < 0 {
		return fmt.Errorf("asset: read at %v", start)
	}
	for i := range dst {
		if pos := start + int64(i); pos < int64(len(a.data)) {
			dst[i] = a.data[pos]
		} else {
			dst[i] = 0
		}
	}
	return nil
}

// Set writes src at start, growing the asset with silence when the
// range extends past the end.
func (a *Asset) Set(src []float64, start int64) error {
	if start < 0 {
		return fmt.Errorf("asset: write at %v", start)
	}
	if need := start + int64(len(src)); need > int64(len(a.data)) {
		grown := make([]float64, need)
		copy(grown, a.data)
		a.data = grown
	}
	copy(a.data[start:], src)
	return nil
}

// Append adds samples at the end of the asset.
func (a *Asset) Append(src []float64) error {
	a.data = append(a.data, src...)
	return nil
}

// Flush implements render.Audio. Data is always consistent in memory.
func (a *Asset) Flush() error {
	return nil
}

// Clone returns a deep copy of the asset.
func (a *Asset) Clone() render.Audio {
	data := make([]float64, len(a.data))
	copy(data, a.data)
	return &Asset{rate: a.rate, blockSize: a.blockSize, data: data}
}

// Spawn returns an empty asset with the same rate and block size.
func (a *Asset) Spawn() render.Audio {
	return &Asset{rate: a.rate, blockSize: a.blockSize}
}

// ClearAndPaste replaces the sample range [from, to) with the full
// contents of src, preserving material outside the range.
func (a *Asset) ClearAndPaste(from, to int64, src render.Audio) error {
	if from < 0 || to < from {
		return fmt.Errorf("asset: paste range [%v, %v)", from, to)
	}
	if size := int64(len(a.data)); to > size {
		to = size
	}
	if size := int64(len(a.data)); from > size {
		from = size
	}
	insert := make([]float64, src.Len())
	if err := src.Get(insert, 0); err != nil {
		return err
	}
	pasted := make([]float64, 0, from+int64(len(insert))+int64(len(a.data))-to)
	pasted = append(pasted, a.data[:from]...)
	pasted = append(pasted, insert...)
	pasted = append(pasted, a.data[to:]...)
	a.data = pasted
	return nil
}

// SyncAdjust follows a duration change elsewhere in a sync-locked
// group: [oldEnd, newEnd) is inserted as silence when growing or
// removed when shrinking, so material after the old end keeps its
// relative position.
func (a *Asset) SyncAdjust(oldEnd, newEnd int64) error {
	if oldEnd < 0 || newEnd < 0 {
		return fmt.Errorf("asset: adjust range [%v, %v)", oldEnd, newEnd)
	}
	size := int64(len(a.data))
	switch {
	case newEnd > oldEnd:
		at := oldEnd
		if at > size {
			at = size
		}
		adjusted := make([]float64, 0, size+newEnd-oldEnd)
		adjusted = append(adjusted, a.data[:at]...)
		adjusted = append(adjusted, make([]float64, newEnd-oldEnd)...)
		adjusted = append(adjusted, a.data[at:]...)
		a.data = adjusted
	case newEnd < oldEnd:
		from, to := newEnd, oldEnd
		if from > size {
			from = size
		}
		if to > size {
			to = size
		}
		a.data = append(a.data[:from], a.data[to:]...)
	}
	return nil
}
