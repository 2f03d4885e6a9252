// Package normalize implements a two-pass peak normalizer unit.
//
// The first pass sweeps all selected tracks to find the absolute
// peak, passing audio through unchanged. The second pass scales every
// sample so the peak lands on the target level.
package normalize

import (
	"math"

	"github.com/pipelined/render"
)

// Unit normalizes the selection to a target peak level.
type Unit struct {
	target   float64
	peak     float64
	amount   float64
	scanning bool
}

// New creates a normalizer with a target peak in the (0, 1] range.
func New(target float64) *Unit {
	return &Unit{target: target}
}

// Type returns the processor type.
func (u *Unit) Type() render.UnitType {
	return render.TypeProcessor
}

// AudioIn returns 1, channels are normalized independently.
func (u *Unit) AudioIn() int {
	return 1
}

// AudioOut returns 1.
func (u *Unit) AudioOut() int {
	return 1
}

// SetSampleRate implements render.Unit.
func (u *Unit) SetSampleRate(int) {}

// SetBlockSize accepts any block size.
func (u *Unit) SetBlockSize(max int) int {
	return max
}

// Latency returns 0.
func (u *Unit) Latency() int64 {
	return 0
}

// InitPass1 resets gathered statistics and starts the scanning sweep.
func (u *Unit) InitPass1() bool {
	u.peak = 0
	u.scanning = true
	return true
}

// InitPass2 requests the scaling sweep when the first one found any
// signal.
func (u *Unit) InitPass2() bool {
	if u.peak == 0 {
		return false
	}
	u.amount = u.target / u.peak
	u.scanning = false
	return true
}

// ProcessInitialize implements render.Unit.
func (u *Unit) ProcessInitialize(int64, []render.ChannelName) error {
	return nil
}

// ProcessBlock passes audio through gathering the peak on the first
// pass and scales it on the second.
func (u *Unit) ProcessBlock(in, out [][]float64, blockSize int) (int, error) {
	if u.scanning {
		for i := 0; i < blockSize; i++ {
			if v := math.Abs(in[0][i]); v > u.peak {
				u.peak = v
			}
			out[0][i] = in[0][i]
		}
		return blockSize, nil
	}
	for i := 0; i < blockSize; i++ {
		out[0][i] = in[0][i] * u.amount
	}
	return blockSize, nil
}

// ProcessFinalize implements render.Unit.
func (u *Unit) ProcessFinalize() error {
	return nil
}
