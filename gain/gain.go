// Package gain implements a constant-gain processor unit.
package gain

import (
	"math"

	"github.com/pipelined/render"
)

// Unit scales every sample by a constant factor.
type Unit struct {
	amount float64
}

// New creates a gain unit. Amount is in decibels.
func New(db float64) *Unit {
	return &Unit{amount: math.Pow(10, db/20)}
}

// Type returns the processor type.
func (u *Unit) Type() render.UnitType {
	return render.TypeProcessor
}

// AudioIn returns 1, the unit processes channels independently.
func (u *Unit) AudioIn() int {
	return 1
}

// AudioOut returns 1.
func (u *Unit) AudioOut() int {
	return 1
}

// SetSampleRate implements render.Unit, gain is rate-independent.
func (u *Unit) SetSampleRate(int) {}

// SetBlockSize accepts any block size.
func (u *Unit) SetBlockSize(max int) int {
	return max
}

// Latency returns 0, the unit introduces no delay.
func (u *Unit) Latency() int64 {
	return 0
}

// ProcessInitialize implements render.Unit.
func (u *Unit) ProcessInitialize(int64, []render.ChannelName) error {
	return nil
}

// ProcessBlock scales one block.
func (u *Unit) ProcessBlock(in, out [][]float64, blockSize int) (int, error) {
	for i := 0; i < blockSize; i++ {
		out[0][i] = in[0][i] * u.amount
	}
	return blockSize, nil
}

// ProcessFinalize implements render.Unit.
func (u *Unit) ProcessFinalize() error {
	return nil
}
