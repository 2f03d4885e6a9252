// Package tone implements a sine generator unit.
package tone

import (
	"math"
	"time"

	"github.com/pipelined/render"
)

// Unit generates a sine wave of declared duration.
type Unit struct {
	freq  float64
	amp   float64
	dur   time.Duration
	rate  int
	phase float64
}

// New creates a generator producing dur seconds of a sine at freq Hz
// with amplitude amp.
func New(freq, amp float64, dur time.Duration) *Unit {
	return &Unit{freq: freq, amp: amp, dur: dur}
}

// Type returns the generator type.
func (u *Unit) Type() render.UnitType {
	return render.TypeGenerator
}

// AudioIn returns 1, the input is ignored.
func (u *Unit) AudioIn() int {
	return 1
}

// AudioOut returns 1.
func (u *Unit) AudioOut() int {
	return 1
}

// SetSampleRate stores the rate used to derive the phase increment.
func (u *Unit) SetSampleRate(rate int) {
	u.rate = rate
}

// SetBlockSize accepts any block size.
func (u *Unit) SetBlockSize(max int) int {
	return max
}

// Latency returns 0.
func (u *Unit) Latency() int64 {
	return 0
}

// Duration returns the declared duration of generated audio.
func (u *Unit) Duration() time.Duration {
	return u.dur
}

// ProcessInitialize rewinds the oscillator for a new channel group.
func (u *Unit) ProcessInitialize(int64, []render.ChannelName) error {
	u.phase = 0
	return nil
}

// ProcessBlock generates one block of the sine.
func (u *Unit) ProcessBlock(in, out [][]float64, blockSize int) (int, error) {
	step := 2 * math.Pi * u.freq / float64(u.rate)
	for i := 0; i < blockSize; i++ {
		out[0][i] = u.amp * math.Sin(u.phase)
		u.phase += step
	}
	return blockSize, nil
}

// ProcessFinalize implements render.Unit.
func (u *Unit) ProcessFinalize() error {
	return nil
}
