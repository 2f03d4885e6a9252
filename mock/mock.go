// Package mock provides unit and progress doubles for engine tests.
package mock

import (
	"time"

	"github.com/pipelined/render"
)

// Unit is a scriptable render.Unit. Its zero value is a mono identity
// processor with zero latency.
type Unit struct {
	UnitType render.UnitType
	NumIn    int           // audio inputs, 1 when zero
	NumOut   int           // audio outputs, 1 when zero
	Block    int           // accepted block size, the requested one when zero
	Delay    int64         // latency, reported once per initialize
	Dur      time.Duration // generated duration

	// OnBlock overrides the identity per-block transform.
	OnBlock func(in, out [][]float64, blockSize int) (int, error)
	// Pass2 is returned from InitPass2.
	Pass2 bool

	ErrorOnInitialize error
	ErrorOnBlock      error
	ErrorOnFinalize   error

	// call trace
	SampleRate  int
	Initialized int
	Finalized   int
	Blocks      int
	Pass1Calls  int
	Pass2Calls  int
	ChannelLog  [][]render.ChannelName

	delayPending int64
}

// Type returns the configured unit type.
func (u *Unit) Type() render.UnitType {
	return u.UnitType
}

// AudioIn returns the number of input channels the unit expects.
func (u *Unit) AudioIn() int {
	if u.NumIn == 0 {
		return 1
	}
	return u.NumIn
}

// AudioOut returns the number of output channels the unit produces.
func (u *Unit) AudioOut() int {
	if u.NumOut == 0 {
		return 1
	}
	return u.NumOut
}

// SetSampleRate records the rate.
func (u *Unit) SetSampleRate(rate int) {
	u.SampleRate = rate
}

// SetBlockSize accepts the configured block size bounded by max.
func (u *Unit) SetBlockSize(max int) int {
	if u.Block == 0 || u.Block > max {
		return max
	}
	return u.Block
}

// Latency reports the configured delay once per initialize.
func (u *Unit) Latency() int64 {
	d := u.delayPending
	u.delayPending = 0
	return d
}

// Duration returns the configured generated duration.
func (u *Unit) Duration() time.Duration {
	return u.Dur
}

// ProcessInitialize counts the call and records the channel map.
func (u *Unit) ProcessInitialize(totalLen int64, channels []render.ChannelName) error {
	u.Initialized++
	u.delayPending = u.Delay
	u.ChannelLog = append(u.ChannelLog, append([]render.ChannelName(nil), channels...))
	return u.ErrorOnInitialize
}

// ProcessBlock copies input to output or delegates to OnBlock.
func (u *Unit) ProcessBlock(in, out [][]float64, blockSize int) (int, error) {
	u.Blocks++
	if u.ErrorOnBlock != nil {
		return 0, u.ErrorOnBlock
	}
	if u.OnBlock != nil {
		return u.OnBlock(in, out, blockSize)
	}
	for i := range out {
		if i < len(in) {
			copy(out[i][:blockSize], in[i][:blockSize])
		} else {
			for j := 0; j < blockSize; j++ {
				out[i][j] = 0
			}
		}
	}
	return blockSize, nil
}

// ProcessFinalize counts the call.
func (u *Unit) ProcessFinalize() error {
	u.Finalized++
	return u.ErrorOnFinalize
}

// InitPass1 counts the call and always starts the first pass.
func (u *Unit) InitPass1() bool {
	u.Pass1Calls++
	return true
}

// InitPass2 counts the call and requests a second pass when Pass2 is
// set.
func (u *Unit) InitPass2() bool {
	u.Pass2Calls++
	return u.Pass2
}

// Progress is a scriptable render.Progress.
type Progress struct {
	Updates  int
	Last     float64
	CancelAt int           // interrupt on this update, 1-based, 0 never
	Signal   render.Signal // signal returned on interrupt, Cancelled when unset
}

// Update counts updates and interrupts the run when configured.
func (p *Progress) Update(index int, fraction float64, total int) render.Signal {
	p.Updates++
	p.Last = fraction
	if p.CancelAt > 0 && p.Updates >= p.CancelAt {
		if p.Signal != render.Continue {
			return p.Signal
		}
		return render.Cancelled
	}
	return render.Continue
}

// Delayed returns an OnBlock transform which copies input to output
// shifted by delay samples, the way a latency-reporting effect would.
// Pair it with Unit.Delay set to the same value.
func Delayed(numChannels, delay int) func(in, out [][]float64, blockSize int) (int, error) {
	pending := make([][]float64, numChannels)
	for i := range pending {
		pending[i] = make([]float64, delay)
	}
	return func(in, out [][]float64, blockSize int) (int, error) {
		for i := 0; i < len(out) && i < len(in); i++ {
			pending[i] = append(pending[i], in[i][:blockSize]...)
			copy(out[i][:blockSize], pending[i][:blockSize])
			pending[i] = pending[i][blockSize:]
		}
		return blockSize, nil
	}
}
