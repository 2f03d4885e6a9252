package render

import "time"

// UnitType splits effects into three categories which determine how
// audio flows through the block loop.
type UnitType int

const (
	// TypeProcessor consumes input and emits an equal, possibly
	// delayed, amount of output.
	TypeProcessor UnitType = iota
	// TypeGenerator produces output without consuming input.
	TypeGenerator
	// TypeAnalyzer reads input and emits no audio.
	TypeAnalyzer
)

// ChannelName identifies the position of a channel within a group.
type ChannelName int

const (
	// ChannelMono is the single channel of an unpaired track.
	ChannelMono ChannelName = iota
	// ChannelFrontLeft is the leading channel of a stereo pair.
	ChannelFrontLeft
	// ChannelFrontRight is the trailing channel of a stereo pair.
	ChannelFrontRight
)

// Unit is a single audio effect driven by the engine.
//
// AudioIn and AudioOut report the channel arity the unit expects and
// are fixed for the duration of one run. SetBlockSize offers the
// maximum block size the engine would like to use and returns the
// size the unit accepted; every ProcessBlock call passes at most that
// many samples. Latency returns the amount of newly reported delay in
// samples; the engine accumulates it and drains it from the output,
// so a constant-latency unit should report its delay once after
// ProcessInitialize and zero afterwards.
//
// ProcessBlock reads one block from in and writes one block to out,
// returning the number of samples emitted, which must equal blockSize.
// Any error other than a Fatal one fails the current run without
// touching the original tracks.
type Unit interface {
	Type() UnitType
	AudioIn() int
	AudioOut() int
	SetSampleRate(rate int)
	SetBlockSize(max int) int
	Latency() int64
	ProcessInitialize(totalLen int64, channels []ChannelName) error
	ProcessBlock(in, out [][]float64, blockSize int) (int, error)
	ProcessFinalize() error
}

// Passes is implemented by units which take part in the two-pass
// protocol. InitPass1 is called before the first sweep over all
// tracks and skips processing entirely when it returns false.
// InitPass2 is called after a successful first sweep; returning true
// requests a second one.
type Passes interface {
	InitPass1() bool
	InitPass2() bool
}

// Durationer is implemented by generator units which declare the
// length of produced audio. Without it a generator fills the
// selection.
type Durationer interface {
	Duration() time.Duration
}

func initPass1(u Unit) bool {
	if p, ok := u.(Passes); ok {
		return p.InitPass1()
	}
	return true
}

func initPass2(u Unit) bool {
	if p, ok := u.(Passes); ok {
		return p.InitPass2()
	}
	return false
}
