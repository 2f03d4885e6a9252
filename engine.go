package render

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pipelined/render/log"
	"github.com/pipelined/render/signal"
)

// Engine drives one unit over track selections. It owns the buffer
// memory of a run and must not be shared between concurrent runs.
type Engine struct {
	unit     Unit
	progress Progress
	log      *logrus.Logger

	pass    int
	numIn   int
	numOut  int
	buffers bufferSet

	sel Selection
	dur time.Duration
}

// New creates an engine for the unit and applies provided options.
func New(u Unit, options ...Option) *Engine {
	e := &Engine{
		unit:     u,
		progress: noProgress{},
		log:      log.GetLogger(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Pass returns the number of the pass being executed, 1 or 2.
func (e *Engine) Pass() int {
	return e.pass
}

// Run processes all selected tracks of the list over the selection.
// On success every working copy replaces its original in place. On
// any failure the list is left exactly as it was and an error is
// returned: ErrCancelled when the reporter interrupted the run, the
// unit's error as-is when it is Fatal, a wrapped recoverable error
// otherwise.
func (e *Engine) Run(tracks *TrackList, sel Selection) error {
	if e.unit == nil {
		return errors.New("render: unit is not defined")
	}
	if tracks == nil {
		return errors.New("render: track list is not defined")
	}

	ws := newWorkingSet(tracks)

	// The channel arity may depend on unit parameters, so query it
	// once per run, never per group.
	e.numIn = e.unit.AudioIn()
	e.numOut = e.unit.AudioOut()
	e.sel = sel
	e.dur = e.duration(sel)

	var err error
	e.pass = 1
	if initPass1(e.unit) {
		err = e.processPass(ws)
		if err == nil && initPass2(e.unit) {
			e.pass = 2
			err = e.processPass(ws)
		}
	}
	if err != nil {
		ws.discard()
		return err
	}
	ws.commit()
	return nil
}

// duration returns the length of generated audio: the declared unit
// duration when provided, the selection length otherwise.
func (e *Engine) duration(sel Selection) time.Duration {
	if d, ok := e.unit.(Durationer); ok && d.Duration() > 0 {
		return d.Duration()
	}
	return sel.End - sel.Start
}

// group is one record-unit of the loop: a mono track or a stereo pair
// processed jointly.
type group struct {
	count    int
	total    int
	channels []ChannelName
	left     *Track
	right    *Track

	leftStart  int64
	rightStart int64
	length     int64
	genLength  int64
}

// processPass sweeps the working list once: selected tracks are
// grouped into channel groups and processed, unselected sync-locked
// tracks follow the duration change instead.
func (e *Engine) processPass(ws *workingSet) error {
	var (
		isGenerator  = e.unit.Type() == TypeGenerator
		multichannel = e.numIn > 1
	)

	tracks := ws.tracks.Tracks()
	total := countGroups(tracks, multichannel)

	count := 0
	cleared := false // second input buffer holds silence
	for i := 0; i < len(tracks); i++ {
		left := tracks[i]
		if !left.Selected {
			if left.SyncLocked && isGenerator {
				rate := left.Data.Rate()
				oldEnd := signal.SamplesIn(rate, e.sel.End)
				newEnd := signal.SamplesIn(rate, e.sel.Start+e.dur)
				if oldEnd != newEnd {
					if err := left.Data.SyncAdjust(oldEnd, newEnd); err != nil {
						return e.failure("sync adjust", err)
					}
				}
			}
			continue
		}

		g := group{
			count:    count,
			total:    total,
			channels: []ChannelName{left.Channel},
			left:     left,
		}
		if multichannel && pairedRight(tracks, i) {
			g.right = tracks[i+1]
			g.channels = append(g.channels, g.right.Channel)
			i++
		}

		rate := left.Data.Rate()
		selStart, selLen := e.sel.SampleRange(rate)
		g.leftStart, g.rightStart = selStart, selStart
		if isGenerator {
			g.genLength = signal.SamplesIn(rate, e.dur)
		} else {
			g.length = selLen
		}

		e.unit.SetSampleRate(rate)

		// Negotiate the block size, offering twice the track native
		// block.
		requested := left.Data.MaxBlockSize() * 2
		block := e.unit.SetBlockSize(requested)
		if block <= 0 {
			block = requested
		}

		if e.buffers.resize(e.numIn, e.numOut, bufferSizeFor(requested, block), block) {
			// Fresh buffers are zeroed.
			cleared = true
		}

		// A mono track into a multichannel unit reads silence on the
		// second input.
		if g.right == nil && !cleared && e.numIn > 1 {
			zero(e.buffers.in[1])
			cleared = true
		}

		if err := e.processGroup(g); err != nil {
			return err
		}
		if g.right != nil {
			cleared = false
		}
		count++
	}

	// A generator replaces the selection with audio of its own
	// duration.
	if isGenerator {
		e.sel.End = e.sel.Start + e.dur
	}
	return nil
}

// pairedRight reports whether the track at i leads a stereo pair.
func pairedRight(tracks []*Track, i int) bool {
	return tracks[i].Channel == ChannelFrontLeft &&
		i+1 < len(tracks) &&
		tracks[i+1].Selected &&
		tracks[i+1].Channel == ChannelFrontRight
}

// countGroups returns the number of channel groups a pass visits.
func countGroups(tracks []*Track, multichannel bool) int {
	n := 0
	for i := 0; i < len(tracks); i++ {
		if !tracks[i].Selected {
			continue
		}
		if multichannel && pairedRight(tracks, i) {
			i++
		}
		n++
	}
	return n
}

// processGroup initializes the unit for one channel group, runs the
// block loop and finalizes the unit regardless of the loop result.
func (e *Engine) processGroup(g group) error {
	totalLen := g.length
	if e.unit.Type() == TypeGenerator {
		totalLen = g.genLength
	}
	if err := e.unit.ProcessInitialize(totalLen, g.channels); err != nil {
		return e.failure("process initialize", err)
	}
	err := e.processLoop(g)
	if ferr := e.unit.ProcessFinalize(); ferr != nil && err == nil {
		err = e.failure("process finalize", ferr)
	}
	return err
}

// processLoop is the block loop of one channel group.
//
// Each input block is passed to the unit along with an output
// location inside a much larger buffer, which keeps the number of
// sink writes low. Upon return the output samples are moved to the
// left by the current latency, effectively removing the delay the
// unit introduced. When the input is exhausted the unit keeps
// receiving silence until it has returned all delayed samples.
func (e *Engine) processLoop(g group) error {
	var (
		isGenerator = e.unit.Type() == TypeGenerator
		isProcessor = e.unit.Type() == TypeProcessor
		numChannels = len(g.channels)
		b           = &e.buffers
	)

	inLeftPos, inRightPos := g.leftStart, g.rightStart
	outLeftPos, outRightPos := g.leftStart, g.rightStart

	inputRemaining := g.length
	var curDelay, delayRemaining int64
	inputCnt, outputCnt := 0, 0
	cleared := false

	chans := numChannels
	if e.numOut < chans {
		chans = e.numOut
	}

	var genLeft, genRight Audio
	if isGenerator {
		delayRemaining = g.genLength
		cleared = true
		genLeft = g.left.Data.Spawn()
		if g.right != nil && e.numOut > 1 {
			genRight = g.right.Data.Spawn()
		}
	}

	b.reset()

	for inputRemaining != 0 || delayRemaining != 0 {
		curBlock := 0
		if inputRemaining != 0 {
			if inputCnt == 0 {
				inputCnt = limitBlock(b.size, inputRemaining)
				if err := g.left.Data.Get(b.in[0][:inputCnt], inLeftPos); err != nil {
					return e.failure("read left", err)
				}
				if g.right != nil {
					if err := g.right.Data.Get(b.in[1][:inputCnt], inRightPos); err != nil {
						return e.failure("read right", err)
					}
				}
				for i := 0; i < numChannels; i++ {
					b.inPos[i] = 0
				}
			}

			curBlock = b.block
			if int64(curBlock) > inputRemaining {
				// The last partial block, pad it with silence up to
				// a whole block.
				curBlock = int(inputRemaining)
				inputRemaining = 0
				pad := b.block - curBlock
				for i := 0; i < numChannels; i++ {
					zero(b.in[i][b.inPos[i]+curBlock : b.inPos[i]+b.block])
				}
				// The padded region can drain pending latency within
				// the same call.
				if delayRemaining != 0 {
					if int64(pad) > delayRemaining {
						pad = int(delayRemaining)
					}
					delayRemaining -= int64(pad)
					curBlock += pad
				}
			}
		} else if delayRemaining != 0 {
			curBlock = limitBlock(b.block, delayRemaining)
			delayRemaining -= int64(curBlock)

			// Only silence goes in from now on.
			if !cleared {
				for i := 0; i < numChannels; i++ {
					b.inPos[i] = 0
					zero(b.in[i][:b.block])
				}
				cleared = true
			}
		}

		processed, err := e.unit.ProcessBlock(b.inWindow(), b.outWindow(), curBlock)
		if err != nil {
			if IsFatal(err) {
				return err
			}
			return fmt.Errorf("render: process block: %w", err)
		}
		if processed != curBlock {
			e.log.Warnf("render: unit emitted %v of %v samples", processed, curBlock)
		}

		if inputRemaining != 0 {
			for i := 0; i < numChannels; i++ {
				b.inPos[i] += curBlock
			}
			inputRemaining -= int64(curBlock)
			inputCnt -= curBlock
		}

		// During the drain phase these only feed the progress report.
		inLeftPos += int64(curBlock)
		inRightPos += int64(curBlock)

		if isProcessor {
			delay := e.unit.Latency()
			curDelay += delay
			delayRemaining += delay

			if curDelay >= int64(curBlock) {
				// The whole block is latency, drop it.
				curDelay -= int64(curBlock)
				curBlock = 0
			} else if curDelay > 0 {
				// Latency sits at the head of the block; strip it by
				// shifting the fresh samples left.
				d := int(curDelay)
				curBlock -= d
				for i := 0; i < chans; i++ {
					pos := b.outPos[i]
					copy(b.out[i][pos:pos+curBlock], b.out[i][pos+d:pos+d+curBlock])
				}
				curDelay = 0
			}
		}

		outputCnt += curBlock
		if outputCnt < b.size {
			for i := 0; i < chans; i++ {
				b.outPos[i] += curBlock
			}
		} else {
			if err := e.flushOutput(g, genLeft, genRight, chans, outputCnt, outLeftPos, outRightPos); err != nil {
				return err
			}
			for i := 0; i < chans; i++ {
				b.outPos[i] = 0
			}
			outLeftPos += int64(outputCnt)
			outRightPos += int64(outputCnt)
			outputCnt = 0
		}

		den := g.length
		if isGenerator {
			den = g.genLength
		}
		fraction := 1.0
		if den > 0 {
			fraction = float64(inLeftPos-g.leftStart) / float64(den)
			if fraction > 1 {
				fraction = 1
			}
		}
		switch s := e.progress.Update(g.count, fraction, g.total); s {
		case Continue:
		case Failed:
			return errors.New("render: progress reported failure")
		default:
			return ErrCancelled
		}
	}

	// Put any remaining output.
	if outputCnt > 0 {
		if err := e.flushOutput(g, genLeft, genRight, chans, outputCnt, outLeftPos, outRightPos); err != nil {
			return err
		}
	}

	// Splice generated audio into the selected range of the original
	// material, preserving everything outside it.
	if isGenerator {
		rate := g.left.Data.Rate()
		from := signal.SamplesIn(rate, e.sel.Start)
		to := signal.SamplesIn(rate, e.sel.End)
		if err := genLeft.Flush(); err != nil {
			return e.failure("flush generated", err)
		}
		if err := g.left.Data.ClearAndPaste(from, to, genLeft); err != nil {
			return e.failure("paste generated", err)
		}
		if genRight != nil {
			if err := genRight.Flush(); err != nil {
				return e.failure("flush generated", err)
			}
			if err := g.right.Data.ClearAndPaste(from, to, genRight); err != nil {
				return e.failure("paste generated", err)
			}
		}
	}
	return nil
}

// flushOutput writes collected output to its destination: processors
// overwrite the working tracks at the current absolute position,
// generators append to the temporary tracks, analyzers emit nothing.
func (e *Engine) flushOutput(g group, genLeft, genRight Audio, chans, cnt int, outLeftPos, outRightPos int64) error {
	b := &e.buffers
	switch e.unit.Type() {
	case TypeProcessor:
		if err := g.left.Data.Set(b.out[0][:cnt], outLeftPos); err != nil {
			return e.failure("write left", err)
		}
		if g.right != nil {
			// A mono unit on a stereo pair duplicates its single
			// output channel.
			src := b.out[0]
			if chans >= 2 {
				src = b.out[1]
			}
			if err := g.right.Data.Set(src[:cnt], outRightPos); err != nil {
				return e.failure("write right", err)
			}
		}
	case TypeGenerator:
		if err := genLeft.Append(b.out[0][:cnt]); err != nil {
			return e.failure("append generated", err)
		}
		if genRight != nil {
			if err := genRight.Append(b.out[1][:cnt]); err != nil {
				return e.failure("append generated", err)
			}
		}
	}
	return nil
}

// failure converts an error into a recoverable run failure unless it
// is fatal or a cancellation.
func (e *Engine) failure(op string, err error) error {
	if IsFatal(err) || errors.Is(err, ErrCancelled) {
		return err
	}
	return fmt.Errorf("render: %s: %w", op, err)
}
