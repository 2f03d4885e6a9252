// Command render applies an effect to a wav file offline.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pipelined/render"
	"github.com/pipelined/render/gain"
	"github.com/pipelined/render/log"
	"github.com/pipelined/render/normalize"
	"github.com/pipelined/render/signal"
	"github.com/pipelined/render/tone"
	"github.com/pipelined/render/wav"
)

var (
	in     = flag.String("in", "", "input wav file")
	out    = flag.String("out", "", "output wav file")
	effect = flag.String("effect", "gain", "effect to apply: gain, normalize or tone")
	from   = flag.Duration("from", 0, "selection start")
	to     = flag.Duration("to", 0, "selection end, the whole file when 0")
	depth  = flag.Int("depth", 16, "output bit depth")

	gainDb = flag.Float64("gain", -6, "gain amount in dB")
	peak   = flag.Float64("peak", 0.95, "normalization target peak")
	freq   = flag.Float64("freq", 440, "tone frequency in Hz")
	amp    = flag.Float64("amp", 0.8, "tone amplitude")
	dur    = flag.Duration("dur", time.Second, "tone duration")
)

func main() {
	flag.Parse()
	logger := log.GetLogger()

	if *in == "" || *out == "" {
		flag.Usage()
		os.Exit(1)
	}

	var unit render.Unit
	switch *effect {
	case "gain":
		unit = gain.New(*gainDb)
	case "normalize":
		unit = normalize.New(*peak)
	case "tone":
		unit = tone.New(*freq, *amp, *dur)
	default:
		logger.Errorf("unknown effect: %v", *effect)
		os.Exit(1)
	}

	tracks, err := wav.Load(*in)
	if err != nil {
		logger.Errorf("load %v: %v", *in, err)
		os.Exit(1)
	}
	list := render.NewTrackList(tracks...)

	sel := render.Selection{Start: *from, End: *to}
	if sel.End == 0 {
		var size int64
		for _, t := range tracks {
			if t.Data.Len() > size {
				size = t.Data.Len()
			}
		}
		sel.End = signal.DurationOf(tracks[0].Data.Rate(), size)
	}

	e := render.New(unit, render.WithProgress(&consoleProgress{}), render.WithLogger(logger))
	if err = e.Run(list, sel); err != nil {
		logger.Errorf("render: %v", err)
		os.Exit(1)
	}

	if err = wav.Save(*out, *depth, list.Tracks()...); err != nil {
		logger.Errorf("save %v: %v", *out, err)
		os.Exit(1)
	}
}

// consoleProgress prints completion percentage of the current track.
type consoleProgress struct {
	lastPercent int
}

func (p *consoleProgress) Update(index int, fraction float64, total int) render.Signal {
	if percent := int(fraction * 100); percent != p.lastPercent {
		p.lastPercent = percent
		fmt.Fprintf(os.Stderr, "\rtrack %d/%d: %3d%%", index+1, total, percent)
		if percent == 100 && index+1 == total {
			fmt.Fprintln(os.Stderr)
		}
	}
	return render.Continue
}
