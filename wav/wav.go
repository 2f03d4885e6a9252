// Package wav reads and writes render tracks as wav files.
package wav

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/pipelined/render"
	"github.com/pipelined/render/asset"
	"github.com/pipelined/render/signal"
)

// Load decodes a wav file into one track per channel. A mono file
// produces a single track, a stereo file a left/right pair. All
// loaded tracks are selected.
func Load(path string) ([]*render.Track, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("wav: %v is not a valid file", path)
	}

	format := decoder.Format()
	numChannels := format.NumChannels
	if numChannels < 1 || numChannels > 2 {
		return nil, fmt.Errorf("wav: %v channels are not supported", numChannels)
	}

	ib := &audio.IntBuffer{
		Format:         format,
		Data:           make([]int, asset.DefaultBlockSize*numChannels),
		SourceBitDepth: int(decoder.BitDepth),
	}
	channels := make([][]float64, numChannels)
	for {
		read, err := decoder.PCMBuffer(ib)
		if err != nil {
			return nil, err
		}
		if read == 0 {
			break
		}
		floats := signal.InterInt{
			Data:        ib.Data[:read],
			NumChannels: numChannels,
			BitDepth:    signal.BitDepth(decoder.BitDepth),
		}.AsFloat64()
		for i := range channels {
			channels[i] = append(channels[i], floats[i]...)
		}
	}

	rate := int(decoder.SampleRate)
	var tracks []*render.Track
	if numChannels == 1 {
		tracks = append(tracks,
			render.NewTrack(path, render.ChannelMono, asset.FromSlice(rate, channels[0])))
	} else {
		tracks = append(tracks,
			render.NewTrack(path, render.ChannelFrontLeft, asset.FromSlice(rate, channels[0])),
			render.NewTrack(path, render.ChannelFrontRight, asset.FromSlice(rate, channels[1])))
	}
	for _, t := range tracks {
		t.Selected = true
	}
	return tracks, nil
}

// Save encodes tracks into a wav file: one track writes mono, a pair
// writes stereo. Tracks of different length are padded with silence.
func Save(path string, bitDepth int, tracks ...*render.Track) error {
	if len(tracks) < 1 || len(tracks) > 2 {
		return fmt.Errorf("wav: %v tracks are not supported", len(tracks))
	}

	rate := tracks[0].Data.Rate()
	numChannels := len(tracks)

	var size int64
	for _, t := range tracks {
		if t.Data.Len() > size {
			size = t.Data.Len()
		}
	}

	floats := make(signal.Float64, numChannels)
	for i, t := range tracks {
		floats[i] = make([]float64, size)
		if err := t.Data.Get(floats[i][:t.Data.Len()], 0); err != nil {
			return err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	encoder := wav.NewEncoder(file, rate, bitDepth, numChannels, 1)
	ib := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  rate,
		},
		Data:           floats.AsInterInt(signal.BitDepth(bitDepth)),
		SourceBitDepth: bitDepth,
	}
	if err = encoder.Write(ib); err != nil {
		file.Close()
		return err
	}
	if err = encoder.Close(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
