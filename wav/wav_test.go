package wav_test

import (
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipelined/render"
	"github.com/pipelined/render/asset"
	"github.com/pipelined/render/wav"
)

func TestSaveLoad(t *testing.T) {
	dir, err := ioutil.TempDir("", "wav")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	rate := 44100
	size := 1000
	left := make([]float64, size)
	right := make([]float64, size)
	for i := 0; i < size; i++ {
		left[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/float64(rate))
		right[i] = -left[i]
	}

	t.Log("stereo roundtrip")
	path := filepath.Join(dir, "stereo.wav")
	err = wav.Save(path, 16,
		render.NewTrack("left", render.ChannelFrontLeft, asset.FromSlice(rate, left)),
		render.NewTrack("right", render.ChannelFrontRight, asset.FromSlice(rate, right)))
	require.NoError(t, err)

	tracks, err := wav.Load(path)
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, render.ChannelFrontLeft, tracks[0].Channel)
	assert.Equal(t, render.ChannelFrontRight, tracks[1].Channel)
	assert.True(t, tracks[0].Selected)
	assert.Equal(t, rate, tracks[0].Data.Rate())
	require.Equal(t, int64(size), tracks[0].Data.Len())

	loaded := tracks[0].Data.(*asset.Asset).Samples()
	for i := range left {
		assert.InDelta(t, left[i], loaded[i], 1e-3, "sample %d", i)
	}

	t.Log("mono roundtrip")
	path = filepath.Join(dir, "mono.wav")
	err = wav.Save(path, 16,
		render.NewTrack("mono", render.ChannelMono, asset.FromSlice(rate, left)))
	require.NoError(t, err)

	tracks, err = wav.Load(path)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, render.ChannelMono, tracks[0].Channel)
	require.Equal(t, int64(size), tracks[0].Data.Len())
}

func TestSavePadsShorterTrack(t *testing.T) {
	dir, err := ioutil.TempDir("", "wav")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "padded.wav")
	err = wav.Save(path, 16,
		render.NewTrack("left", render.ChannelFrontLeft, asset.FromSlice(100, make([]float64, 20))),
		render.NewTrack("right", render.ChannelFrontRight, asset.FromSlice(100, make([]float64, 10))))
	require.NoError(t, err)

	tracks, err := wav.Load(path)
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, int64(20), tracks[1].Data.Len())
}

func TestLoadErrors(t *testing.T) {
	_, err := wav.Load("non-existing.wav")
	assert.Error(t, err)

	dir, err := ioutil.TempDir("", "wav")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "not-a-wav")
	require.NoError(t, ioutil.WriteFile(path, []byte("not audio"), 0644))
	_, err = wav.Load(path)
	assert.Error(t, err)
}

func TestSaveErrors(t *testing.T) {
	assert.Error(t, wav.Save("out.wav", 16))
}
