package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferSizeFor(t *testing.T) {
	tests := []struct {
		requested int
		block     int
		expected  int
	}{
		{requested: 512, block: 512, expected: 512},
		{requested: 512, block: 256, expected: 512},
		{requested: 512, block: 300, expected: 600},
		{requested: 1, block: 512, expected: 512},
		{requested: 513, block: 512, expected: 1024},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, bufferSizeFor(test.requested, test.block))
	}
}

func TestBufferResize(t *testing.T) {
	var b bufferSet
	require.True(t, b.resize(2, 2, 512, 256))
	assert.Equal(t, 1, b.allocs)
	assert.Equal(t, 512, len(b.in[0]))
	assert.Equal(t, 512+256, len(b.out[0]))

	t.Log("same dimensions do not reallocate")
	require.False(t, b.resize(2, 2, 512, 256))
	assert.Equal(t, 1, b.allocs)

	t.Log("any dimension change reallocates")
	require.True(t, b.resize(2, 2, 1024, 256))
	require.True(t, b.resize(1, 2, 1024, 256))
	require.True(t, b.resize(1, 1, 1024, 256))
	assert.Equal(t, 4, b.allocs)

	t.Log("fresh buffers hold silence")
	b.in[0][0] = 1
	require.True(t, b.resize(1, 1, 512, 256))
	assert.Equal(t, 0.0, b.in[0][0])
}

func TestBufferWindows(t *testing.T) {
	var b bufferSet
	b.resize(1, 1, 512, 256)
	b.reset()

	in := b.inWindow()
	require.Len(t, in, 1)
	assert.Len(t, in[0], 256)

	b.inPos[0] = 256
	b.outPos[0] = 256
	in[0][0] = 1
	assert.Equal(t, 1.0, b.in[0][0])
	assert.Equal(t, 0.0, b.inWindow()[0][0])
	assert.Len(t, b.outWindow()[0], 256)

	b.reset()
	assert.Equal(t, 0, b.inPos[0])
	assert.Equal(t, 0, b.outPos[0])
}

func TestLimitBlock(t *testing.T) {
	assert.Equal(t, 512, limitBlock(512, 1000))
	assert.Equal(t, 10, limitBlock(512, 10))
	assert.Equal(t, 0, limitBlock(512, 0))
}

// passUnit is a minimal identity unit for allocation accounting.
type passUnit struct{}

func (passUnit) Type() UnitType          { return TypeProcessor }
func (passUnit) AudioIn() int            { return 1 }
func (passUnit) AudioOut() int           { return 1 }
func (passUnit) SetSampleRate(rate int)  {}
func (passUnit) SetBlockSize(max int) int { return max }
func (passUnit) Latency() int64          { return 0 }

func (passUnit) ProcessInitialize(totalLen int64, channels []ChannelName) error {
	return nil
}

func (passUnit) ProcessBlock(in, out [][]float64, blockSize int) (int, error) {
	copy(out[0][:blockSize], in[0][:blockSize])
	return blockSize, nil
}

func (passUnit) ProcessFinalize() error { return nil }

func TestBufferReuseAcrossTracks(t *testing.T) {
	sel := Selection{End: time.Second}

	t.Log("identical tracks share one allocation")
	first := NewTrack("first", ChannelMono, newStubAudio(100, 16, make([]float64, 100)))
	first.Selected = true
	second := NewTrack("second", ChannelMono, newStubAudio(100, 16, make([]float64, 100)))
	second.Selected = true

	e := New(passUnit{})
	require.NoError(t, e.Run(NewTrackList(first, second), sel))
	assert.Equal(t, 1, e.buffers.allocs)

	t.Log("a track with another block size reallocates")
	third := NewTrack("third", ChannelMono, newStubAudio(100, 32, make([]float64, 100)))
	third.Selected = true
	fourth := NewTrack("fourth", ChannelMono, newStubAudio(100, 16, make([]float64, 100)))
	fourth.Selected = true

	e = New(passUnit{})
	require.NoError(t, e.Run(NewTrackList(third, fourth), sel))
	assert.Equal(t, 2, e.buffers.allocs)

	t.Log("a second run with the same shape reuses the buffers")
	fifth := NewTrack("fifth", ChannelMono, newStubAudio(100, 16, make([]float64, 100)))
	fifth.Selected = true
	require.NoError(t, e.Run(NewTrackList(fifth), sel))
	assert.Equal(t, 2, e.buffers.allocs)
}
