package mock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipelined/render"
	"github.com/pipelined/render/mock"
)

func TestUnitDefaults(t *testing.T) {
	u := &mock.Unit{}
	assert.Equal(t, render.TypeProcessor, u.Type())
	assert.Equal(t, 1, u.AudioIn())
	assert.Equal(t, 1, u.AudioOut())
	assert.Equal(t, 512, u.SetBlockSize(512))

	require.NoError(t, u.ProcessInitialize(0, []render.ChannelName{render.ChannelMono}))
	assert.Equal(t, int64(0), u.Latency())

	in := [][]float64{{1, 2, 3}}
	out := [][]float64{make([]float64, 3)}
	processed, err := u.ProcessBlock(in, out, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, processed)
	assert.Equal(t, in[0], out[0])
	require.NoError(t, u.ProcessFinalize())

	assert.Equal(t, 1, u.Initialized)
	assert.Equal(t, 1, u.Blocks)
	assert.Equal(t, 1, u.Finalized)
}

func TestUnitLatencyReportedOnce(t *testing.T) {
	u := &mock.Unit{Delay: 5}
	require.NoError(t, u.ProcessInitialize(0, nil))
	assert.Equal(t, int64(5), u.Latency())
	assert.Equal(t, int64(0), u.Latency())

	t.Log("reported again after the next initialize")
	require.NoError(t, u.ProcessInitialize(0, nil))
	assert.Equal(t, int64(5), u.Latency())
}

func TestUnitBlockSize(t *testing.T) {
	u := &mock.Unit{Block: 256}
	assert.Equal(t, 256, u.SetBlockSize(512))
	assert.Equal(t, 128, u.SetBlockSize(128))
}

func TestDelayed(t *testing.T) {
	onBlock := mock.Delayed(1, 2)

	in := [][]float64{{1, 2, 3, 4}}
	out := [][]float64{make([]float64, 4)}
	processed, err := onBlock(in, out, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, processed)
	assert.Equal(t, []float64{0, 0, 1, 2}, out[0])

	in[0] = []float64{5, 6, 7, 8}
	_, err = onBlock(in, out, 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4, 5, 6}, out[0])
}

func TestProgressCancellation(t *testing.T) {
	p := &mock.Progress{CancelAt: 2}
	assert.Equal(t, render.Continue, p.Update(0, 0.5, 1))
	assert.Equal(t, render.Cancelled, p.Update(0, 1, 1))
	assert.Equal(t, 2, p.Updates)
	assert.Equal(t, 1.0, p.Last)

	p = &mock.Progress{CancelAt: 1, Signal: render.Stopped}
	assert.Equal(t, render.Stopped, p.Update(0, 0.5, 1))
}
