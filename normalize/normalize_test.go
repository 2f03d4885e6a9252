package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipelined/render"
	"github.com/pipelined/render/normalize"
)

func TestNormalize(t *testing.T) {
	u := normalize.New(0.9)
	assert.Equal(t, render.TypeProcessor, u.Type())

	in := [][]float64{{0.1, -0.45, 0.3}}
	out := [][]float64{make([]float64, 3)}

	require.True(t, u.InitPass1())
	processed, err := u.ProcessBlock(in, out, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, processed)
	assert.Equal(t, in[0], out[0], "first pass passes audio through")

	require.True(t, u.InitPass2())
	_, err = u.ProcessBlock(in, out, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, out[0][0], 1e-9)
	assert.InDelta(t, -0.9, out[0][1], 1e-9)
	assert.InDelta(t, 0.6, out[0][2], 1e-9)
}

func TestNormalizeSilence(t *testing.T) {
	u := normalize.New(0.9)

	in := [][]float64{{0, 0}}
	out := [][]float64{make([]float64, 2)}

	require.True(t, u.InitPass1())
	_, err := u.ProcessBlock(in, out, 2)
	require.NoError(t, err)
	assert.False(t, u.InitPass2(), "no second pass over silence")
}
