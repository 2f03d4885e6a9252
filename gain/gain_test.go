package gain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipelined/render"
	"github.com/pipelined/render/gain"
)

func TestGain(t *testing.T) {
	tests := []struct {
		db       float64
		in       float64
		expected float64
	}{
		{db: 0, in: 0.5, expected: 0.5},
		{db: -6.0206, in: 0.5, expected: 0.25},
		{db: 6.0206, in: 0.25, expected: 0.5},
		{db: -20, in: 1, expected: 0.1},
	}
	for _, test := range tests {
		u := gain.New(test.db)
		assert.Equal(t, render.TypeProcessor, u.Type())

		in := [][]float64{{test.in}}
		out := [][]float64{{0}}
		processed, err := u.ProcessBlock(in, out, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, processed)
		assert.InDelta(t, test.expected, out[0][0], 1e-4)
	}
}
