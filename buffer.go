package render

import "github.com/pipelined/render/signal"

// bufferSet owns the reusable input and output memory for one run.
// Buffers survive across channel groups and are reallocated only when
// the computed buffer size changes, which amortizes allocation across
// tracks of identical rate and block size.
type bufferSet struct {
	size  int // samples per input channel
	block int // block size accepted by the unit

	in  signal.Float64 // [numIn][size]
	out signal.Float64 // [numOut][size+block]

	inPos  []int
	outPos []int

	inBlk  [][]float64
	outBlk [][]float64

	allocs int
}

// bufferSizeFor rounds the requested maximum up to a whole number of
// unit blocks.
func bufferSizeFor(requested, block int) int {
	return ((requested + block - 1) / block) * block
}

// resize reallocates the buffers for new dimensions and reports
// whether it did. Fresh buffers are zeroed. The unit may expect more
// input channels than tracks provide; channels beyond the first two
// are never written and so stay silent.
func (b *bufferSet) resize(numIn, numOut, size, block int) bool {
	if size == b.size && block == b.block &&
		b.in.NumChannels() == numIn && b.out.NumChannels() == numOut {
		return false
	}
	b.size = size
	b.block = block
	b.in = signal.EmptyFloat64(numIn, size)
	// Extra trailing block of headroom absorbs latency shifts.
	b.out = signal.EmptyFloat64(numOut, size+block)
	b.inPos = make([]int, numIn)
	b.outPos = make([]int, numOut)
	b.inBlk = make([][]float64, numIn)
	b.outBlk = make([][]float64, numOut)
	b.allocs++
	return true
}

// reset rewinds all buffer positions for a new group.
func (b *bufferSet) reset() {
	for i := range b.inPos {
		b.inPos[i] = 0
	}
	for i := range b.outPos {
		b.outPos[i] = 0
	}
}

// inWindow returns one block of every input channel at its current
// position. Slice headers are reused between calls.
func (b *bufferSet) inWindow() [][]float64 {
	for i := range b.in {
		b.inBlk[i] = b.in[i][b.inPos[i] : b.inPos[i]+b.block]
	}
	return b.inBlk
}

// outWindow returns one block of every output channel at its current
// position.
func (b *bufferSet) outWindow() [][]float64 {
	for i := range b.out {
		b.outBlk[i] = b.out[i][b.outPos[i] : b.outPos[i]+b.block]
	}
	return b.outBlk
}

// limitBlock caps a buffer size by a 64-bit remaining sample count.
func limitBlock(size int, remaining int64) int {
	if int64(size) > remaining {
		return int(remaining)
	}
	return size
}

func zero(s []float64) {
	for i := range s {
		s[i] = 0
	}
}
