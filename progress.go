package render

// Signal is the reporter's answer to a progress update.
type Signal int

const (
	// Continue keeps the run going.
	Continue Signal = iota
	// Cancelled aborts the run, originals stay untouched.
	Cancelled
	// Stopped aborts the run the same way as Cancelled.
	Stopped
	// Failed aborts the run with a failure result.
	Failed
)

// Progress receives one update per block iteration: the index of the
// channel group being processed, the completion fraction within it
// and the total group count. Updates happen synchronously on the
// calling goroutine; any value other than Continue aborts the run
// immediately.
type Progress interface {
	Update(index int, fraction float64, total int) Signal
}

type noProgress struct{}

func (noProgress) Update(int, float64, int) Signal { return Continue }
