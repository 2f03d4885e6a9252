/*
Package render executes audio effects over track selections offline.

Concept

An effect is a Unit with a declared channel arity, a negotiated block
size and a reported processing latency. The engine drives a unit over
arbitrarily long multi-channel selections in bounded memory:

    Track - random-access sample storage, one channel per track;
    Unit - the effect, called through a narrow per-block contract;
    Engine - the block loop feeding input and collecting output.

The engine strips the latency a unit reports from the produced signal,
so committed output stays time-aligned with the input. After the input
is exhausted the unit keeps receiving silence until all delayed samples
have been collected.

Units

Units come in three types. Processors consume input and re-emit an
equal amount of output, possibly delayed. Generators produce output
without consuming input; their audio is collected into temporary
tracks and spliced into the selection when the run succeeds. Analyzers
read input and write nothing back.

A unit may implement Passes to request a second sweep over all tracks,
e.g. to apply statistics gathered during the first one, and Durationer
to declare the length of generated audio.

Execution

Run processes working copies of the selected tracks and commits them
atomically: on success every copy replaces its original in place, on
failure or cancellation the track list is left exactly as it was.

    e := render.New(unit, render.WithProgress(p))
    err := e.Run(tracks, render.Selection{Start: 0, End: 10 * time.Second})

Execution is strictly serial. Cancellation is cooperative and observed
at every block boundary through the progress reporter.
*/
package render
