// SPDX-License-Identifier: EPL-2.0

// Package engine implements the real-time voice graph: source voices that
// decode and resample client-submitted buffers, submix voices that
// aggregate and reprocess them in processing-stage order, and a master
// voice that finalizes one period of output. Engine.Tick drives one
// complete period exactly as a platform audio callback would.
//
// The tick is single-threaded — concurrency is between client API calls
// (buffer submission, parameter changes, start/stop) running on arbitrary
// goroutines and the one goroutine that calls Tick, not within a tick
// itself. Each voice guards the fields its client API mutates with its
// own small locks. A tick takes a source voice's buffer lock on its own,
// then holds the send lock while taking the filter, effect and volume
// locks one at a time in that order; Tick never blocks on any of them for
// longer than a field read.
//
// Source voices decode through pcm.DecodeFunc, resample through a Q32.32
// fixed-point linear resampler (resample.go) whose phase accumulator is
// preserved exactly rather than recomputed in floating point, apply an
// optional filter.StateVariableFilter, run an optional effect.Chain, and
// mix into each Send's destination through a channel matrix. Submix
// voices do the same after first pulling through a pluggable, always-live
// resampler (pushresample.go) that never reports permanent end-of-stream,
// since a submix's input cache is refilled every tick rather than drained
// once.
package engine
