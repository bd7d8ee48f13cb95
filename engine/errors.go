// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

// Sentinel errors returned by the engine: two non-fatal kinds rejected at
// the API, and ErrFatal, which Tick returns after recovering a panic
// (such as a failed scratch-cache allocation) during a tick.
var (
	// ErrInvalidArgument marks a request rejected at the API boundary
	// before it touches the voice graph: a bad format, an out-of-range
	// channel count, or an unsupported sample rate.
	ErrInvalidArgument = errors.New("engine: invalid argument")

	// ErrInvalidState marks a request that is well-formed but not valid
	// given the voice's current state: submitting a buffer after
	// end-of-stream, starting an already-started voice.
	ErrInvalidState = errors.New("engine: invalid state")

	// ErrFatal marks a failure severe enough that the current tick
	// produced no output at all; the platform layer must treat the
	// output buffer as not written.
	ErrFatal = errors.New("engine: fatal")
)
