// SPDX-License-Identifier: EPL-2.0

// Package queue implements the per-source-voice FIFO of client-submitted
// audio buffers: submission, flushing, and the play/loop region bookkeeping
// a source voice's decode step walks one tick at a time.
//
// A Queue owns a singly-linked list of Entry values, each wrapping one
// immutable AudioBuffer descriptor. The engine's decode-buffers routine
// consumes the head entry in place (advancing its own offset state) and
// calls Queue.Advance to drop it once fully played; client goroutines call
// Submit, Flush, and FlushAtLoopPoint concurrently with that consumption,
// so every operation here takes the queue's own mutex.
package queue
