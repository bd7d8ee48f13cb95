// SPDX-License-Identifier: EPL-2.0

// Package effect defines the audio processor interface every chain slot
// must satisfy and the Chain runner that drives a voice's effect chain
// once per tick.
//
// Effect mirrors FAudio's FAPO contract: reference-counted lifetime,
// one-time Initialize, a LockForProcess/Process/UnlockForProcess cycle
// re-run every tick so format changes are cheap to pick up, and an opaque
// parameter blob set by SetParameters and coalesced (only the latest call
// before the next tick is delivered) by the caller. Concrete effects (EQ,
// reverb, a mastering limiter) are opaque to this package; it only runs
// whatever satisfies Effect.
//
// Chain.Process implements the buffer-alternation algorithm from §4.6:
// effects that change channel count bounce output between the voice's own
// buffer and a single shared scratch buffer, so a chain of any length
// never needs more than two buffers in flight.
package effect
