// SPDX-License-Identifier: EPL-2.0

package engine

// destination is the narrow interface a Send's output voice must satisfy:
// enough for the mixer to find where to accumulate into and how many
// channels that destination expects. SubmixVoice and MasterVoice both
// implement it; a SourceVoice is only ever a Send source, never a
// destination.
type destination interface {
	mixStream() []float32
	outputChannels() int
	sampleRate() int
	// wantFrames is the number of destination-rate frames this
	// destination's mixStream buffer holds for the current tick. A
	// source or submix voice sending to it must resample to exactly
	// this many frames before mixing in (§4.7.1, §4.7.2).
	wantFrames() int
}

// Send routes one voice's output into a destination voice through a
// channel mix matrix. Every Send references a voice that outlives it
// (§3); callers are responsible for not releasing a destination voice
// while a Send still targets it.
type Send struct {
	Output destination
	// Matrix is outputChannels(voice) x Output.outputChannels(), row-major
	// as coefficient[destChannel*srcChannels+srcChannel] (matching
	// matrix.Default's layout).
	Matrix []float32
}
