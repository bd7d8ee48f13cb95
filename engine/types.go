// SPDX-License-Identifier: EPL-2.0

package engine

// MaxVolumeLevel bounds every sample the mixer produces; all accumulation
// (per-send mixing, submix volume, master volume) clamps to
// ±MaxVolumeLevel.
const MaxVolumeLevel = 16777216.0

// extraDecodePadding is the number of extra frames the decode step
// produces beyond what the resampler actually needs this tick, so the
// resampler's "next sample" (s1) lookup never reads past decoded data.
// FAudio's own EXTRA_DECODE_PADDING is 2; this is widened to 8 to leave
// headroom for a resample step larger than what the reference constant
// was sized for. A larger pad is always safe, only ever wasting a few
// extra zero-filled floats.
const extraDecodePadding = 8

// LoopInfinite re-exports the buffer-queue sentinel for convenience at the
// engine API surface.
const LoopInfinite = 255

// Options configures an Engine at construction.
type Options struct {
	// UpdateSize is the number of frames produced per Tick call.
	UpdateSize int
	// MasterChannels is the master voice's output channel count.
	MasterChannels int
	// MasterSampleRate is the master voice's output sample rate.
	MasterSampleRate int

	// DefaultProcessor is an advisory processor-affinity hint for the
	// caller's mixer thread; the engine itself does not act on it.
	DefaultProcessor int
	// DebugEngine enables per-tick diagnostics capture: an accumulating
	// mono recording of Tick's output, retrievable via Engine.Diagnostics.
	DebugEngine bool
}

// SourceVoiceOptions configures a new source voice.
type SourceVoiceOptions struct {
	// MaxFreqRatio bounds how far SetFrequencyRatio may move the voice's
	// playback rate (4 when left at 0).
	MaxFreqRatio float64
	UseFilter    bool
	Callbacks    SourceCallbacks
}

// SubmixVoiceOptions configures a new submix voice.
type SubmixVoiceOptions struct {
	SampleRate int
	Channels   int
	// ProcessingStage orders submixes within a tick: a submix may only
	// send to a submix at a strictly greater stage, or to the master.
	ProcessingStage int
	UseFilter       bool
}
