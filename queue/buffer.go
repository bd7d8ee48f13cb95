// SPDX-License-Identifier: EPL-2.0

package queue

// LoopInfinite is the LoopCount sentinel meaning "loop forever"; unlike any
// finite count it is never decremented.
const LoopInfinite = 255

// Flag bits recognized on AudioBuffer.Flags.
const (
	// FlagEndOfStream marks the final buffer of a stream. When it is fully
	// consumed the source voice's fractional resample offset and total
	// sample counter are reset, and OnStreamEnd fires.
	FlagEndOfStream uint32 = 1 << iota
)

// AudioBuffer is an immutable, client-owned descriptor for one chunk of
// encoded audio data plus its play and loop regions, the engine-facing
// equivalent of FAudioBuffer.
type AudioBuffer struct {
	Flags uint32

	// Data holds the raw encoded bytes in the source voice's wire format
	// (PCM8/PCM16/PCM32F/MSADPCM); decoders index into it by frame offset.
	Data []byte

	PlayBegin  uint32
	PlayLength uint32

	LoopBegin  uint32
	LoopLength uint32
	LoopCount  uint32 // 0 = no loop, LoopInfinite = loop forever

	// Context is returned verbatim to buffer-lifecycle callbacks; the
	// engine never inspects it.
	Context interface{}
}

// EndOfStream reports whether Flags marks this the last buffer of a stream.
func (b *AudioBuffer) EndOfStream() bool {
	return b.Flags&FlagEndOfStream != 0
}

// PlayEnd is the frame offset one past the end of the play region.
func (b *AudioBuffer) PlayEnd() uint32 {
	return b.PlayBegin + b.PlayLength
}

// LoopEnd is the frame offset one past the end of the loop region.
func (b *AudioBuffer) LoopEnd() uint32 {
	return b.LoopBegin + b.LoopLength
}

// Entry owns one AudioBuffer in a source voice's queue, the equivalent of
// FAudioBufferEntry. It is engine-allocated and discarded once the buffer
// has been fully consumed or flushed.
type Entry struct {
	Buffer AudioBuffer
	next   *Entry
}
