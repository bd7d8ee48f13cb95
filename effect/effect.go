// SPDX-License-Identifier: EPL-2.0

package effect

// Format describes the float32 buffer shape an effect is locked to.
type Format struct {
	Channels   int
	SampleRate int
}

// LockParams is passed to LockForProcess: the format an effect should
// expect on that side, plus the largest frame count it will ever see
// before the next lock.
type LockParams struct {
	Format        Format
	MaxFrameCount int
}

// Buffer is one input or output buffer passed to Process.
type Buffer struct {
	Data       []float32
	Valid      bool
	FrameCount int
}

// Effect is the interface every chain slot's processor must satisfy, the
// engine-facing equivalent of FAPO. Built-in effects implement it
// directly; third-party effects are reached through the same interface,
// so the chain runner never type-switches on concrete effect kinds.
type Effect interface {
	AddRef() int32
	Release() int32

	// Initialize performs one-time configuration from an opaque blob.
	Initialize(data []byte) error

	// LockForProcess locks in the input/output formats and the largest
	// frame count that will be requested before the next lock. Called
	// once per tick even when nothing changed, so concrete effects may
	// no-op when the locked formats are unchanged.
	LockForProcess(inputs, outputs []LockParams) error
	UnlockForProcess()

	// Process fills outputs from inputs. enabled false requests a
	// bypass-with-copy rather than real processing.
	Process(inputs, outputs []Buffer, enabled bool) error

	// CalcInputFrames and CalcOutputFrames give the affine frame-count
	// mapping for effects that are not 1:1 (e.g. a fixed-latency reverb
	// tail); most effects return n unchanged.
	CalcInputFrames(outputFrames int) int
	CalcOutputFrames(inputFrames int) int

	SetParameters(blob []byte)
	GetParameters(blob []byte)
}

// Descriptor attaches one Effect to a chain slot.
type Descriptor struct {
	Effect Effect

	// OutputChannels is this effect's declared output channel count; the
	// chain computes in-place-ness by comparing it against the previous
	// slot's channel count at attach time.
	OutputChannels int

	// InitialState is the "enabled" bit Process is called with before any
	// client override.
	InitialState bool
}
