// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"sync"

	"github.com/ik5/xaengine/effect"
	"github.com/ik5/xaengine/filter"
	"github.com/ik5/xaengine/pcm"
	"github.com/ik5/xaengine/queue"
)

// SourceVoice decodes, resamples, filters, effect-processes and mixes one
// client buffer queue into its sends every tick (§4.7.1).
type SourceVoice struct {
	engine *Engine

	format   pcm.Format
	decodeFn pcm.DecodeFunc

	maxFreqRatio float64

	bufferMu        sync.Mutex
	queue           queue.Queue
	curBufferOffset uint32
	fracOffset      uint64 // Q32.32, persists across ticks and buffers (cleared on end-of-stream)
	totalSamples    uint64
	streamEnded     bool

	activeMu sync.Mutex
	active   bool

	freqMu            sync.Mutex
	freqRatio         float64
	resampleFreqRatio float64
	resampleStep      uint64

	sendMu sync.Mutex
	sends  []*Send

	volumeMu      sync.Mutex
	volume        float32
	channelVolume []float32

	filterMu    sync.Mutex
	useFilter   bool
	filterOn    bool
	stateFilter *filter.StateVariableFilter

	effectMu sync.Mutex
	effects  *effect.Chain

	callbacks SourceCallbacks
}

func newSourceVoice(e *Engine, format pcm.Format, opts SourceVoiceOptions) *SourceVoice {
	sv := &SourceVoice{
		engine:        e,
		format:        format,
		decodeFn:      pcm.DecoderFor(format.Tag),
		maxFreqRatio:  opts.MaxFreqRatio,
		freqRatio:     1.0,
		volume:        1.0,
		channelVolume: onesFloat32(format.Channels),
		useFilter:     opts.UseFilter,
		callbacks:     opts.Callbacks,
	}
	if sv.maxFreqRatio == 0 {
		sv.maxFreqRatio = 4.0
	}
	if sv.useFilter {
		sv.stateFilter = &filter.StateVariableFilter{}
		sv.stateFilter.SetChannels(format.Channels)
	}
	sv.effects = effect.NewChain(format.Channels, format.SampleRate)
	return sv
}

func onesFloat32(n int) []float32 {
	v := make([]float32, n)
	for i := range v {
		v[i] = 1
	}
	return v
}

// resizeChannelVolume returns a channel-volume vector of length n, reusing
// old's values where they still apply and defaulting any new trailing
// channels to unity gain.
func resizeChannelVolume(old []float32, n int) []float32 {
	if len(old) == n {
		return old
	}
	v := onesFloat32(n)
	copy(v, old)
	return v
}

// SubmitBuffer appends buf to the voice's queue. Submitting to a voice
// whose most recently submitted buffer was marked end-of-stream is
// invalid: the stream has already been declared finished.
func (sv *SourceVoice) SubmitBuffer(buf queue.AudioBuffer) error {
	sv.bufferMu.Lock()
	if sv.streamEnded {
		sv.bufferMu.Unlock()
		return ErrInvalidState
	}
	if buf.EndOfStream() {
		sv.streamEnded = true
	}
	sv.bufferMu.Unlock()

	sv.queue.Submit(buf)
	return nil
}

// Flush drops queued buffers behind the currently-playing one.
func (sv *SourceVoice) Flush() {
	sv.queue.Flush()
	sv.bufferMu.Lock()
	sv.streamEnded = false
	sv.bufferMu.Unlock()
}

// FlushAtLoopPoint drops queued buffers behind the currently-playing one
// and clears its remaining loop count.
func (sv *SourceVoice) FlushAtLoopPoint() {
	sv.queue.FlushAtLoopPoint()
	sv.bufferMu.Lock()
	sv.streamEnded = false
	sv.bufferMu.Unlock()
}

// Start activates the voice. Starting an already-active voice is invalid.
func (sv *SourceVoice) Start() error {
	sv.activeMu.Lock()
	defer sv.activeMu.Unlock()
	if sv.active {
		return ErrInvalidState
	}
	sv.active = true
	return nil
}

// Stop deactivates the voice; it contributes nothing to sends until
// Start is called again.
func (sv *SourceVoice) Stop() {
	sv.activeMu.Lock()
	sv.active = false
	sv.activeMu.Unlock()
}

func (sv *SourceVoice) isActive() bool {
	sv.activeMu.Lock()
	defer sv.activeMu.Unlock()
	return sv.active
}

// SetFrequencyRatio changes the voice's playback rate relative to its
// source sample rate. ratio must be within [1/maxFreqRatio, maxFreqRatio].
func (sv *SourceVoice) SetFrequencyRatio(ratio float64) error {
	if ratio <= 0 || ratio > sv.maxFreqRatio || ratio < 1/sv.maxFreqRatio {
		return ErrInvalidArgument
	}
	sv.freqMu.Lock()
	sv.freqRatio = ratio
	sv.freqMu.Unlock()
	return nil
}

// SetVolume sets the voice's overall volume scalar.
func (sv *SourceVoice) SetVolume(v float32) {
	sv.volumeMu.Lock()
	sv.volume = v
	sv.volumeMu.Unlock()
}

// SetChannelVolumes sets the per-output-channel volume vector; len(vols)
// must equal the voice's current effective output channel count (the
// source format's channel count, or the effect chain's final output
// channel count if the chain changes it).
func (sv *SourceVoice) SetChannelVolumes(vols []float32) error {
	sv.effectMu.Lock()
	outCh := sv.effects.OutputChannels()
	sv.effectMu.Unlock()
	if len(vols) != outCh {
		return ErrInvalidArgument
	}
	sv.volumeMu.Lock()
	copy(sv.channelVolume, vols)
	sv.volumeMu.Unlock()
	return nil
}

// SetFilterParameters configures the voice's state-variable filter and
// enables it. The voice must have been created with UseFilter.
func (sv *SourceVoice) SetFilterParameters(p filter.Parameters) error {
	if !sv.useFilter {
		return ErrInvalidState
	}
	sv.filterMu.Lock()
	sv.stateFilter.Params = p
	sv.filterOn = true
	sv.filterMu.Unlock()
	return nil
}

// AddSend attaches a new destination to the voice.
func (sv *SourceVoice) AddSend(send *Send) {
	sv.sendMu.Lock()
	sv.sends = append(sv.sends, send)
	sv.sendMu.Unlock()
}

// AddEffect appends an effect to the voice's effect chain. If this changes
// the chain's final output channel count, the channel-volume vector is
// resized to match, defaulting any new channels to unity gain.
func (sv *SourceVoice) AddEffect(desc effect.Descriptor) {
	sv.effectMu.Lock()
	sv.effects.AddEffect(desc)
	outCh := sv.effects.OutputChannels()
	sv.effectMu.Unlock()

	sv.volumeMu.Lock()
	sv.channelVolume = resizeChannelVolume(sv.channelVolume, outCh)
	sv.volumeMu.Unlock()
}

// SetEffectParameters queues a parameter update for chain slot i,
// delivered on the next tick.
func (sv *SourceVoice) SetEffectParameters(i int, blob []byte) {
	sv.effectMu.Lock()
	sv.effects.SetParameters(i, blob)
	sv.effectMu.Unlock()
}

// decodeBuffers fills dst (sized for exactly toDecode+extraDecodePadding
// frames of format.Channels each) with decoded samples, advancing the
// queue across buffer and loop boundaries exactly as the platform
// engine's decode-buffers subroutine does (§4.7.1, §4.3). It returns the
// number of real (non-padding) frames written before the queue ran dry.
func (sv *SourceVoice) decodeBuffers(dst []float32, toDecode uint64) uint64 {
	channels := uint64(sv.format.Channels)
	var decoded uint64

	entry := sv.queue.Head()
	for decoded < toDecode && entry != nil {
		buf := &entry.Buffer
		decoding := toDecode - decoded

		if sv.curBufferOffset == buf.PlayBegin && sv.callbacks.OnBufferStart != nil {
			sv.callbacks.OnBufferStart(buf.Context)
		}

		var end uint32
		if buf.LoopCount > 0 {
			end = buf.LoopEnd()
		} else {
			end = buf.PlayEnd()
		}
		endRead := uint64(end) - uint64(sv.curBufferOffset)
		if endRead > decoding {
			endRead = decoding
		}

		sv.decodeFn(buf.Data, int(sv.curBufferOffset), dst[decoded*channels:], int(endRead), sv.format)

		sv.curBufferOffset += uint32(endRead)
		sv.totalSamples += endRead

		if sv.curBufferOffset == end {
			if buf.LoopCount > 0 {
				sv.curBufferOffset = buf.LoopBegin
				if buf.LoopCount != queue.LoopInfinite {
					buf.LoopCount--
				}
				if sv.callbacks.OnLoopEnd != nil {
					sv.callbacks.OnLoopEnd(buf.Context)
				}
			} else {
				eos := buf.EndOfStream()
				ctx := buf.Context
				if eos {
					sv.fracOffset = 0
					sv.totalSamples = 0
				}

				sv.queue.Advance()
				entry = sv.queue.Head()
				if entry != nil {
					sv.curBufferOffset = entry.Buffer.PlayBegin
				} else {
					sv.curBufferOffset = 0
				}

				if sv.callbacks.OnBufferEnd != nil {
					sv.callbacks.OnBufferEnd(ctx)
				}
				if eos && sv.callbacks.OnStreamEnd != nil {
					sv.callbacks.OnStreamEnd()
				}
			}
		}

		decoded += endRead
	}

	if entry != nil {
		buf := &entry.Buffer
		var end uint32
		if buf.LoopCount > 0 {
			end = buf.LoopEnd()
		} else {
			end = buf.PlayEnd()
		}
		endRead := uint64(end) - uint64(sv.curBufferOffset)
		if endRead > extraDecodePadding {
			endRead = extraDecodePadding
		}

		sv.decodeFn(buf.Data, int(sv.curBufferOffset), dst[decoded*channels:], int(endRead), sv.format)

		if endRead < extraDecodePadding {
			zeroFrom := (decoded + endRead) * channels
			zeroLen := (extraDecodePadding - endRead) * channels
			zeroRange(dst, zeroFrom, zeroLen)
		}
	} else {
		zeroRange(dst, decoded*channels, extraDecodePadding*channels)
	}

	return decoded
}

func zeroRange(buf []float32, from, length uint64) {
	end := from + length
	if end > uint64(len(buf)) {
		end = uint64(len(buf))
	}
	for i := from; i < end; i++ {
		buf[i] = 0
	}
}

// update runs one tick's worth of decode/resample/filter/effect/mix for
// this voice (§4.7.1). The number of destination-rate frames produced is
// taken from the voice's first send, since a submix destination running
// at a rate other than the master's expects its own frame count, not the
// engine's period size.
func (sv *SourceVoice) update() {
	channels := sv.format.Channels
	resampleSamples := sv.firstSendFrames()

	sv.freqMu.Lock()
	freqRatio := sv.freqRatio
	if freqRatio != sv.resampleFreqRatio {
		outputRate := sv.firstSendRate()
		sv.resampleStep = computeResampleStep(freqRatio, float64(sv.format.SampleRate), float64(outputRate))
		sv.resampleFreqRatio = freqRatio
	}
	step := sv.resampleStep
	sv.freqMu.Unlock()

	if sv.callbacks.OnVoiceProcessingPassStart != nil {
		sv.callbacks.OnVoiceProcessingPassStart(resampleSamples * 2)
	}

	sv.bufferMu.Lock()
	if sv.queue.Head() == nil {
		sv.bufferMu.Unlock()
		if sv.callbacks.OnVoiceProcessingPassEnd != nil {
			sv.callbacks.OnVoiceProcessingPassEnd()
		}
		return
	}

	resampleCache := sv.engine.resizeResampleCache(resampleSamples * channels)
	mixed := 0

	for mixed < resampleSamples && sv.queue.Head() != nil {
		toDecode := (uint64(resampleSamples-mixed) * step) + sv.fracOffset + fixedFractionMask
		toDecode >>= fixedPrecision

		decodeCache := sv.engine.resizeDecodeCache(int(toDecode+extraDecodePadding) * channels)
		sv.decodeBuffers(decodeCache, toDecode)

		toResample := (toDecode << fixedPrecision) - sv.fracOffset
		toResample /= step
		if toResample > uint64(resampleSamples-mixed) {
			toResample = uint64(resampleSamples - mixed)
		}

		dst := resampleCache[mixed*channels:]
		if step == fixedOne {
			copy(dst[:toResample*uint64(channels)], decodeCache)
		} else {
			resampleLinear(dst, decodeCache, channels, toResample, sv.fracOffset, step)
		}

		if sv.queue.Head() != nil {
			sv.fracOffset += toResample * step
			sv.fracOffset &= fixedFractionMask
		} else {
			sv.fracOffset = 0
			sv.curBufferOffset = 0
		}

		mixed += int(toResample)
	}
	sv.bufferMu.Unlock()

	if mixed == 0 {
		if sv.callbacks.OnVoiceProcessingPassEnd != nil {
			sv.callbacks.OnVoiceProcessingPassEnd()
		}
		return
	}

	sv.sendMu.Lock()
	defer sv.sendMu.Unlock()
	if len(sv.sends) == 0 {
		if sv.callbacks.OnVoiceProcessingPassEnd != nil {
			sv.callbacks.OnVoiceProcessingPassEnd()
		}
		return
	}

	sv.filterMu.Lock()
	if sv.useFilter && sv.filterOn {
		sv.stateFilter.Process(resampleCache[:mixed*channels], mixed)
	}
	sv.filterMu.Unlock()

	effectOut := resampleCache[:mixed*channels]
	outCh := channels
	sv.effectMu.Lock()
	if sv.effects.Len() > 0 {
		effectOut, outCh = sv.effects.Process(effectOut, mixed)
	}
	sv.effectMu.Unlock()

	sv.volumeMu.Lock()
	mixSends(sv.sends, effectOut, mixed, outCh, sv.channelVolume, sv.volume)
	sv.volumeMu.Unlock()

	if sv.callbacks.OnVoiceProcessingPassEnd != nil {
		sv.callbacks.OnVoiceProcessingPassEnd()
	}
}

func (sv *SourceVoice) firstSendRate() int {
	sv.sendMu.Lock()
	defer sv.sendMu.Unlock()
	if len(sv.sends) == 0 {
		return sv.engine.masterSampleRate
	}
	return sv.sends[0].Output.sampleRate()
}

// firstSendFrames is the number of destination-rate frames this tick must
// produce, taken from the voice's first send (or the master period when
// the voice has no sends yet).
func (sv *SourceVoice) firstSendFrames() int {
	sv.sendMu.Lock()
	defer sv.sendMu.Unlock()
	if len(sv.sends) == 0 {
		return sv.engine.updateSize
	}
	return sv.sends[0].Output.wantFrames()
}

// mixSends accumulates src (mixed frames of channels each) into every
// send's destination through its channel matrix, clamping as it goes
// (§4.7.1 step 6).
func mixSends(sends []*Send, src []float32, frames, channels int, channelVolume []float32, voiceVolume float32) {
	for _, send := range sends {
		stream := send.Output.mixStream()
		oChan := send.Output.outputChannels()
		matrix := send.Matrix

		for j := 0; j < frames; j++ {
			for co := 0; co < oChan; co++ {
				var sum float32
				for ci := 0; ci < channels; ci++ {
					sum += src[j*channels+ci] * channelVolume[ci] * voiceVolume * matrix[co*channels+ci]
				}
				idx := j*oChan + co
				v := stream[idx] + sum
				if v > MaxVolumeLevel {
					v = MaxVolumeLevel
				} else if v < -MaxVolumeLevel {
					v = -MaxVolumeLevel
				}
				stream[idx] = v
			}
		}
	}
}
