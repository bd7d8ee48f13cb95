// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"sync"

	"github.com/ik5/xaengine/effect"
	"github.com/ik5/xaengine/filter"
)

// SubmixVoice aggregates contributions from upstream source/submix voices
// during one processing stage, resamples them to the engine's period rate,
// applies volume/filter/effects, and mixes onward to its own sends
// (§4.7.2). A submix at stage k may only send to a submix at a stage > k
// or to the master, keeping the graph acyclic.
type SubmixVoice struct {
	engine          *Engine
	rate            int
	channels        int
	stage           int
	inputFrames     int

	cacheMu    sync.Mutex
	inputCache []float32

	resampler *pushResampler

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
}

func newSubmixVoice(e *Engine, opts SubmixVoiceOptions) *SubmixVoice {
	inputFrames := e.updateSize
	if opts.SampleRate != e.masterSampleRate && e.masterSampleRate > 0 {
		inputFrames = (e.updateSize*opts.SampleRate + e.masterSampleRate - 1) / e.masterSampleRate
	}

	sv := &SubmixVoice{
		engine:        e,
		rate:          opts.SampleRate,
		channels:      opts.Channels,
		stage:         opts.ProcessingStage,
		inputFrames:   inputFrames,
		inputCache:    make([]float32, inputFrames*opts.Channels),
		resampler:     newPushResampler(opts.SampleRate, e.masterSampleRate, opts.Channels),
		volume:        1.0,
		channelVolume: onesFloat32(opts.Channels),
		useFilter:     opts.UseFilter,
	}
	if sv.useFilter {
		sv.stateFilter = &filter.StateVariableFilter{}
		sv.stateFilter.SetChannels(opts.Channels)
	}
	sv.effects = effect.NewChain(opts.Channels, e.masterSampleRate)
	return sv
}

func (sv *SubmixVoice) mixStream() []float32 {
	sv.cacheMu.Lock()
	defer sv.cacheMu.Unlock()
	return sv.inputCache
}

func (sv *SubmixVoice) outputChannels() int { return sv.channels }
func (sv *SubmixVoice) sampleRate() int     { return sv.rate }
func (sv *SubmixVoice) wantFrames() int     { return sv.inputFrames }

// AddSend attaches a new destination to the submix.
func (sv *SubmixVoice) AddSend(send *Send) {
	sv.sendMu.Lock()
	sv.sends = append(sv.sends, send)
	sv.sendMu.Unlock()
}

// AddEffect appends an effect to the submix's effect chain. If this
// changes the chain's final output channel count, the channel-volume
// vector is resized to match, defaulting any new channels to unity gain.
func (sv *SubmixVoice) AddEffect(desc effect.Descriptor) {
	sv.effectMu.Lock()
	sv.effects.AddEffect(desc)
	outCh := sv.effects.OutputChannels()
	sv.effectMu.Unlock()

	sv.volumeMu.Lock()
	sv.channelVolume = resizeChannelVolume(sv.channelVolume, outCh)
	sv.volumeMu.Unlock()
}

// SetVolume sets the submix's overall volume, applied before its filter
// and effect chain (§4.7.2 — this ordering is mandatory).
func (sv *SubmixVoice) SetVolume(v float32) {
	sv.volumeMu.Lock()
	sv.volume = v
	sv.volumeMu.Unlock()
}

// SetFilterParameters configures and enables the submix's filter.
func (sv *SubmixVoice) SetFilterParameters(p filter.Parameters) error {
	if !sv.useFilter {
		return ErrInvalidState
	}
	sv.filterMu.Lock()
	sv.stateFilter.Params = p
	sv.filterOn = true
	sv.filterMu.Unlock()
	return nil
}

// update runs one tick's worth of resample/volume/filter/effect/mix for
// this submix and zeros its input cache for the next tick.
func (sv *SubmixVoice) update() {
	sv.sendMu.Lock()
	defer sv.sendMu.Unlock()

	defer func() {
		sv.cacheMu.Lock()
		for i := range sv.inputCache {
			sv.inputCache[i] = 0
		}
		sv.cacheMu.Unlock()
	}()

	if len(sv.sends) == 0 {
		return
	}

	frames := sv.engine.updateSize
	channels := sv.channels
	resampleCache := sv.engine.resizeResampleCache(frames * channels)

	sv.cacheMu.Lock()
	sv.resampler.Resample(resampleCache[:frames*channels], sv.inputCache)
	sv.cacheMu.Unlock()

	sv.volumeMu.Lock()
	volume := sv.volume
	sv.volumeMu.Unlock()
	if volume != 1.0 {
		for i := range resampleCache[:frames*channels] {
			v := resampleCache[i] * volume
			if v > MaxVolumeLevel {
				v = MaxVolumeLevel
			} else if v < -MaxVolumeLevel {
				v = -MaxVolumeLevel
			}
			resampleCache[i] = v
		}
	}

	sv.filterMu.Lock()
	if sv.useFilter && sv.filterOn {
		sv.stateFilter.Process(resampleCache[:frames*channels], frames)
	}
	sv.filterMu.Unlock()

	effectOut := resampleCache[:frames*channels]
	outCh := channels
	sv.effectMu.Lock()
	if sv.effects.Len() > 0 {
		effectOut, outCh = sv.effects.Process(effectOut, frames)
	}
	sv.effectMu.Unlock()

	sv.volumeMu.Lock()
	mixSends(sv.sends, effectOut, frames, outCh, sv.channelVolume, 1.0)
	sv.volumeMu.Unlock()
}
