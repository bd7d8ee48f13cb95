// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"sync"

	"github.com/ik5/xaengine/effect"
)

// MasterVoice is the engine's single output destination. Its output
// pointer is only valid for the duration of one Tick call (§3).
type MasterVoice struct {
	engine   *Engine
	channels int
	rate     int

	output []float32 // set by Engine.Tick for the duration of one period

	volumeMu sync.Mutex
	volume   float32

	effectMu sync.Mutex
	effects  *effect.Chain
}

func newMasterVoice(e *Engine) *MasterVoice {
	return &MasterVoice{
		engine:   e,
		channels: e.masterChannels,
		rate:     e.masterSampleRate,
		volume:   1.0,
		effects:  effect.NewChain(e.masterChannels, e.masterSampleRate),
	}
}

func (mv *MasterVoice) mixStream() []float32 { return mv.output }
func (mv *MasterVoice) outputChannels() int  { return mv.channels }
func (mv *MasterVoice) sampleRate() int      { return mv.rate }
func (mv *MasterVoice) wantFrames() int      { return mv.engine.updateSize }

// SetVolume sets the master's overall volume.
func (mv *MasterVoice) SetVolume(v float32) {
	mv.volumeMu.Lock()
	mv.volume = v
	mv.volumeMu.Unlock()
}

// AddEffect appends an effect to the master effect chain.
func (mv *MasterVoice) AddEffect(desc effect.Descriptor) {
	mv.effectMu.Lock()
	mv.effects.AddEffect(desc)
	mv.effectMu.Unlock()
}

// finalize applies master volume with clamp, then runs the master effect
// chain, copying its output back into the period buffer if it produced a
// distinct buffer (§4.7.3).
func (mv *MasterVoice) finalize(frames int) {
	total := frames * mv.channels

	mv.volumeMu.Lock()
	volume := mv.volume
	mv.volumeMu.Unlock()
	if volume != 1.0 {
		for i := 0; i < total; i++ {
			v := mv.output[i] * volume
			if v > MaxVolumeLevel {
				v = MaxVolumeLevel
			} else if v < -MaxVolumeLevel {
				v = -MaxVolumeLevel
			}
			mv.output[i] = v
		}
	}

	mv.effectMu.Lock()
	defer mv.effectMu.Unlock()
	if mv.effects.Len() == 0 {
		return
	}
	effectOut, _ := mv.effects.Process(mv.output, frames)
	if total > 0 && &effectOut[0] != &mv.output[0] {
		copy(mv.output, effectOut[:total])
	}
}
