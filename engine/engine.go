// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ik5/xaengine/pcm"
)

// Engine owns the voice graph and drives one tick of the mixer per Tick
// call. It is the engine-facing equivalent of a single FAudio instance.
type Engine struct {
	updateSize       int
	masterChannels   int
	masterSampleRate int
	debugEngine      bool

	active bool

	sourceMu sync.Mutex
	sources  []*SourceVoice

	submixMu sync.Mutex
	submixes []*SubmixVoice

	callbackMu sync.Mutex
	callbacks  []EngineCallbacks

	master *MasterVoice
	diag   *diagnostics

	cacheMu          sync.Mutex
	decodeCache      []float32
	resampleCache    []float32
	effectChainCache []float32
}

// New creates an Engine and its master voice from opts.
func New(opts Options) (*Engine, error) {
	if opts.UpdateSize <= 0 || opts.MasterChannels <= 0 || opts.MasterSampleRate <= 0 {
		return nil, fmt.Errorf("%w: update size, master channels and master sample rate must all be positive", ErrInvalidArgument)
	}

	e := &Engine{
		updateSize:       opts.UpdateSize,
		masterChannels:   opts.MasterChannels,
		masterSampleRate: opts.MasterSampleRate,
		debugEngine:      opts.DebugEngine,
		active:           true,
	}
	e.master = newMasterVoice(e)
	if opts.DebugEngine {
		e.diag = newDiagnostics(opts.MasterSampleRate)
	}
	return e, nil
}

// Master returns the engine's single master voice.
func (e *Engine) Master() *MasterVoice { return e.master }

// NewSourceVoice creates and registers a source voice decoding the given
// wave format.
func (e *Engine) NewSourceVoice(format pcm.Format, opts SourceVoiceOptions) (*SourceVoice, error) {
	if format.Channels <= 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: channel count and sample rate must be positive", ErrInvalidArgument)
	}
	if pcm.DecoderFor(format.Tag) == nil {
		return nil, fmt.Errorf("%w: unrecognized format tag %v", ErrInvalidArgument, format.Tag)
	}

	sv := newSourceVoice(e, format, opts)

	e.sourceMu.Lock()
	e.sources = append(e.sources, sv)
	e.sourceMu.Unlock()

	return sv, nil
}

// NewSubmixVoice creates and registers a submix voice.
func (e *Engine) NewSubmixVoice(opts SubmixVoiceOptions) (*SubmixVoice, error) {
	if opts.Channels <= 0 || opts.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: channel count and sample rate must be positive", ErrInvalidArgument)
	}
	if opts.ProcessingStage < 0 {
		return nil, fmt.Errorf("%w: processing stage must be >= 0", ErrInvalidArgument)
	}

	sv := newSubmixVoice(e, opts)

	e.submixMu.Lock()
	e.submixes = append(e.submixes, sv)
	e.submixMu.Unlock()

	return sv, nil
}

// AddCallbacks registers an engine-lifetime callback set.
func (e *Engine) AddCallbacks(cb EngineCallbacks) {
	e.callbackMu.Lock()
	e.callbacks = append(e.callbacks, cb)
	e.callbackMu.Unlock()
}

// Stop marks the engine inactive; subsequent Tick calls return
// immediately without producing output.
func (e *Engine) Stop() { e.active = false }

func (e *Engine) resizeDecodeCache(n int) []float32 {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	if len(e.decodeCache) < n {
		e.decodeCache = make([]float32, n)
	}
	return e.decodeCache[:n]
}

func (e *Engine) resizeResampleCache(n int) []float32 {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	if len(e.resampleCache) < n {
		e.resampleCache = make([]float32, n)
	}
	return e.resampleCache[:n]
}

// Tick produces exactly one period of updateSize*masterChannels float32
// frames into out (§4.8). It must be called from a single goroutine; the
// engine performs no synchronization of its own against concurrent Tick
// calls.
func (e *Engine) Tick(out []float32) (err error) {
	if !e.active {
		return nil
	}

	want := e.updateSize * e.masterChannels
	if len(out) != want {
		return fmt.Errorf("%w: out must be exactly %d frames", ErrInvalidArgument, want)
	}

	// A scratch-cache allocation failure (out of memory growing
	// decodeCache/resampleCache) panics rather than returning an error;
	// recover it here as the tick's one fatal outcome.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrFatal, r)
		}
	}()

	e.callbackMu.Lock()
	for _, cb := range e.callbacks {
		if cb.OnProcessingPassStart != nil {
			cb.OnProcessingPassStart()
		}
	}
	e.callbackMu.Unlock()

	for i := range out {
		out[i] = 0
	}
	e.master.output = out

	e.sourceMu.Lock()
	for _, sv := range e.sources {
		if sv.isActive() {
			sv.update()
		}
	}
	e.sourceMu.Unlock()

	e.submixMu.Lock()
	maxStage := 0
	for _, sub := range e.submixes {
		if sub.stage > maxStage {
			maxStage = sub.stage
		}
	}
	ordered := make([]*SubmixVoice, len(e.submixes))
	copy(ordered, e.submixes)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].stage < ordered[j].stage })
	for stage := 0; stage <= maxStage; stage++ {
		for _, sub := range ordered {
			if sub.stage == stage {
				sub.update()
			}
		}
	}
	e.submixMu.Unlock()

	e.master.finalize(e.updateSize)

	if e.diag != nil {
		e.diag.capture(out, e.masterChannels)
	}

	e.callbackMu.Lock()
	for _, cb := range e.callbacks {
		if cb.OnProcessingPassEnd != nil {
			cb.OnProcessingPassEnd()
		}
	}
	e.callbackMu.Unlock()

	return nil
}
