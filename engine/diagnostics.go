// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"io"
	"sync"

	"github.com/ik5/xaengine/formats/wav"
	"github.com/ik5/xaengine/utils"
)

// diagnostics accumulates the master voice's output, downmixed to mono
// int16, across ticks when an Engine is created with DebugEngine set.
// It exists purely to let a developer dump what the mixer actually
// produced; nothing in the mixing path reads it back.
type diagnostics struct {
	mu      sync.Mutex
	rate    int
	samples []int16
}

func newDiagnostics(rate int) *diagnostics {
	return &diagnostics{rate: rate}
}

// capture downmixes one tick's interleaved master output to mono and
// appends it to the running capture buffer.
func (d *diagnostics) capture(out []float32, channels int) {
	if channels <= 0 || len(out) == 0 {
		return
	}
	frames := len(out) / channels

	d.mu.Lock()
	defer d.mu.Unlock()
	for f := 0; f < frames; f++ {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += out[f*channels+c]
		}
		d.samples = append(d.samples, utils.Float32ToInt16(sum/float32(channels)))
	}
}

// WriteTo writes the accumulated capture as a mono 16-bit WAV file. It
// does not reset the capture buffer.
func (d *diagnostics) WriteTo(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return wav.WriteWAV16(w, d.rate, d.samples)
}

// Diagnostics returns the engine's debug capture sink, or nil if it was
// not created with Options.DebugEngine set.
func (e *Engine) Diagnostics() interface {
	WriteTo(w io.Writer) error
} {
	if e.diag == nil {
		return nil
	}
	return e.diag
}
