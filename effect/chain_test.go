// SPDX-License-Identifier: EPL-2.0

package effect

import (
	"errors"
	"testing"
)

// passThroughEffect copies input to output, changing channel count via a
// fixed mix matrix when the two differ.
type passThroughEffect struct {
	inChannels, outChannels int
	failNext                bool
	locks                   int
}

func (e *passThroughEffect) AddRef() int32  { return 1 }
func (e *passThroughEffect) Release() int32 { return 0 }
func (e *passThroughEffect) Initialize(data []byte) error { return nil }

func (e *passThroughEffect) LockForProcess(inputs, outputs []LockParams) error {
	e.locks++
	return nil
}
func (e *passThroughEffect) UnlockForProcess() {}

func (e *passThroughEffect) Process(inputs, outputs []Buffer, enabled bool) error {
	if e.failNext {
		e.failNext = false
		return errors.New("injected failure")
	}
	in := inputs[0].Data
	out := outputs[0].Data
	frames := inputs[0].FrameCount
	for j := 0; j < frames; j++ {
		var sum float32
		for ci := 0; ci < e.inChannels; ci++ {
			sum += in[j*e.inChannels+ci]
		}
		avg := sum / float32(e.inChannels)
		for co := 0; co < e.outChannels; co++ {
			out[j*e.outChannels+co] = avg
		}
	}
	return nil
}

func (e *passThroughEffect) CalcInputFrames(n int) int  { return n }
func (e *passThroughEffect) CalcOutputFrames(n int) int { return n }
func (e *passThroughEffect) SetParameters(blob []byte)  {}
func (e *passThroughEffect) GetParameters(blob []byte)  {}

func TestChainInPlaceSingleEffect(t *testing.T) {
	t.Parallel()

	eff := &passThroughEffect{inChannels: 2, outChannels: 2}
	c := NewChain(2, 48000)
	c.AddEffect(Descriptor{Effect: eff, OutputChannels: 2, InitialState: true})

	buf := []float32{1, 2, 3, 4}
	out, channels := c.Process(buf, 2)

	if channels != 2 {
		t.Fatalf("channels = %d, want 2", channels)
	}
	want := []float32{1.5, 1.5, 3.5, 3.5}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestChainBufferAlternationNeverExceedsTwoBuffers(t *testing.T) {
	t.Parallel()

	narrow := &passThroughEffect{inChannels: 2, outChannels: 1}
	wide := &passThroughEffect{inChannels: 1, outChannels: 2}

	c := NewChain(2, 48000)
	c.AddEffect(Descriptor{Effect: narrow, OutputChannels: 1, InitialState: true})
	c.AddEffect(Descriptor{Effect: wide, OutputChannels: 2, InitialState: true})

	buf := []float32{1, 1, 1, 1}
	out, channels := c.Process(buf, 2)

	if channels != 2 {
		t.Fatalf("final channels = %d, want 2", channels)
	}
	if len(out) != 4 {
		t.Fatalf("len(out) = %d, want 4", len(out))
	}
	for i, v := range out {
		if v != 1 {
			t.Fatalf("out[%d] = %v, want 1 (round trip through mono)", i, v)
		}
	}
}

func TestChainEffectFailureZeroesOutputAndRecordsError(t *testing.T) {
	t.Parallel()

	eff := &passThroughEffect{inChannels: 1, outChannels: 1, failNext: true}
	c := NewChain(1, 48000)
	c.AddEffect(Descriptor{Effect: eff, OutputChannels: 1, InitialState: true})

	buf := []float32{5, 6, 7}
	out, _ := c.Process(buf, 3)

	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d] = %v, want 0 after effect failure", i, v)
		}
	}
	if c.LastError() == nil {
		t.Fatal("LastError() = nil, want the injected failure")
	}
	if c.LastError() != nil {
		t.Fatal("LastError() should clear after being read once")
	}
}

func TestChainSetParametersDeliversOnNextProcess(t *testing.T) {
	t.Parallel()

	eff := &recordingEffect{}
	c := NewChain(1, 48000)
	c.AddEffect(Descriptor{Effect: eff, OutputChannels: 1, InitialState: true})
	c.SetParameters(0, []byte("gain=2"))

	c.Process([]float32{1}, 1)
	if string(eff.lastBlob) != "gain=2" {
		t.Fatalf("SetParameters blob = %q, want %q", eff.lastBlob, "gain=2")
	}
	if eff.setCalls != 1 {
		t.Fatalf("SetParameters called %d times, want 1 (coalesced, then cleared)", eff.setCalls)
	}

	c.Process([]float32{1}, 1)
	if eff.setCalls != 1 {
		t.Fatalf("SetParameters called again with no new update: %d calls", eff.setCalls)
	}
}

type recordingEffect struct {
	passThroughEffect
	lastBlob []byte
	setCalls int
}

func (e *recordingEffect) SetParameters(blob []byte) {
	e.lastBlob = blob
	e.setCalls++
}

func (e *recordingEffect) Process(inputs, outputs []Buffer, enabled bool) error {
	copy(outputs[0].Data, inputs[0].Data)
	return nil
}
