// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"testing"

	"github.com/ik5/xaengine/filter"
)

func TestSubmixVoiceInputFramesMatchesUpdateSizeAtMasterRate(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 100, 1, 8000)
	sub, err := e.NewSubmixVoice(SubmixVoiceOptions{SampleRate: 8000, Channels: 1})
	if err != nil {
		t.Fatalf("NewSubmixVoice() error = %v", err)
	}
	if sub.inputFrames != 100 {
		t.Fatalf("inputFrames = %d, want 100 when rates match", sub.inputFrames)
	}
}

func TestSubmixVoiceInputFramesScalesWithRate(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 100, 1, 8000)
	sub, err := e.NewSubmixVoice(SubmixVoiceOptions{SampleRate: 16000, Channels: 1})
	if err != nil {
		t.Fatalf("NewSubmixVoice() error = %v", err)
	}
	if sub.inputFrames != 200 {
		t.Fatalf("inputFrames = %d, want 200 at double rate", sub.inputFrames)
	}
}

func TestSubmixVoiceUpdateWithNoSendsZeroesInputCache(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 8, 1, 8000)
	sub, err := e.NewSubmixVoice(SubmixVoiceOptions{SampleRate: 8000, Channels: 1})
	if err != nil {
		t.Fatalf("NewSubmixVoice() error = %v", err)
	}
	for i := range sub.inputCache {
		sub.inputCache[i] = 1
	}
	sub.update()
	for i, v := range sub.inputCache {
		if v != 0 {
			t.Fatalf("inputCache[%d] = %v, want 0 after update with no sends", i, v)
		}
	}
}

func TestSubmixVoiceVolumeAppliedBeforeFilterNotDoubledBySend(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 4, 1, 8000)
	sub, err := e.NewSubmixVoice(SubmixVoiceOptions{SampleRate: 8000, Channels: 1})
	if err != nil {
		t.Fatalf("NewSubmixVoice() error = %v", err)
	}
	sub.SetVolume(2.0)

	for i := range sub.inputCache {
		sub.inputCache[i] = 1
	}
	dst := make([]float32, 4)
	sub.AddSend(&Send{Output: &fakeDestination{stream: dst, channels: 1, rate: 8000}, Matrix: []float32{1}})
	sub.update()

	for i, v := range dst {
		if v != 2 {
			t.Errorf("dst[%d] = %v, want 2 (volume applied once, not twice)", i, v)
		}
	}
}

func TestSubmixVoiceSetFilterParametersRequiresUseFilter(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 4, 1, 8000)
	sub, err := e.NewSubmixVoice(SubmixVoiceOptions{SampleRate: 8000, Channels: 1})
	if err != nil {
		t.Fatalf("NewSubmixVoice() error = %v", err)
	}
	if err := sub.SetFilterParameters(filter.Parameters{Type: filter.LowPass, OneOverQ: 1}); err == nil {
		t.Fatal("SetFilterParameters() without UseFilter error = nil, want ErrInvalidState")
	}
}
