// SPDX-License-Identifier: EPL-2.0

package engine

import "testing"

func TestMasterVoiceFinalizeAppliesVolumeWithClamp(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 4, 1, 8000)
	mv := e.Master()
	mv.SetVolume(2.0)

	mv.output = []float32{MaxVolumeLevel, 1, -1, 0}
	mv.finalize(4)

	want := []float32{MaxVolumeLevel, 2, -2, 0}
	for i, v := range mv.output {
		if v != want[i] {
			t.Errorf("output[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestMasterVoiceFinalizeSkipsVolumeLoopWhenUnity(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 2, 1, 8000)
	mv := e.Master()
	mv.output = []float32{0.5, -0.5}
	mv.finalize(2)

	if mv.output[0] != 0.5 || mv.output[1] != -0.5 {
		t.Fatalf("output = %v, want unchanged", mv.output)
	}
}

func TestMasterVoiceFinalizeWithEmptyPeriodDoesNotPanic(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 4, 1, 8000)
	mv := e.Master()
	mv.AddEffect(newNoopEffectDescriptor(1))
	mv.output = []float32{}
	mv.finalize(0)
}

func TestMasterVoiceWantFramesMatchesUpdateSize(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 128, 2, 44100)
	if got := e.Master().wantFrames(); got != 128 {
		t.Fatalf("wantFrames() = %d, want 128", got)
	}
}
