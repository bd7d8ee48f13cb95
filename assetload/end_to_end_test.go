// SPDX-License-Identifier: EPL-2.0

package assetload_test

import (
	"bytes"
	"testing"

	"github.com/ik5/xaengine/assetload"
	"github.com/ik5/xaengine/engine"
	"github.com/ik5/xaengine/formats/wav"
	"github.com/ik5/xaengine/matrix"
)

// TestWAVThroughAssetloadFeedsEngineTick exercises the full chain from an
// on-disk format to mixed output: formats/wav decodes a WAV file,
// assetload.Load encodes the decoded source as a PCM16 queue.AudioBuffer,
// a source voice is submitted that buffer, and a single Engine.Tick mixes
// it into the master voice's output.
func TestWAVThroughAssetloadFeedsEngineTick(t *testing.T) {
	t.Parallel()

	const frames = 8
	samples := make([]int16, frames)
	for i := range samples {
		samples[i] = 16384
	}

	wavData := new(bytes.Buffer)
	if err := wav.WriteWAV16(wavData, 8000, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	decoder := wav.Decoder{}
	source, err := decoder.Decode(wavData)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf, format, err := assetload.Load(source)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !buf.EndOfStream() {
		t.Fatal("loaded buffer should carry FlagEndOfStream")
	}

	eng, err := engine.New(engine.Options{
		UpdateSize:       frames,
		MasterChannels:   1,
		MasterSampleRate: format.SampleRate,
	})
	if err != nil {
		t.Fatalf("engine.New() error = %v", err)
	}

	sv, err := eng.NewSourceVoice(format, engine.SourceVoiceOptions{})
	if err != nil {
		t.Fatalf("NewSourceVoice() error = %v", err)
	}

	mix, err := matrix.Default(format.Channels, 1)
	if err != nil {
		t.Fatalf("matrix.Default() error = %v", err)
	}
	sv.AddSend(&engine.Send{Output: eng.Master(), Matrix: mix})

	if err := sv.SubmitBuffer(buf); err != nil {
		t.Fatalf("SubmitBuffer() error = %v", err)
	}
	if err := sv.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	out := make([]float32, frames)
	if err := eng.Tick(out); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	for i, v := range out {
		if v < 0.49 || v > 0.51 {
			t.Errorf("out[%d] = %v, want ~0.5", i, v)
		}
	}
}
