// SPDX-License-Identifier: EPL-2.0

package assetload_test

import (
	"errors"
	"testing"

	"github.com/ik5/xaengine/assetload"
	"github.com/ik5/xaengine/internal/audiotest"
	"github.com/ik5/xaengine/pcm"
)

func TestLoadEncodesConstantSourceAsPCM16(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 1, 10, 0.5)
	buf, format, err := assetload.Load(src)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if format.Tag != pcm.FormatPCM16 {
		t.Fatalf("format.Tag = %v, want FormatPCM16", format.Tag)
	}
	if format.Channels != 1 || format.SampleRate != 8000 {
		t.Fatalf("format = %+v, want channels=1 rate=8000", format)
	}
	if buf.PlayLength != 10 {
		t.Fatalf("PlayLength = %d, want 10", buf.PlayLength)
	}
	if !buf.EndOfStream() {
		t.Fatal("buffer should carry FlagEndOfStream")
	}
	if len(buf.Data) != 10*2 {
		t.Fatalf("len(Data) = %d, want 20", len(buf.Data))
	}

	dst := make([]float32, 10)
	n := pcm.DecoderFor(format.Tag)(buf.Data, 0, dst, 10, format)
	if n != 10 {
		t.Fatalf("decoded %d frames, want 10", n)
	}
	for i, v := range dst {
		if v < 0.49 || v > 0.51 {
			t.Errorf("dst[%d] = %v, want ~0.5", i, v)
		}
	}
}

func TestLoadRejectsEmptySource(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 0)
	_, _, err := assetload.Load(src)
	if !errors.Is(err, assetload.ErrEmptySource) {
		t.Fatalf("Load() error = %v, want ErrEmptySource", err)
	}
}

func TestLoadStereoPreservesChannelInterleaving(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(44100, 2, 5, func(sample, channel int) float32 {
		if channel == 0 {
			return 0.25
		}
		return -0.25
	})

	buf, format, err := assetload.Load(src)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	dst := make([]float32, 5*2)
	n := pcm.DecoderFor(format.Tag)(buf.Data, 0, dst, 5, format)
	if n != 5 {
		t.Fatalf("decoded %d frames, want 5", n)
	}
	for f := 0; f < 5; f++ {
		if dst[f*2] < 0.2 || dst[f*2] > 0.3 {
			t.Errorf("left[%d] = %v, want ~0.25", f, dst[f*2])
		}
		if dst[f*2+1] > -0.2 || dst[f*2+1] < -0.3 {
			t.Errorf("right[%d] = %v, want ~-0.25", f, dst[f*2+1])
		}
	}
}
