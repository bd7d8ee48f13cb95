// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestDecodePCM8RoundTrip(t *testing.T) {
	t.Parallel()

	format := Format{Channels: 1, Tag: FormatPCM8}
	buf := make([]byte, 256)
	for i := range buf {
		buf[i] = byte(i)
	}

	dst := make([]float32, 256)
	n := DecodePCM8(buf, 0, dst, 256, format)
	if n != 256 {
		t.Fatalf("decoded %d frames, want 256", n)
	}
	for i, b := range buf {
		want := float32(b)*divBy128 - 1.0
		if dst[i] != want {
			t.Fatalf("idx %d: got %v want %v", i, dst[i], want)
		}
	}
}

func TestDecodePCM8ShortBufferClamps(t *testing.T) {
	t.Parallel()

	format := Format{Channels: 2, Tag: FormatPCM8}
	buf := []byte{1, 2, 3, 4, 5}
	dst := make([]float32, 20)
	n := DecodePCM8(buf, 0, dst, 10, format)
	if n != 2 {
		t.Fatalf("got %d frames, want 2 (5 bytes / 2 channels)", n)
	}
}

func TestDecodePCM16RoundTrip(t *testing.T) {
	t.Parallel()

	format := Format{Channels: 2, Tag: FormatPCM16}
	samples := []int16{-32768, -1, 0, 1, 32767, -100, 200, 30000}
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(s))
	}

	dst := make([]float32, len(samples))
	n := DecodePCM16(buf, 0, dst, len(samples)/2, format)
	if n != len(samples)/2 {
		t.Fatalf("decoded %d frames, want %d", n, len(samples)/2)
	}
	for i, s := range samples {
		want := float32(s) * divBy32768
		if dst[i] != want {
			t.Fatalf("idx %d: got %v want %v", i, dst[i], want)
		}
	}
}

func TestDecodePCM16MidStream(t *testing.T) {
	t.Parallel()

	format := Format{Channels: 1, Tag: FormatPCM16}
	samples := []int16{10, 20, 30, 40, 50}
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(s))
	}

	dst := make([]float32, 2)
	n := DecodePCM16(buf, 2, dst, 2, format)
	if n != 2 {
		t.Fatalf("decoded %d frames, want 2", n)
	}
	if dst[0] != float32(30)*divBy32768 || dst[1] != float32(40)*divBy32768 {
		t.Fatalf("got %v, want samples[2:4]", dst)
	}
}

func TestDecodePCM32FPassthrough(t *testing.T) {
	t.Parallel()

	format := Format{Channels: 1, Tag: FormatPCM32F}
	values := []float32{0, 1, -1, 0.5, -0.25, 3.14159}
	buf := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}

	dst := make([]float32, len(values))
	n := DecodePCM32F(buf, 0, dst, len(values), format)
	if n != len(values) {
		t.Fatalf("decoded %d frames, want %d", n, len(values))
	}
	for i, v := range values {
		if dst[i] != v {
			t.Fatalf("idx %d: got %v want %v", i, dst[i], v)
		}
	}
}

func TestDecoderForDispatch(t *testing.T) {
	t.Parallel()

	cases := []struct {
		tag  FormatTag
		want bool
	}{
		{FormatPCM8, true},
		{FormatPCM16, true},
		{FormatPCM32F, true},
		{FormatMSADPCMMono, true},
		{FormatMSADPCMStereo, true},
		{FormatTag(99), false},
	}
	for _, c := range cases {
		fn := DecoderFor(c.tag)
		if (fn != nil) != c.want {
			t.Errorf("DecoderFor(%v): got nil=%v, want non-nil=%v", c.tag, fn == nil, c.want)
		}
	}
}
