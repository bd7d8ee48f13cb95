// SPDX-License-Identifier: EPL-2.0

package pcm

// FormatTag identifies the wire encoding of a waveform buffer.
type FormatTag int

const (
	FormatPCM8 FormatTag = iota
	FormatPCM16
	FormatPCM32F
	FormatMSADPCMMono
	FormatMSADPCMStereo
)

// Format describes the waveform layout of a client-submitted buffer, the
// engine-facing equivalent of FAudioWaveFormatEx.
type Format struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	BlockAlign    int // only meaningful for MSADPCM
	Tag           FormatTag
}

// DecodeFunc writes frames*format.Channels float32 samples to dst, reading
// from buf starting at startFrame (a frame offset from the start of buf,
// not from any play/loop region). It returns the number of frames actually
// decoded, which is less than frames only when buf runs out of data.
type DecodeFunc func(buf []byte, startFrame int, dst []float32, frames int, format Format) int

// DecoderFor returns the decode function for a format tag.
func DecoderFor(tag FormatTag) DecodeFunc {
	switch tag {
	case FormatPCM8:
		return DecodePCM8
	case FormatPCM16:
		return DecodePCM16
	case FormatPCM32F:
		return DecodePCM32F
	case FormatMSADPCMMono:
		return DecodeMonoMSADPCM
	case FormatMSADPCMStereo:
		return DecodeStereoMSADPCM
	default:
		return nil
	}
}
