// SPDX-License-Identifier: EPL-2.0

// Package pcm implements the engine's sample-format conversions and
// waveform decoders: U8/S16 to float32 conversion and the PCM8, PCM16,
// PCM32F and MSADPCM (mono/stereo) decoders that turn a client-submitted
// buffer into interleaved float32 frames.
//
// Conversions are bit-exact:
//
//	U8  -> F32: out = in*(1/128) - 1.0
//	S16 -> F32: out = in*(1/32768)
//
// Decoders share a single signature so a source voice can select one by
// format tag and call it without a type switch on the hot path:
//
//	type DecodeFunc func(buf []byte, startFrame int, dst []float32, frames int, format Format) int
package pcm
