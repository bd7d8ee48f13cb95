// SPDX-License-Identifier: EPL-2.0

// Package assetload bridges the offline decoding pipeline (package audio
// and formats/*) to the real-time engine's buffer queue (package queue):
// it drains an audio.Source to completion and packages the result as a
// queue.AudioBuffer encoded as 16-bit PCM, ready for SourceVoice.SubmitBuffer.
//
// The engine never reads files or decodes compressed formats itself; a
// client decodes with a formats/* package, resamples/mixes with package
// audio as needed, then calls Load to hand the result to a source voice.
package assetload
