// SPDX-License-Identifier: EPL-2.0

// Package xaengine provides an XAudio2-style real-time audio mixing engine
// together with the offline asset decoding pipeline it loads buffers from.
//
// The asset side (this package plus audio, formats/*, utils) offers
// convenient functions for decoding and resampling audio files outside the
// real-time path. The engine side (package engine, plus pcm, queue, filter,
// effect, matrix, assetload) implements the per-period voice graph: source
// voices decode/resample/filter/effect-chain/mix into submixes and a master
// voice on a fixed callback period, matching the shape of the platform audio
// API this engine stands in for.
//
// # Supported Formats
//
// The package supports decoding the following audio formats:
//   - WAV (PCM 16-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 16-bit) via formats/aiff
//
// # Quick Start
//
// The simplest way to process audio is using ResampleToMono16:
//
//	// Decode an audio file
//	decoder := wav.Decoder{}
//	file, _ := os.Open("audio.wav")
//	src, _ := decoder.Decode(file)
//
//	// Resample to 8kHz mono, 16-bit PCM
//	samples, rate, _ := xaengine.ResampleToMono16(src, 8000, 4096)
//
//	// samples is now []int16 at 8kHz mono
//
// # Audio Processing Pipeline
//
// For more control, you can build custom audio processing pipelines using the
// audio subpackage:
//
//	// Create a resampler
//	resampler := audio.NewResampler(source, 16000)
//
//	// Convert to mono
//	mono := audio.NewMonoMixer(resampler)
//
//	// Read samples
//	buf := make([]float32, 4096)
//	n, err := mono.ReadSamples(buf)
//
// # Format Decoders
//
// Each format has its own decoder:
//
//	// WAV
//	wavDecoder := wav.Decoder{}
//	src, _ := wavDecoder.Decode(reader)
//
//	// MP3
//	mp3Decoder := mp3.Decoder{}
//	src, _ := mp3Decoder.Decode(reader)
//
//	// Vorbis
//	vorbisDecoder := vorbis.Decoder{}
//	src, _ := vorbisDecoder.Decode(reader)
//
//	// AIFF
//	aiffDecoder := aiff.Decoder{}
//	src, _ := aiffDecoder.Decode(reader)
//
// All decoders return an audio.Source interface which can be used with
// the audio processing functions.
//
// # Writing WAV Files
//
// The package can write PCM WAV files:
//
//	samples := []int16{100, -100, 200, -200}
//	file, _ := os.Create("output.wav")
//	wav.WriteWAV16(file, 8000, samples)
//
// # Performance
//
// The package is optimized for performance with minimal allocations:
//   - Resampling uses cubic interpolation for quality
//   - Buffer reuse minimizes GC pressure
//   - Batch conversions reduce per-sample overhead
//
// # Real-Time Engine
//
// Decoded assets feed the engine through assetload, which drains a Source
// into a queue.AudioBuffer:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	buf, format, _ := assetload.Load(src)
//
//	eng, _ := engine.New(engine.Options{UpdateSize: 480, MasterChannels: 2, MasterSampleRate: 48000})
//	sv, _ := eng.NewSourceVoice(format, engine.SourceVoiceOptions{})
//	sv.SubmitBuffer(buf)
//	sv.Start()
//
//	out := make([]float32, 480*2)
//	eng.Tick(out) // one 10ms period of float32 PCM
//
// See the individual subpackages for more detailed documentation.
package xaengine
