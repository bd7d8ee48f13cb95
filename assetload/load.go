// SPDX-License-Identifier: EPL-2.0

package assetload

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/ik5/xaengine/audio"
	"github.com/ik5/xaengine/pcm"
	"github.com/ik5/xaengine/queue"
	"github.com/ik5/xaengine/utils"
)

// ErrEmptySource is returned by Load when src produced zero frames.
var ErrEmptySource = errors.New("assetload: source produced no samples")

// defaultReadFrames is the number of frames pulled from src per
// ReadSamples call while draining it.
const defaultReadFrames = 4096

// Load drains src to completion and encodes the result as a PCM16
// queue.AudioBuffer with FlagEndOfStream set, along with the pcm.Format
// describing it. The returned buffer owns its data; src is not retained.
func Load(src audio.Source) (queue.AudioBuffer, pcm.Format, error) {
	channels := src.Channels()
	sampleRate := src.SampleRate()

	format := pcm.Format{
		SampleRate:    sampleRate,
		Channels:      channels,
		BitsPerSample: 16,
		Tag:           pcm.FormatPCM16,
	}

	var samples []float32
	chunk := make([]float32, defaultReadFrames*channels)
	for {
		n, err := src.ReadSamples(chunk)
		if n > 0 {
			samples = append(samples, chunk[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return queue.AudioBuffer{}, pcm.Format{}, err
		}
		if n == 0 {
			break
		}
	}

	if len(samples) == 0 {
		return queue.AudioBuffer{}, pcm.Format{}, ErrEmptySource
	}

	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:i*2+2], uint16(utils.Float32ToInt16(s)))
	}

	frames := uint32(len(samples) / channels)
	buf := queue.AudioBuffer{
		Flags:      queue.FlagEndOfStream,
		Data:       data,
		PlayBegin:  0,
		PlayLength: frames,
	}

	return buf, format, nil
}
