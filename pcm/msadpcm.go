// SPDX-License-Identifier: EPL-2.0

package pcm

// MSADPCM decoding, ported from FAudio_internal.c's
// FAudio_INTERNAL_DecodeMono/StereoMSADPCM[Block] and ParseNibble. The
// adaption tables are the standard Microsoft ADPCM coefficients; nothing
// here is tunable.

var adaptionTable = [16]int32{
	230, 230, 230, 230, 307, 409, 512, 614,
	768, 614, 512, 409, 307, 230, 230, 230,
}

var adaptCoeff1 = [7]int32{256, 512, 0, 192, 240, 460, 392}
var adaptCoeff2 = [7]int32{0, -256, 0, 64, 0, -208, -232}

func clampInt16(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// parseNibble expands one 4-bit ADPCM nibble into a decoded sample,
// mutating the running predictor state (delta, sample1, sample2).
func parseNibble(nibble uint8, predictor uint8, delta, sample1, sample2 *int16) int16 {
	signed := int8(nibble)
	if signed&0x08 != 0 {
		signed -= 0x10
	}

	predicted := (int32(*sample1)*adaptCoeff1[predictor] + int32(*sample2)*adaptCoeff2[predictor]) / 256
	predicted += int32(signed) * int32(*delta)
	sample := clampInt16(predicted)

	*sample2 = *sample1
	*sample1 = sample

	newDelta := int16(int32(adaptionTable[nibble]) * int32(*delta) / 256)
	if newDelta < 16 {
		newDelta = 16
	}
	*delta = newDelta

	return sample
}

// monoBlockSize returns the number of decoded frames held by one mono
// MSADPCM block of the given block-align.
func monoBlockSize(blockAlign int) int {
	return (blockAlign - 6) * 2
}

// stereoBlockSize returns the number of decoded frames (per channel) held
// by one stereo MSADPCM block of the given block-align.
func stereoBlockSize(blockAlign int) int {
	return (blockAlign/2 - 6) * 2
}

// decodeMonoMSADPCMBlock expands one full mono block (blockAlign bytes,
// starting at buf[0]) into blockCache as interleaved (trivially, mono)
// int16 samples. Returns the number of bytes consumed.
func decodeMonoMSADPCMBlock(buf []byte, blockCache []int16, blockAlign int) int {
	predictor := buf[0] & 0x7
	delta := int16(buf[1]) | int16(buf[2])<<8
	sample1 := int16(buf[3]) | int16(buf[4])<<8
	sample2 := int16(buf[5]) | int16(buf[6])<<8

	out := 0
	blockCache[out] = sample2
	out++
	blockCache[out] = sample1
	out++

	pos := 7
	remaining := blockAlign - 7
	for i := 0; i < remaining; i++ {
		b := buf[pos+i]
		blockCache[out] = parseNibble(b>>4, predictor, &delta, &sample1, &sample2)
		out++
		blockCache[out] = parseNibble(b&0x0F, predictor, &delta, &sample1, &sample2)
		out++
	}
	return blockAlign
}

// decodeStereoMSADPCMBlock expands one full stereo block into blockCache
// as interleaved L/R int16 samples.
func decodeStereoMSADPCMBlock(buf []byte, blockCache []int16, blockAlign int) int {
	lPredictor := buf[0] & 0x7
	rPredictor := buf[1] & 0x7
	lDelta := int16(buf[2]) | int16(buf[3])<<8
	rDelta := int16(buf[4]) | int16(buf[5])<<8
	lSample1 := int16(buf[6]) | int16(buf[7])<<8
	rSample1 := int16(buf[8]) | int16(buf[9])<<8
	lSample2 := int16(buf[10]) | int16(buf[11])<<8
	rSample2 := int16(buf[12]) | int16(buf[13])<<8

	out := 0
	blockCache[out] = lSample2
	out++
	blockCache[out] = rSample2
	out++
	blockCache[out] = lSample1
	out++
	blockCache[out] = rSample1
	out++

	pos := 14
	remaining := blockAlign - 14
	for i := 0; i < remaining; i++ {
		b := buf[pos+i]
		blockCache[out] = parseNibble(b>>4, lPredictor, &lDelta, &lSample1, &lSample2)
		out++
		blockCache[out] = parseNibble(b&0x0F, rPredictor, &rDelta, &rSample1, &rSample2)
		out++
	}
	return blockAlign
}

// DecodeMonoMSADPCM decodes frames starting at startFrame, supporting a
// mid-block start: it locates the containing block, decodes the whole
// block into a scratch buffer, then copies from the requested offset
// onward (spec §4.2, §8 P5).
func DecodeMonoMSADPCM(buf []byte, startFrame int, dst []float32, frames int, format Format) int {
	bsize := monoBlockSize(format.BlockAlign)
	if bsize <= 0 {
		return 0
	}
	var blockCache [512]int16

	decoded := 0
	blockIndex := startFrame / bsize
	midOffset := startFrame % bsize

	for decoded < frames {
		blockStart := blockIndex * format.BlockAlign
		if blockStart+format.BlockAlign > len(buf) {
			break
		}
		decodeMonoMSADPCMBlock(buf[blockStart:blockStart+format.BlockAlign], blockCache[:], format.BlockAlign)

		copyCount := frames - decoded
		if copyCount > bsize-midOffset {
			copyCount = bsize - midOffset
		}
		S16ToF32(dst[decoded:decoded+copyCount], blockCache[midOffset:midOffset+copyCount])

		decoded += copyCount
		midOffset = 0
		blockIndex++
	}
	return decoded
}

// DecodeStereoMSADPCM is the stereo counterpart of DecodeMonoMSADPCM;
// samples are written interleaved L/R.
func DecodeStereoMSADPCM(buf []byte, startFrame int, dst []float32, frames int, format Format) int {
	bsize := stereoBlockSize(format.BlockAlign)
	if bsize <= 0 {
		return 0
	}
	var blockCache [1024]int16

	decoded := 0
	blockIndex := startFrame / bsize
	midOffset := startFrame % bsize

	for decoded < frames {
		blockStart := blockIndex * format.BlockAlign
		if blockStart+format.BlockAlign > len(buf) {
			break
		}
		decodeStereoMSADPCMBlock(buf[blockStart:blockStart+format.BlockAlign], blockCache[:], format.BlockAlign)

		copyCount := frames - decoded
		if copyCount > bsize-midOffset {
			copyCount = bsize - midOffset
		}
		src := blockCache[midOffset*2 : (midOffset+copyCount)*2]
		S16ToF32(dst[decoded*2:decoded*2+copyCount*2], src)

		decoded += copyCount
		midOffset = 0
		blockIndex++
	}
	return decoded
}
