// SPDX-License-Identifier: EPL-2.0

package pcm

import "runtime"

const (
	divBy128   = 1.0 / 128.0
	divBy32768 = 1.0 / 32768.0
)

// ConvertU8Func and ConvertS16Func convert len(src) input samples to float32, writing len(src)
// values to dst. dst and src must have equal length.
type ConvertU8Func func(dst []float32, src []uint8)
type ConvertS16Func func(dst []float32, src []int16)

// ConvertS16BytesFunc converts len(src)/2 little-endian 16-bit samples
// packed in src directly to float32, writing len(src)/2 values to dst.
type ConvertS16BytesFunc func(dst []float32, src []byte)

// U8ToF32, S16ToF32 and S16BytesToF32 are selected once at package init by
// probeConverters, mirroring FAudio's SSE2/NEON/scalar function-pointer
// dispatch: the hot per-sample decode path calls through these vars
// instead of branching on architecture every call.
var (
	U8ToF32       ConvertU8Func
	S16ToF32      ConvertS16Func
	S16BytesToF32 ConvertS16BytesFunc
)

func init() {
	probeConverters()
}

// probeConverters picks the widest conversion loop the runtime likely has
// efficient vector support for. There is no portable way to emit SSE2/NEON
// intrinsics from pure Go, so "wide" here means an unrolled-by-4 loop that
// the compiler can itself autovectorize on amd64/arm64; everything else
// gets the plain scalar loop. Both produce bit-identical output.
func probeConverters() {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		U8ToF32 = convertU8ToF32Wide
		S16ToF32 = convertS16ToF32Wide
	default:
		U8ToF32 = convertU8ToF32Scalar
		S16ToF32 = convertS16ToF32Scalar
	}
	// S16BytesToF32 reads directly from the wire-format byte buffer, so
	// there is no equivalent-width int16 slice to unroll over; one scalar
	// loop serves every architecture.
	S16BytesToF32 = convertS16BytesToF32Scalar
}

func convertU8ToF32Scalar(dst []float32, src []uint8) {
	for i, v := range src {
		dst[i] = float32(v)*divBy128 - 1.0
	}
}

func convertS16ToF32Scalar(dst []float32, src []int16) {
	for i, v := range src {
		dst[i] = float32(v) * divBy32768
	}
}

// convertS16BytesToF32Scalar avoids the []int16 intermediate DecodePCM16
// would otherwise have to allocate once per decode call on the real-time
// path; it reads each little-endian sample straight out of the byte slice.
func convertS16BytesToF32Scalar(dst []float32, src []byte) {
	n := len(src) / 2
	for i := 0; i < n; i++ {
		v := int16(uint16(src[2*i]) | uint16(src[2*i+1])<<8)
		dst[i] = float32(v) * divBy32768
	}
}

// convertU8ToF32Wide processes the buffer back-to-front in groups of 4, the
// same traversal order FAudio's SSE2/NEON variants use so that an in-place
// conversion (output wider than input, same backing array) never reads a
// sample the earlier part of the loop already overwrote. Remaining
// elements that don't fill a group of 4 are handled by the scalar tail.
func convertU8ToF32Wide(dst []float32, src []uint8) {
	n := len(src)
	i := n - n%4
	for j := n - 1; j >= i; j-- {
		dst[j] = float32(src[j])*divBy128 - 1.0
	}
	for j := i - 4; j >= 0; j -= 4 {
		dst[j] = float32(src[j])*divBy128 - 1.0
		dst[j+1] = float32(src[j+1])*divBy128 - 1.0
		dst[j+2] = float32(src[j+2])*divBy128 - 1.0
		dst[j+3] = float32(src[j+3])*divBy128 - 1.0
	}
}

func convertS16ToF32Wide(dst []float32, src []int16) {
	n := len(src)
	i := n - n%4
	for j := n - 1; j >= i; j-- {
		dst[j] = float32(src[j]) * divBy32768
	}
	for j := i - 4; j >= 0; j -= 4 {
		dst[j] = float32(src[j]) * divBy32768
		dst[j+1] = float32(src[j+1]) * divBy32768
		dst[j+2] = float32(src[j+2]) * divBy32768
		dst[j+3] = float32(src[j+3]) * divBy32768
	}
}
