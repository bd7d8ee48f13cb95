// SPDX-License-Identifier: EPL-2.0

package engine

import "github.com/ik5/xaengine/utils"

// pushResampler is a submix voice's "opaque resampler handle" (§3): a
// fixed source/destination rate cubic resampler in the same ring-buffer
// shape as the asset pipeline's pull-based Resampler, but driven by
// whatever finite slice of input the current tick produced instead of
// pulling from a Source. Unlike the pull-based resampler it never reports
// end-of-stream — a submix's input cache is refilled every tick rather
// than drained once, so running out of input mid-call means "silence for
// the rest of this period", handled by holding the last known frame
// rather than by an error the caller would have to special-case away.
type pushResampler struct {
	ratio    float64 // srcRate / dstRate
	channels int

	frames   [4][]float32
	hasFrame [4]bool
	pos      float64

	filterState []float32
	useFilter   bool
	filterAlpha float32
}

// newPushResampler creates a resampler from srcRate to dstRate for the
// given channel count. When srcRate == dstRate, Resample still goes
// through the cubic path rather than a memcpy fast path, since the
// pluggable-resampler contract (§3) allows it to be a no-op but does not
// require one; callers that want the fast path can compare rates
// themselves before calling Resample.
func newPushResampler(srcRate, dstRate, channels int) *pushResampler {
	ratio := float64(srcRate) / float64(dstRate)
	useFilter := ratio > 1.0

	r := &pushResampler{
		ratio:       ratio,
		channels:    channels,
		useFilter:   useFilter,
		filterAlpha: 0.5,
		filterState: make([]float32, channels),
	}
	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}
	return r
}

// reset zeros all resampler state, used when a submix's input format
// changes.
func (r *pushResampler) reset() {
	r.pos = 0
	for i := range r.frames {
		for c := range r.frames[i] {
			r.frames[i][c] = 0
		}
		r.hasFrame[i] = false
	}
	for c := range r.filterState {
		r.filterState[c] = 0
	}
}

// Resample produces exactly len(dst)/channels output frames into dst,
// consuming from src (an interleaved buffer of input-rate frames) as
// needed. When src runs out before dst is filled, the most recent input
// frame is held constant for the remainder.
func (r *pushResampler) Resample(dst, src []float32) {
	srcFrames := 0
	if r.channels > 0 {
		srcFrames = len(src) / r.channels
	}
	srcIdx := 0

	fetch := func() {
		copy(r.frames[0], r.frames[1])
		copy(r.frames[1], r.frames[2])
		copy(r.frames[2], r.frames[3])
		r.hasFrame[0] = r.hasFrame[1]
		r.hasFrame[1] = r.hasFrame[2]
		r.hasFrame[2] = r.hasFrame[3]

		if srcIdx < srcFrames {
			copy(r.frames[3], src[srcIdx*r.channels:(srcIdx+1)*r.channels])
			r.hasFrame[3] = true
			srcIdx++

			if r.useFilter {
				for c := 0; c < r.channels; c++ {
					r.frames[3][c] = r.filterAlpha*r.frames[3][c] + (1-r.filterAlpha)*r.filterState[c]
					r.filterState[c] = r.frames[3][c]
				}
			}
		} else {
			// Underrun: hold the last known frame rather than signal EOF.
			r.hasFrame[3] = r.hasFrame[2]
		}
	}

	if !r.hasFrame[1] {
		for i := 0; i < 4; i++ {
			if srcIdx < srcFrames {
				copy(r.frames[i], src[srcIdx*r.channels:(srcIdx+1)*r.channels])
				r.hasFrame[i] = true
				srcIdx++
			} else if i > 0 {
				copy(r.frames[i], r.frames[i-1])
				r.hasFrame[i] = r.hasFrame[i-1]
			}
		}
	}

	framesNeeded := 0
	if r.channels > 0 {
		framesNeeded = len(dst) / r.channels
	}

	for written := 0; written < framesNeeded; written++ {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			fetch()
		}

		alpha := float32(r.pos)
		for c := 0; c < r.channels; c++ {
			var y0, y1, y2, y3 float32
			if r.hasFrame[0] {
				y0 = r.frames[0][c]
			} else {
				y0 = r.frames[1][c]
			}
			y1 = r.frames[1][c]
			y2 = r.frames[2][c]
			if r.hasFrame[3] {
				y3 = r.frames[3][c]
			} else {
				y3 = r.frames[2][c]
			}
			dst[written*r.channels+c] = utils.CubicInterpolate(y0, y1, y2, y3, alpha)
		}

		r.pos += r.ratio
	}
}
