// SPDX-License-Identifier: EPL-2.0

package engine

import "testing"

func TestDoubleToFixedRoundTrip(t *testing.T) {
	t.Parallel()

	cases := []float64{0, 0.5, 1.0, 0.25, 0.999999}
	for _, v := range cases {
		fixed := doubleToFixed(v)
		got := fixedToDouble(fixed & fixedFractionMask)
		if diff := got - (v - float64(int64(v))); diff > 1e-6 || diff < -1e-6 {
			t.Errorf("doubleToFixed/fixedToDouble(%v) fractional round trip = %v", v, got)
		}
	}
}

func TestComputeResampleStepUnityAtMatchingRatesAndRatio(t *testing.T) {
	t.Parallel()

	step := computeResampleStep(1.0, 8000, 8000)
	if step != fixedOne {
		t.Fatalf("computeResampleStep(1.0, 8000, 8000) = %d, want fixedOne (%d)", step, fixedOne)
	}
}

func TestComputeResampleStepHalvesAtHalfRatio(t *testing.T) {
	t.Parallel()

	step := computeResampleStep(0.5, 8000, 8000)
	want := fixedOne / 2
	if step != want {
		t.Fatalf("computeResampleStep(0.5, ...) = %d, want %d", step, want)
	}
}

func TestResampleLinearUnityStepCopiesThroughInterpolation(t *testing.T) {
	t.Parallel()

	src := []float32{1, 2, 3, 4, 5}
	dst := make([]float32, 4)
	resampleLinear(dst, src, 1, 4, 0, fixedOne)

	want := []float32{1, 2, 3, 4}
	for i, v := range dst {
		if v != want[i] {
			t.Errorf("dst[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestResampleLinearHalfwayInterpolatesMidpoint(t *testing.T) {
	t.Parallel()

	src := []float32{0, 10, 20, 30}
	dst := make([]float32, 2)
	halfStep := fixedOne / 2
	resampleLinear(dst, src, 1, 2, 0, halfStep)

	// frame 0: exact sample 0 -> 0
	// frame 1: step has only advanced the phase to 0.5, not yet past a
	// whole source frame, so it is still halfway between samples 0 and 1
	if dst[0] != 0 {
		t.Errorf("dst[0] = %v, want 0", dst[0])
	}
	if diff := dst[1] - 5; diff > 0.01 || diff < -0.01 {
		t.Errorf("dst[1] = %v, want ~5", dst[1])
	}
}

func TestResampleLinearStereoInterleavesChannelsIndependently(t *testing.T) {
	t.Parallel()

	// L: 0,10,20  R: 100,110,120
	src := []float32{0, 100, 10, 110, 20, 120}
	dst := make([]float32, 4)
	resampleLinear(dst, src, 2, 2, 0, fixedOne)

	want := []float32{0, 100, 10, 110}
	for i, v := range dst {
		if v != want[i] {
			t.Errorf("dst[%d] = %v, want %v", i, v, want[i])
		}
	}
}
