// SPDX-License-Identifier: EPL-2.0

// Package filter implements the engine's per-voice state-variable filter:
// a single digital filter stage that simultaneously produces low-pass,
// high-pass, band-pass and notch outputs from shared running state,
// selectable per voice without recomputing the state.
//
// The difference equations (ported from FAudio's FilterVoice routine) are:
//
//	L(n) = L(n-1) + F·B(n-1)
//	H(n) = x(n) - L(n) - (1/Q)·B(n-1)
//	B(n) = F·H(n) + B(n-1)
//	N(n) = L(n) + H(n)
//
// where F = Parameters.Frequency = 2·sin(π·cutoff/sampleRate) and
// 1/Q = Parameters.OneOverQ. State is kept per output channel and persists
// across ticks until Reset is called.
package filter
