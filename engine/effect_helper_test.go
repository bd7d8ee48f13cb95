// SPDX-License-Identifier: EPL-2.0

package engine

import "github.com/ik5/xaengine/effect"

// noopEffect passes its input through unchanged; used across engine
// tests to exercise effect-chain wiring without caring what the effect
// itself does.
type noopEffect struct{ channels int }

func (e *noopEffect) AddRef() int32                                  { return 1 }
func (e *noopEffect) Release() int32                                 { return 0 }
func (e *noopEffect) Initialize(data []byte) error                   { return nil }
func (e *noopEffect) LockForProcess(inputs, outputs []effect.LockParams) error { return nil }
func (e *noopEffect) UnlockForProcess()                              {}

func (e *noopEffect) Process(inputs, outputs []effect.Buffer, enabled bool) error {
	copy(outputs[0].Data, inputs[0].Data)
	return nil
}

func (e *noopEffect) CalcInputFrames(n int) int  { return n }
func (e *noopEffect) CalcOutputFrames(n int) int { return n }
func (e *noopEffect) SetParameters(blob []byte)  {}
func (e *noopEffect) GetParameters(blob []byte)  {}

func newNoopEffectDescriptor(channels int) effect.Descriptor {
	return effect.Descriptor{
		Effect:         &noopEffect{channels: channels},
		OutputChannels: channels,
		InitialState:   true,
	}
}
