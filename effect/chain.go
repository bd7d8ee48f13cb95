// SPDX-License-Identifier: EPL-2.0

package effect

import (
	"fmt"
	"sync"
)

type slot struct {
	desc    Descriptor
	inPlace bool

	paramBlob []byte
	dirty     bool
}

// Chain runs a voice's ordered list of effects once per tick, implementing
// the format/buffer bookkeeping of §4.6 so individual Effect
// implementations only ever see a flat Process call.
type Chain struct {
	sampleRate    int
	inputChannels int
	slots         []slot
	scratch       []float32

	mu      sync.Mutex
	lastErr error
}

// NewChain creates an effect chain whose initial buffer (before any
// effect runs) has inputChannels channels at sampleRate.
func NewChain(inputChannels, sampleRate int) *Chain {
	return &Chain{inputChannels: inputChannels, sampleRate: sampleRate}
}

// AddEffect appends an effect to the end of the chain. inPlace is computed
// immediately, comparing the new effect's input channel count (the
// previous slot's output, or the chain's input channels if this is the
// first slot) against its declared OutputChannels.
func (c *Chain) AddEffect(desc Descriptor) {
	inChannels := c.inputChannels
	if n := len(c.slots); n > 0 {
		inChannels = c.slots[n-1].desc.OutputChannels
	}
	c.slots = append(c.slots, slot{
		desc:    desc,
		inPlace: inChannels == desc.OutputChannels,
	})
}

// SetParameters marks slot i's parameter blob dirty; it is delivered to
// the effect on the next Process call and then cleared, coalescing any
// calls made between ticks.
func (c *Chain) SetParameters(i int, blob []byte) {
	c.slots[i].paramBlob = blob
	c.slots[i].dirty = true
}

// Len reports the number of effects in the chain.
func (c *Chain) Len() int { return len(c.slots) }

// OutputChannels reports the channel count Process will return for the
// chain as currently configured: the last slot's declared OutputChannels,
// or the chain's input channel count if it has no slots.
func (c *Chain) OutputChannels() int {
	if n := len(c.slots); n > 0 {
		return c.slots[n-1].desc.OutputChannels
	}
	return c.inputChannels
}

// LastError returns and clears the most recent effect failure recorded by
// Process, surfaced out-of-band rather than on Process's own return path
// so one failing effect cannot wedge the voice update (§7.3).
func (c *Chain) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.lastErr
	c.lastErr = nil
	return err
}

func (c *Chain) recordFailure(err error) {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
}

// Process runs buf (frames*c.inputChannels floats) through every slot in
// order and returns the final buffer together with its channel count.
// The returned slice aliases either buf or the chain's own scratch
// buffer — never a third allocation, regardless of chain length.
func (c *Chain) Process(buf []float32, frames int) ([]float32, int) {
	srcChannels := c.inputChannels
	srcBuf := buf
	dstChannels := srcChannels
	dstBuf := buf
	dstIsB0 := true

	for i := range c.slots {
		s := &c.slots[i]

		if !s.inPlace {
			dstChannels = s.desc.OutputChannels
			needed := frames * dstChannels
			if dstIsB0 {
				if len(c.scratch) < needed {
					c.scratch = make([]float32, needed)
				}
				dstBuf = c.scratch[:needed]
				dstIsB0 = false
			} else {
				dstBuf = buf
				dstIsB0 = true
			}
		}

		if s.dirty {
			s.desc.Effect.SetParameters(s.paramBlob)
			s.dirty = false
		}

		inLock := []LockParams{{Format: Format{Channels: srcChannels, SampleRate: c.sampleRate}, MaxFrameCount: frames}}
		outLock := []LockParams{{Format: Format{Channels: dstChannels, SampleRate: c.sampleRate}, MaxFrameCount: frames}}

		if err := s.desc.Effect.LockForProcess(inLock, outLock); err != nil {
			c.recordFailure(fmt.Errorf("effect %d: lock for process: %w", i, err))
			zero(dstBuf[:frames*dstChannels])
			srcChannels = dstChannels
			srcBuf = dstBuf
			continue
		}

		inBuf := []Buffer{{Data: srcBuf[:frames*srcChannels], Valid: true, FrameCount: frames}}
		outBuf := []Buffer{{Data: dstBuf[:frames*dstChannels], Valid: true, FrameCount: frames}}

		if err := s.desc.Effect.Process(inBuf, outBuf, s.desc.InitialState); err != nil {
			c.recordFailure(fmt.Errorf("effect %d: process: %w", i, err))
			zero(dstBuf[:frames*dstChannels])
		}

		s.desc.Effect.UnlockForProcess()

		srcChannels = dstChannels
		srcBuf = dstBuf
	}

	return srcBuf, srcChannels
}

func zero(buf []float32) {
	for i := range buf {
		buf[i] = 0
	}
}
