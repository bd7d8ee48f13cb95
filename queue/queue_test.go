// SPDX-License-Identifier: EPL-2.0

package queue

import "testing"

func TestQueueSubmitOrderPreserved(t *testing.T) {
	t.Parallel()

	var q Queue
	for i := 0; i < 3; i++ {
		q.Submit(AudioBuffer{Context: i})
	}

	if got := q.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}

	for i := 0; i < 3; i++ {
		head := q.Head()
		if head == nil {
			t.Fatalf("Head() = nil at step %d", i)
		}
		if head.Buffer.Context != i {
			t.Fatalf("Head().Buffer.Context = %v, want %d", head.Buffer.Context, i)
		}
		q.Advance()
	}

	if q.Head() != nil {
		t.Fatal("Head() should be nil after draining the queue")
	}
}

func TestQueueFlushKeepsHead(t *testing.T) {
	t.Parallel()

	var q Queue
	q.Submit(AudioBuffer{Context: "playing"})
	q.Submit(AudioBuffer{Context: "pending-a"})
	q.Submit(AudioBuffer{Context: "pending-b"})

	q.Flush()

	if got := q.Len(); got != 1 {
		t.Fatalf("Len() after Flush = %d, want 1", got)
	}
	if q.Head().Buffer.Context != "playing" {
		t.Fatalf("Head survived Flush as %v, want %q", q.Head().Buffer.Context, "playing")
	}

	q.Advance()
	if q.Head() != nil {
		t.Fatal("queue should be empty once the surviving head is advanced past")
	}
}

func TestQueueFlushAtLoopPointClearsLoopCount(t *testing.T) {
	t.Parallel()

	var q Queue
	q.Submit(AudioBuffer{LoopCount: LoopInfinite, LoopBegin: 10, LoopLength: 20})
	q.Submit(AudioBuffer{Context: "dropped"})

	q.FlushAtLoopPoint()

	if got := q.Len(); got != 1 {
		t.Fatalf("Len() after FlushAtLoopPoint = %d, want 1", got)
	}
	if q.Head().Buffer.LoopCount != 0 {
		t.Fatalf("LoopCount = %d, want 0 after FlushAtLoopPoint", q.Head().Buffer.LoopCount)
	}
}

func TestQueueFlushOnEmptyQueueIsNoOp(t *testing.T) {
	t.Parallel()

	var q Queue
	q.Flush()
	q.FlushAtLoopPoint()
	if q.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", q.Len())
	}
}

func TestAudioBufferRegionHelpers(t *testing.T) {
	t.Parallel()

	b := AudioBuffer{
		Flags:      FlagEndOfStream,
		PlayBegin:  10,
		PlayLength: 90,
		LoopBegin:  20,
		LoopLength: 30,
	}
	if !b.EndOfStream() {
		t.Error("EndOfStream() = false, want true")
	}
	if got := b.PlayEnd(); got != 100 {
		t.Errorf("PlayEnd() = %d, want 100", got)
	}
	if got := b.LoopEnd(); got != 50 {
		t.Errorf("LoopEnd() = %d, want 50", got)
	}
}
