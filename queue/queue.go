// SPDX-License-Identifier: EPL-2.0

package queue

import "sync"

// Queue is a per-source-voice FIFO of Entry values, mutex-protected so
// client goroutines can submit or flush buffers while the mixer thread
// walks the head entry during a tick. It mirrors the append-at-tail,
// remove-by-identity shape of FAudio's LinkedList helpers, specialized to
// a singly-linked FIFO instead of a generic list.
type Queue struct {
	mu   sync.Mutex
	head *Entry
	tail *Entry
	len  int
}

// Submit appends buf to the tail of the queue. Buffers are observed by the
// mixer in submission order.
func (q *Queue) Submit(buf AudioBuffer) {
	q.mu.Lock()
	defer q.mu.Unlock()

	e := &Entry{Buffer: buf}
	if q.tail == nil {
		q.head = e
		q.tail = e
	} else {
		q.tail.next = e
		q.tail = e
	}
	q.len++
}

// Flush drops every queued buffer except the currently-playing head, so a
// source voice already mid-playback keeps producing output from its
// current buffer but discards everything queued behind it.
func (q *Queue) Flush() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == nil {
		return
	}
	q.head.next = nil
	q.tail = q.head
	q.len = 1
}

// FlushAtLoopPoint behaves like Flush, but additionally clears the head
// buffer's loop count so that once its current loop iteration (or, if it
// isn't looping, its play region) finishes, it does not loop again —
// atomic with the decode step's own loop-end handling so a flush issued
// mid-loop can only ever cut the tail of the loop short, never corrupt it
// mid-iteration.
func (q *Queue) FlushAtLoopPoint() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == nil {
		return
	}
	q.head.next = nil
	q.tail = q.head
	q.len = 1
	q.head.Buffer.LoopCount = 0
}

// Head returns the entry currently being consumed, or nil if the queue is
// empty.
func (q *Queue) Head() *Entry {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.head
}

// Advance drops the head entry once it has been fully consumed, exposing
// the next entry (if any) as the new head.
func (q *Queue) Advance() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == nil {
		return
	}
	q.head = q.head.next
	if q.head == nil {
		q.tail = nil
	}
	q.len--
}

// Len reports the number of buffers currently queued, including the head.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.len
}
