// Package ringbuf implements the single-producer/single-consumer byte ring
// buffer the worker and bridge exchange messages over (spec.md §4.2),
// translated field-for-field from original_source/src/sync.h's
// SyncRingBuffer<size>.
package ringbuf

import (
	"sync"
	"time"
)

// Ring is a fixed-capacity byte ring buffer with exactly one writer thread
// and one reader thread. Lock/Unlock bracket one complete logical message;
// the writer must never let an unlock boundary fall mid-message (spec.md
// §4.2 invariants).
type Ring struct {
	mu       sync.Mutex
	cond     *sync.Cond
	data     []byte
	readPos  int
	writePos int
}

// New allocates a ring buffer of the given byte capacity.
func New(capacity int) *Ring {
	r := &Ring{data: make([]byte, capacity)}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// Lock acquires the buffer's mutex. Callers bracket one full message
// between Lock and Unlock.
func (r *Ring) Lock() {
	r.mu.Lock()
}

// Unlock releases the buffer's mutex and broadcasts on the condition
// variable. LockWaitRead does not wait on it; it polls with a sleep.
func (r *Ring) Unlock() {
	r.mu.Unlock()
	r.cond.Broadcast()
}

// CanRead reports whether at least one unread byte is available. Caller
// must hold the lock.
func (r *Ring) CanRead() bool {
	return r.readPos != r.writePos
}

// LockWaitRead blocks, polling at 1/60s intervals like the original's
// platform::sleep cadence, until at least one byte is readable, then
// returns with the lock held (spec.md §4.2: "polls with a short sleep
// until at least one byte is readable").
func (r *Ring) LockWaitRead() {
	for {
		r.mu.Lock()
		if r.CanRead() {
			return
		}
		r.mu.Unlock()
		time.Sleep(time.Second / 60)
	}
}

// Write copies p into the buffer at the current write position, splitting
// across the wrap boundary if needed, and advances write position. Caller
// must hold the lock and must not overflow the reader's unread region
// (spec.md §4.2: "writer is responsible for not overflowing").
func (r *Ring) Write(p []byte) {
	n := len(r.data)
	writeEnd := r.writePos + len(p)
	if writeEnd <= n {
		copy(r.data[r.writePos:writeEnd], p)
		r.writePos = writeEnd % n
	} else {
		partition := n - r.writePos
		copy(r.data[r.writePos:], p[:partition])
		r.writePos = writeEnd - n
		copy(r.data[:r.writePos], p[partition:])
	}
}

// Read fills p from the buffer at the current read position, splitting
// across the wrap boundary if needed, and advances read position. Caller
// must hold the lock.
func (r *Ring) Read(p []byte) {
	n := len(r.data)
	if len(p) == 0 {
		return
	}
	readEnd := r.readPos + len(p)
	if readEnd <= n {
		copy(p, r.data[r.readPos:readEnd])
		r.readPos = readEnd % n
	} else {
		partition := n - r.readPos
		copy(p, r.data[r.readPos:])
		r.readPos = readEnd - n
		copy(p[partition:], r.data[:r.readPos])
	}
}

// Length returns the number of unread bytes. Caller must hold the lock.
func (r *Ring) Length() int {
	if r.readPos <= r.writePos {
		return r.writePos - r.readPos
	}
	return r.writePos + len(r.data) - r.readPos
}

// Capacity returns the buffer's total byte capacity.
func (r *Ring) Capacity() int {
	return len(r.data)
}
