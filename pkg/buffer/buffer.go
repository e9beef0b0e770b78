// Package buffer provides the single growable byte buffer the protocol
// engine uses for both request serialization and response reading. It never
// spills to disk and never shrinks: it is cleared and reused at the start of
// each phase.
package buffer

import "github.com/warrenjitsing/gorawhttp/pkg/constants"

// Buffer is a contiguous byte region that grows by doubling. It is not safe
// for concurrent use; the engine that owns one drives it from a single
// goroutine.
type Buffer struct {
	data []byte
}

// New returns a Buffer with the default initial capacity.
func New() *Buffer {
	return NewWithCapacity(constants.InitialBufferCapacity)
}

// NewWithCapacity returns a Buffer with at least the given initial capacity.
func NewWithCapacity(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{data: make([]byte, 0, capacity)}
}

// Reset empties the buffer without releasing its backing array.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

// Bytes returns the buffer's current contents. The returned slice is only
// valid until the next mutating call on the buffer.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Cap returns the buffer's current backing capacity.
func (b *Buffer) Cap() int {
	return cap(b.data)
}

// Grow ensures at least n bytes of spare capacity past the current length,
// growing by doubling (or to exactly fit n if doubling isn't enough) with a
// floor of constants.MinReadSpare so small buffers don't grow one byte at a
// time.
func (b *Buffer) Grow(n int) {
	if cap(b.data)-len(b.data) >= n {
		return
	}
	newCap := cap(b.data) * 2
	if newCap < len(b.data)+n {
		newCap = len(b.data) + n
	}
	if newCap < constants.MinReadSpare {
		newCap = constants.MinReadSpare
	}
	grown := make([]byte, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
}

// Write appends p to the buffer, growing as needed. It always succeeds;
// the error return exists only to satisfy io.Writer.
func (b *Buffer) Write(p []byte) (int, error) {
	b.Grow(len(p))
	b.data = append(b.data, p...)
	return len(p), nil
}

// WriteString appends s to the buffer.
func (b *Buffer) WriteString(s string) (int, error) {
	return b.Write([]byte(s))
}

// Spare ensures at least n bytes of spare capacity and returns a slice over
// that spare region, sized to the full available capacity. The caller reads
// into this slice and then calls Commit with however many bytes were
// actually filled.
func (b *Buffer) Spare(n int) []byte {
	b.Grow(n)
	return b.data[len(b.data):cap(b.data)]
}

// Commit extends the buffer's logical length by n bytes, following a read
// into the slice returned by Spare.
func (b *Buffer) Commit(n int) {
	b.data = b.data[:len(b.data)+n]
}

// Clone returns an independent copy of the buffer's current contents.
func (b *Buffer) Clone() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}
