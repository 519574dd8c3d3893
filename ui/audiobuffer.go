package ui

import (
	"errors"
	"io"
	"sync"
)

// frameBytes is one interleaved stereo s16le frame.
const frameBytes = 4

// ErrBufferClosed is returned by Write after Close.
var ErrBufferClosed = errors.New("audio buffer closed")

// AudioRingBuffer is a thread-safe byte ring buffer between the sample
// producer goroutine (Write) and oto's player (Read). Read blocks when
// empty; Write never blocks and drops the oldest whole frames on
// overflow so left and right never swap.
type AudioRingBuffer struct {
	buf      []byte
	readPos  int
	writePos int
	count    int
	capacity int
	mu       sync.Mutex
	cond     *sync.Cond
	closed   bool
}

// NewAudioRingBuffer creates a ring buffer holding capacity bytes, rounded
// down to whole frames (minimum one frame).
func NewAudioRingBuffer(capacity int) *AudioRingBuffer {
	capacity &^= frameBytes - 1
	if capacity < frameBytes {
		capacity = frameBytes
	}
	rb := &AudioRingBuffer{
		buf:      make([]byte, capacity),
		capacity: capacity,
	}
	rb.cond = sync.NewCond(&rb.mu)
	return rb
}

// Write implements io.Writer. A partial trailing frame is discarded.
func (rb *AudioRingBuffer) Write(p []byte) (int, error) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if rb.closed {
		return 0, ErrBufferClosed
	}

	written := len(p)
	p = p[:len(p)&^(frameBytes-1)]
	n := len(p)
	if n == 0 {
		return written, nil
	}

	// Only the newest capacity bytes can survive
	if n > rb.capacity {
		p = p[n-rb.capacity:]
		n = rb.capacity
	}

	if overflow := rb.count + n - rb.capacity; overflow > 0 {
		rb.readPos = (rb.readPos + overflow) % rb.capacity
		rb.count -= overflow
	}

	first := rb.capacity - rb.writePos
	if first >= n {
		copy(rb.buf[rb.writePos:], p)
	} else {
		copy(rb.buf[rb.writePos:], p[:first])
		copy(rb.buf, p[first:])
	}
	rb.writePos = (rb.writePos + n) % rb.capacity
	rb.count += n

	rb.cond.Signal()
	return written, nil
}

// Read implements io.Reader. Blocks until data is available or the buffer
// is closed. Returns io.EOF when closed and empty.
func (rb *AudioRingBuffer) Read(p []byte) (int, error) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	for rb.count == 0 {
		if rb.closed {
			return 0, io.EOF
		}
		rb.cond.Wait()
	}

	n := min(len(p), rb.count)

	first := rb.capacity - rb.readPos
	if first >= n {
		copy(p, rb.buf[rb.readPos:rb.readPos+n])
	} else {
		copy(p, rb.buf[rb.readPos:])
		copy(p[first:], rb.buf[:n-first])
	}
	rb.readPos = (rb.readPos + n) % rb.capacity
	rb.count -= n

	return n, nil
}

// Buffered returns the number of bytes currently in the buffer.
func (rb *AudioRingBuffer) Buffered() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.count
}

// Capacity returns the buffer size in bytes.
func (rb *AudioRingBuffer) Capacity() int {
	return rb.capacity
}

// Clear discards all buffered data.
func (rb *AudioRingBuffer) Clear() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.readPos = 0
	rb.writePos = 0
	rb.count = 0
}

// Close signals shutdown and unblocks any goroutine waiting in Read.
// Buffered data can still be drained.
func (rb *AudioRingBuffer) Close() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.closed = true
	rb.cond.Broadcast()
}
