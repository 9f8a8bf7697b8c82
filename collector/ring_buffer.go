package collector

import "sync"

// RingBuffer keeps the most recent entries up to a fixed capacity. It is safe for concurrent use.
// Playwright page event handlers run on the driver goroutine.
type RingBuffer[T any] struct {
	buffer   []T
	size     uint64
	capacity uint64
	// written counts all entries ever added, including overwritten ones
	written uint64
	mu      sync.RWMutex
}

// NewRingBuffer creates a ring buffer with the given capacity
func NewRingBuffer[T any](capacity uint64) *RingBuffer[T] {
	if capacity == 0 {
		panic("capacity must be greater than 0")
	}

	return &RingBuffer[T]{
		buffer:   make([]T, capacity),
		capacity: capacity,
	}
}

// Add appends an entry, overwriting the oldest one if the buffer is full
func (rb *RingBuffer[T]) Add(entry T) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.buffer[rb.written%rb.capacity] = entry
	rb.written++

	if rb.size < rb.capacity {
		rb.size++
	}
}

// Tail returns the most recent n entries, oldest first
func (rb *RingBuffer[T]) Tail(n uint64) []T {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	count := min(n, rb.size)
	if count == 0 {
		return []T{}
	}

	result := make([]T, count)
	start := rb.written - count
	for i := uint64(0); i < count; i++ {
		result[i] = rb.buffer[(start+i)%rb.capacity]
	}

	return result
}

// Size returns the current number of entries in the buffer
func (rb *RingBuffer[T]) Size() uint64 {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.size
}

// Dropped returns how many entries were overwritten because the buffer was full
func (rb *RingBuffer[T]) Dropped() uint64 {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.written - rb.size
}

// Capacity returns the maximum capacity of the buffer
func (rb *RingBuffer[T]) Capacity() uint64 {
	return rb.capacity
}
