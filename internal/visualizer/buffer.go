// ABOUTME: Bounded shared sample buffer between capture bridge and analyzer
// ABOUTME: Single writer appends, single reader drains; a mutex guards mutation
package visualizer

import "sync"

const (
	// bufferCap is the soft capacity of the shared buffer. When an append
	// pushes past it, the oldest bufferTrim samples are discarded so the
	// analyzer works on recent history instead of a growing backlog.
	bufferCap  = 8192
	bufferTrim = 4096
)

// Buffer holds mono samples produced by the capture bridge and consumed
// by the spectrum analyzer. The bridge is the sole writer and the
// analyzer the sole reader, so plain mutual exclusion is all the
// coordination it needs.
type Buffer struct {
	mu      sync.Mutex
	samples []float64
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append adds samples to the back, trimming from the front once the
// capacity threshold is exceeded.
func (b *Buffer) Append(samples []float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples = append(b.samples, samples...)
	if len(b.samples) > bufferCap {
		b.samples = append(b.samples[:0], b.samples[bufferTrim:]...)
	}
}

// Take removes and returns up to max samples from the front, oldest
// first.
func (b *Buffer) Take(max int) []float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := max
	if n > len(b.samples) {
		n = len(b.samples)
	}
	out := make([]float64, n)
	copy(out, b.samples[:n])
	b.samples = append(b.samples[:0], b.samples[n:]...)
	return out
}

// Len returns the number of buffered samples.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.samples)
}

// Clear drops all buffered samples.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples = b.samples[:0]
}
