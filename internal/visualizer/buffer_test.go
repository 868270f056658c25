// ABOUTME: Tests for the bounded shared sample buffer
// ABOUTME: Covers FIFO draining, capacity trimming, and clearing
package visualizer

import "testing"

func TestBufferTakeIsFIFO(t *testing.T) {
	b := NewBuffer()
	b.Append([]float64{1, 2, 3})
	b.Append([]float64{4, 5})

	got := b.Take(4)
	want := []float64{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if b.Len() != 1 {
		t.Errorf("expected 1 remaining sample, got %d", b.Len())
	}
	if rest := b.Take(10); len(rest) != 1 || rest[0] != 5 {
		t.Errorf("expected remaining [5], got %v", rest)
	}
}

func TestBufferTrimsOldestHalf(t *testing.T) {
	b := NewBuffer()
	samples := make([]float64, bufferCap)
	for i := range samples {
		samples[i] = float64(i)
	}
	b.Append(samples)
	if b.Len() != bufferCap {
		t.Fatalf("expected len %d at capacity, got %d", bufferCap, b.Len())
	}

	// One more sample pushes past the cap: the oldest bufferTrim go.
	b.Append([]float64{-1})
	wantLen := bufferCap + 1 - bufferTrim
	if b.Len() != wantLen {
		t.Fatalf("expected len %d after trim, got %d", wantLen, b.Len())
	}
	head := b.Take(1)
	if head[0] != float64(bufferTrim) {
		t.Errorf("expected oldest surviving sample %v, got %v", float64(bufferTrim), head[0])
	}
}

func TestBufferClear(t *testing.T) {
	b := NewBuffer()
	b.Append([]float64{1, 2, 3})
	b.Clear()
	if b.Len() != 0 {
		t.Errorf("expected empty buffer after clear, got len %d", b.Len())
	}
}
