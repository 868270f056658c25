// ABOUTME: Sample stream abstraction for decoded audio
// ABOUTME: Defines the lazy normalized-float sample source shared by playback and analysis
package audio

import (
	"io"
	"time"
)

// Stream is a one-pass source of decoded PCM samples, interleaved by
// channel and normalized to [-1, 1]. Streams cannot be rewound; seeking
// means opening a fresh stream and discarding leading frames.
type Stream interface {
	// Read fills p with up to len(p) samples and returns the number read.
	// It returns io.EOF once the stream is exhausted.
	Read(p []float64) (int, error)

	// Channels returns the number of interleaved channels per frame.
	Channels() int

	// SampleRate returns frames per second.
	SampleRate() int

	// Duration returns the total track length when the container reports
	// one. Not all formats do.
	Duration() (time.Duration, bool)
}

// SkipFrames consumes and discards n frames from s. Reaching end of
// stream while skipping is not an error; the stream is simply left
// exhausted.
func SkipFrames(s Stream, n int64) error {
	if n <= 0 {
		return nil
	}
	remaining := n * int64(s.Channels())
	scratch := make([]float64, 4096)
	for remaining > 0 {
		want := int64(len(scratch))
		if remaining < want {
			want = remaining
		}
		read, err := s.Read(scratch[:want])
		remaining -= int64(read)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if read == 0 {
			return nil
		}
	}
	return nil
}
