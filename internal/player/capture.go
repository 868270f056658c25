// ABOUTME: Background sample capture bridge feeding the visualizer
// ABOUTME: Drains the analysis stream at roughly real-time pace, downmixed to mono
package player

import (
	"context"
	"time"

	"github.com/gattoplayer/gatto/internal/audio"
	"github.com/gattoplayer/gatto/internal/visualizer"
)

const (
	// captureChunkFrames is the number of frames pulled from the analysis
	// stream per iteration.
	captureChunkFrames = 1024

	// minCapturePause bounds the pacing sleep from below so a bogus
	// sample rate cannot spin the loop.
	minCapturePause = 10 * time.Millisecond
)

// captureSamples runs as one goroutine per playback session. It pulls
// fixed-size chunks from the analysis stream, downmixes them to mono and
// appends them into buf, sleeping between chunks to approximate the
// audible playback rate. It terminates when the stream is exhausted,
// when it errors, or when ctx is cancelled on session replacement —
// whichever comes first. Failures never propagate: the analyzer simply
// decays to silence when no new samples arrive.
func captureSamples(ctx context.Context, src audio.Stream, buf *visualizer.Buffer) {
	channels := src.Channels()
	if channels < 1 {
		return
	}

	pause := minCapturePause
	if rate := src.SampleRate(); rate > 0 {
		if computed := captureChunkFrames * time.Second / time.Duration(rate); computed > pause {
			pause = computed
		}
	}

	chunk := make([]float64, captureChunkFrames*channels)

	for {
		n, err := src.Read(chunk)
		if n == 0 {
			return
		}
		buf.Append(downmix(chunk[:n], channels))
		if err != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(pause):
		}
	}
}

// downmix averages each frame's channel values into one mono sample,
// preserving frame order. Mono input passes through unchanged.
func downmix(samples []float64, channels int) []float64 {
	if channels == 1 {
		out := make([]float64, len(samples))
		copy(out, samples)
		return out
	}
	frames := len(samples) / channels
	out := make([]float64, frames)
	for f := 0; f < frames; f++ {
		var sum float64
		for ch := 0; ch < channels; ch++ {
			sum += samples[f*channels+ch]
		}
		out[f] = sum / float64(channels)
	}
	return out
}
