// ABOUTME: Linear-interpolation resampling stream wrapper
// ABOUTME: Converts a stream's sample rate to match the fixed device rate
package audio

import (
	"io"
	"time"
)

// resampledStream wraps a Stream and produces samples at a different rate
// using linear interpolation between adjacent source frames.
type resampledStream struct {
	src        Stream
	channels   int
	targetRate int
	ratio      float64 // source frames advanced per output frame
	pos        float64 // fractional frame position into buf
	buf        []float64
	srcDone    bool
}

// Resample returns a view of src at targetRate. If the rates already
// match, src is returned unchanged.
func Resample(src Stream, targetRate int) Stream {
	if src.SampleRate() == targetRate || src.SampleRate() <= 0 || targetRate <= 0 {
		return src
	}
	return &resampledStream{
		src:        src,
		channels:   src.Channels(),
		targetRate: targetRate,
		ratio:      float64(src.SampleRate()) / float64(targetRate),
	}
}

func (r *resampledStream) Channels() int   { return r.channels }
func (r *resampledStream) SampleRate() int { return r.targetRate }

func (r *resampledStream) Duration() (time.Duration, bool) {
	return r.src.Duration()
}

func (r *resampledStream) Read(p []float64) (int, error) {
	out := 0
	for out+r.channels <= len(p) {
		// Interpolation needs the frame at floor(pos) and its successor.
		for !r.srcDone && len(r.buf)/r.channels < int(r.pos)+2 {
			r.fill()
		}
		idx := int(r.pos)
		if idx+1 >= len(r.buf)/r.channels {
			break
		}
		frac := r.pos - float64(idx)
		for ch := 0; ch < r.channels; ch++ {
			a := r.buf[idx*r.channels+ch]
			b := r.buf[(idx+1)*r.channels+ch]
			p[out+ch] = a*(1.0-frac) + b*frac
		}
		out += r.channels
		r.pos += r.ratio

		// Periodically drop frames the interpolator has moved past so the
		// buffer stays bounded without shifting it on every output frame.
		if drop := int(r.pos); drop > 256 {
			keep := len(r.buf)/r.channels - drop
			if keep < 0 {
				keep = 0
			}
			copy(r.buf, r.buf[drop*r.channels:])
			r.buf = r.buf[:keep*r.channels]
			r.pos -= float64(drop)
		}
	}
	if out == 0 {
		return 0, io.EOF
	}
	return out, nil
}

func (r *resampledStream) fill() {
	chunk := make([]float64, 2048)
	n, err := r.src.Read(chunk)
	if n > 0 {
		// Keep whole frames only.
		n -= n % r.channels
		r.buf = append(r.buf, chunk[:n]...)
	}
	if err != nil || n == 0 {
		r.srcDone = true
	}
}
