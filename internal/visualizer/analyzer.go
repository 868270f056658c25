// ABOUTME: FFT spectrum analyzer producing smoothed display bars
// ABOUTME: Drains the shared sample buffer on the UI cadence and maps magnitudes to bars
package visualizer

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

const (
	// maxFFTSize caps the analysis window. Smaller buffers use the next
	// power of two above their length, zero-padded.
	maxFFTSize = 2048

	// magnitudeScale is an empirically tuned calibration constant mapping
	// raw FFT magnitudes into [0, 1] before log scaling. It is not derived
	// from signal energy; adjust it to taste if bars sit too low or clip.
	magnitudeScale = 100.0
)

// BufferSource supplies the current session's sample buffer. A nil buffer
// means no session is active and bars simply decay.
type BufferSource interface {
	SampleBuffer() *Buffer
}

// Analyzer converts captured samples into a fixed number of spectrum
// bars in [0, 1]. It runs synchronously on the UI update cadence and is
// the sole reader of the shared buffer.
type Analyzer struct {
	source    BufferSource
	bars      []float64
	smoothing float64
}

// NewAnalyzer creates an analyzer with the given bar count and smoothing
// factor. Smoothing is expected in [0, 1]: 1 freezes the bars, 0 tracks
// each update instantaneously. Out-of-range values are kept as given and
// produce the corresponding degenerate behavior.
func NewAnalyzer(source BufferSource, barCount int, smoothing float64) *Analyzer {
	return &Analyzer{
		source:    source,
		bars:      make([]float64, barCount),
		smoothing: smoothing,
	}
}

// Update recomputes the bars from whatever the capture bridge has
// produced since the last tick. With no new samples every bar decays
// geometrically toward zero; it never snaps to zero.
func (a *Analyzer) Update() {
	buf := a.source.SampleBuffer()
	if buf == nil || buf.Len() == 0 {
		for i := range a.bars {
			a.bars[i] *= a.smoothing
		}
		return
	}

	fftSize := nextPowerOfTwo(buf.Len())
	if fftSize > maxFFTSize {
		fftSize = maxFFTSize
	}
	samples := buf.Take(fftSize)
	if len(samples) < fftSize {
		samples = append(samples, make([]float64, fftSize-len(samples))...)
	}

	spectrum := fft.FFTReal(samples)

	half := fftSize / 2
	freqsPerBar := half / len(a.bars)

	for i := range a.bars {
		start := i * freqsPerBar
		end := (i + 1) * freqsPerBar
		if end > half {
			end = half
		}
		// Bars past the available bins keep their previous value.
		if start >= half || end <= start {
			break
		}

		var sum float64
		for j := start; j < end; j++ {
			sum += cmplx.Abs(spectrum[j])
		}
		magnitude := sum / float64(end-start)

		normalized := magnitude / magnitudeScale
		if normalized > 1.0 {
			normalized = 1.0
		}
		scaled := 0.0
		if normalized > 0 {
			// Maps the top ~40dB of the normalized range onto [0, 1] with
			// floor clipping.
			scaled = (math.Log10(normalized) + 2.0) / 2.0
			scaled = math.Max(0.0, math.Min(1.0, scaled))
		}

		a.bars[i] = a.bars[i]*a.smoothing + scaled*(1.0-a.smoothing)
	}
}

// Bars returns the current bar heights in [0, 1]. The slice is owned by
// the analyzer; callers must treat it as read-only.
func (a *Analyzer) Bars() []float64 {
	return a.bars
}

// SetSmoothing replaces the smoothing factor, clamped to [0, 1].
func (a *Analyzer) SetSmoothing(s float64) {
	a.smoothing = math.Max(0.0, math.Min(1.0, s))
}

// SetBarCount resizes the bar slice, preserving existing values where
// they fit.
func (a *Analyzer) SetBarCount(n int) {
	if n == len(a.bars) {
		return
	}
	bars := make([]float64, n)
	copy(bars, a.bars)
	a.bars = bars
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
