// ABOUTME: Audio device sink backed by oto
// ABOUTME: Owns the process-lifetime device context; per-track players are replaced atomically
package player

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"

	"github.com/gattoplayer/gatto/internal/audio"
)

// ErrDeviceUnavailable reports that no host audio device could be
// opened. It is fatal at engine construction.
var ErrDeviceUnavailable = errors.New("player: audio device unavailable")

const (
	deviceSampleRate = 44100
	deviceChannels   = 2
)

// device is the surface the engine drives. otoSink is the real
// implementation; tests substitute a fake.
type device interface {
	Start(src audio.Stream) error
	Stop()
	Pause()
	Resume()
	SetVolume(v float64)
	Volume() float64
	Finished() bool
	Close()
}

// otoSink plays sample streams through a single oto context opened once
// for the process lifetime. Starting a track replaces the previous
// player wholesale rather than mutating it, so a half-stopped state is
// never observable.
type otoSink struct {
	mu     sync.Mutex
	ctx    *oto.Context
	player *oto.Player
	reader *sinkReader
	volume float64
}

func newOtoSink() (*otoSink, error) {
	op := &oto.NewContextOptions{
		SampleRate:   deviceSampleRate,
		ChannelCount: deviceChannels,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	<-ready

	log.Printf("Audio device initialized: %dHz, %d channels", deviceSampleRate, deviceChannels)

	return &otoSink{ctx: ctx, volume: 1.0}, nil
}

// Start discards any existing player and begins playback of src.
func (s *otoSink) Start(src audio.Stream) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player != nil {
		s.player.Close()
		s.player = nil
		s.reader = nil
	}

	src = audio.Resample(src, deviceSampleRate)
	s.reader = newSinkReader(src)
	s.player = s.ctx.NewPlayer(s.reader)
	s.player.SetVolume(s.volume)
	s.player.Play()
	return nil
}

// Stop halts output and releases the queued samples.
func (s *otoSink) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player != nil {
		s.player.Close()
		s.player = nil
		s.reader = nil
	}
}

func (s *otoSink) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player != nil {
		s.player.Pause()
	}
}

func (s *otoSink) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player != nil {
		s.player.Play()
	}
}

// SetVolume applies a [0, 1] scalar immediately; it persists across
// track changes because Start re-applies the stored value.
func (s *otoSink) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = clampVolume(v)
	if s.player != nil {
		s.player.SetVolume(s.volume)
	}
}

func (s *otoSink) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// Finished reports whether the appended sample stream has been fully
// consumed and played out. After Stop it reports true.
func (s *otoSink) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player == nil {
		return true
	}
	return s.reader.exhausted() && s.player.BufferedSize() == 0
}

func (s *otoSink) Close() {
	s.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx != nil {
		s.ctx.Suspend()
	}
}

func clampVolume(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}

// sinkReader adapts a sample stream to the byte-oriented io.Reader oto
// consumes, mapping the stream's channel layout onto the stereo device
// and converting normalized floats to 16-bit little-endian PCM.
type sinkReader struct {
	src      audio.Stream
	channels int
	scratch  []float64
	eof      atomic.Bool
}

func newSinkReader(src audio.Stream) *sinkReader {
	return &sinkReader{src: src, channels: src.Channels()}
}

func (r *sinkReader) Read(b []byte) (int, error) {
	const bytesPerFrame = deviceChannels * 2
	frames := len(b) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}

	want := frames * r.channels
	if cap(r.scratch) < want {
		r.scratch = make([]float64, want)
	}
	n, err := r.src.Read(r.scratch[:want])
	n -= n % r.channels

	for f := 0; f < n/r.channels; f++ {
		frame := r.scratch[f*r.channels : (f+1)*r.channels]
		left, right := mapToStereo(frame)
		binary.LittleEndian.PutUint16(b[f*bytesPerFrame:], uint16(sampleToInt16(left)))
		binary.LittleEndian.PutUint16(b[f*bytesPerFrame+2:], uint16(sampleToInt16(right)))
	}

	if n == 0 {
		r.eof.Store(true)
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}
	if err == io.EOF {
		r.eof.Store(true)
	}
	return n / r.channels * bytesPerFrame, nil
}

func (r *sinkReader) exhausted() bool {
	return r.eof.Load()
}

// mapToStereo converts one source frame to a left/right pair: mono is
// duplicated, stereo passes through, wider layouts use the first two
// channels.
func mapToStereo(frame []float64) (left, right float64) {
	switch len(frame) {
	case 1:
		return frame[0], frame[0]
	default:
		return frame[0], frame[1]
	}
}

func sampleToInt16(v float64) int16 {
	if v > 1.0 {
		v = 1.0
	} else if v < -1.0 {
		v = -1.0
	}
	return int16(v * 32767)
}
