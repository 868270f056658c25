// ABOUTME: Playback engine orchestrating decode, device output, clock, and capture
// ABOUTME: Sessions are replaced wholesale on play and seek, never mutated in place
package player

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gattoplayer/gatto/internal/audio"
	"github.com/gattoplayer/gatto/internal/visualizer"
)

// ErrNoTrack reports an operation that needs a loaded track when none
// is loaded.
var ErrNoTrack = errors.New("player: no track loaded")

// session is the decode context of the currently loaded track. A new
// play or seek replaces it wholesale; seeking rebuilds a fresh session
// offset by the target time.
type session struct {
	path        string
	duration    time.Duration
	hasDuration bool
	channels    int
	sampleRate  int
}

// Engine is the playback engine: it decodes tracks, drives the device
// sink, tracks position on a wall clock, and feeds the capture bridge
// that supplies the spectrum analyzer.
type Engine struct {
	// mu guards session, buffer, and capture supervision; the clock and
	// sink carry their own locks.
	mu sync.Mutex

	dev           device
	clock         *Clock
	session       *session
	buf           *visualizer.Buffer
	captureCancel context.CancelFunc
}

// New opens the host audio device and returns an engine. Failure to
// open a device is fatal; it returns an error wrapping
// ErrDeviceUnavailable.
func New() (*Engine, error) {
	dev, err := newOtoSink()
	if err != nil {
		return nil, err
	}
	return newEngine(dev), nil
}

// newEngine wires an engine around an arbitrary device; tests use it
// with a fake sink.
func newEngine(dev device) *Engine {
	return &Engine{
		dev:   dev,
		clock: NewClock(),
	}
}

// Play loads and starts the track at path. On any read or decode
// failure the previous session is untouched and keeps playing.
func (e *Engine) Play(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read track: %w", err)
	}
	out, analysis, err := audio.DualOpen(data)
	if err != nil {
		return fmt.Errorf("open track %s: %w", path, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	dur, hasDur := out.Duration()
	e.startLocked(out, analysis, &session{
		path:        path,
		duration:    dur,
		hasDuration: hasDur,
		channels:    out.Channels(),
		sampleRate:  out.SampleRate(),
	})
	e.clock.Start()

	log.Printf("Playing %s: %dHz, %d channels, duration=%v (known=%v)",
		path, out.SampleRate(), out.Channels(), dur, hasDur)
	return nil
}

// startLocked replaces the device stream, the shared sample buffer, and
// the capture bridge for a new session. The buffer is replaced rather
// than cleared so a superseded bridge, however late it runs, can only
// ever write into the buffer of its own dead session.
func (e *Engine) startLocked(out, analysis audio.Stream, s *session) {
	if e.captureCancel != nil {
		e.captureCancel()
	}

	e.dev.Start(out)
	e.session = s
	e.buf = visualizer.NewBuffer()

	ctx, cancel := context.WithCancel(context.Background())
	e.captureCancel = cancel
	go captureSamples(ctx, analysis, e.buf)
}

// Seek moves playback to target, clamped to [0, duration]. Decoded
// streams cannot rewind, so seeking re-reads the source file, skips
// target x rate frames off fresh decode handles, and restarts the sink
// with the remainder. Cost is proportional to the skip distance. On any
// failure the current position and device state are unchanged.
func (e *Engine) Seek(target time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil {
		return ErrNoTrack
	}

	if target < 0 {
		target = 0
	}
	if s.hasDuration && target > s.duration {
		target = s.duration
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("seek re-read: %w", err)
	}
	out, analysis, err := audio.DualOpen(data)
	if err != nil {
		return fmt.Errorf("seek re-open %s: %w", s.path, err)
	}

	skip := int64(target.Milliseconds()) * int64(out.SampleRate()) / 1000
	if err := audio.SkipFrames(out, skip); err != nil {
		return fmt.Errorf("seek skip: %w", err)
	}
	if err := audio.SkipFrames(analysis, skip); err != nil {
		return fmt.Errorf("seek skip: %w", err)
	}

	fresh := *s
	e.startLocked(out, analysis, &fresh)
	if e.clock.Paused() {
		e.dev.Pause()
	}
	e.clock.SeekTo(target)
	return nil
}

// Pause freezes the clock and the device.
func (e *Engine) Pause() {
	e.clock.Pause()
	e.dev.Pause()
}

// Resume re-anchors the clock and resumes the device.
func (e *Engine) Resume() {
	e.clock.Resume()
	e.dev.Resume()
}

// Stop halts output, clears the sample buffer, and resets elapsed time
// to zero. IsFinished reports true afterwards.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.captureCancel != nil {
		e.captureCancel()
		e.captureCancel = nil
	}
	e.dev.Stop()
	if e.buf != nil {
		e.buf.Clear()
	}
	e.clock.Stop()
	e.session = nil
}

// Elapsed returns the user-perceived playback position.
func (e *Engine) Elapsed() time.Duration {
	return e.clock.Elapsed()
}

// Duration returns the loaded track's total length, when the format
// reports one.
func (e *Engine) Duration() (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return 0, false
	}
	return e.session.duration, e.session.hasDuration
}

// Paused reports whether playback is paused.
func (e *Engine) Paused() bool {
	return e.clock.Paused()
}

// IsFinished reports whether the appended sample stream has played out.
// It is read under the engine lock so a sink mid-replacement can never
// report a torn intermediate state.
func (e *Engine) IsFinished() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dev.Finished()
}

// SetVolume clamps v to [0, 1] and applies it immediately. The value
// persists across track changes until changed again.
func (e *Engine) SetVolume(v float64) {
	e.dev.SetVolume(v)
}

// Volume returns the sink's current [0, 1] scalar.
func (e *Engine) Volume() float64 {
	return e.dev.Volume()
}

// SampleBuffer returns the current session's shared sample buffer, or
// nil when nothing has played yet. It implements
// visualizer.BufferSource.
func (e *Engine) SampleBuffer() *visualizer.Buffer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf
}

// Close stops playback and releases the device.
func (e *Engine) Close() {
	e.Stop()
	e.dev.Close()
}
