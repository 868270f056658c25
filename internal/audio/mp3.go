// ABOUTME: MP3 sample stream
// ABOUTME: Decodes MP3 audio to normalized floats via hajimehoshi/go-mp3
package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// mp3Stream adapts go-mp3's byte-oriented PCM output to Stream. go-mp3
// always emits 16-bit little-endian stereo regardless of the source
// channel layout.
type mp3Stream struct {
	dec  *mp3.Decoder
	rem  []byte // undecoded tail of the last byte read (odd sample splits)
	done bool
}

func newMP3Stream(data []byte) (Stream, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: mp3: %v", ErrDecode, err)
	}
	return &mp3Stream{dec: dec}, nil
}

func (s *mp3Stream) Channels() int   { return 2 }
func (s *mp3Stream) SampleRate() int { return s.dec.SampleRate() }

func (s *mp3Stream) Duration() (time.Duration, bool) {
	// Length is in decoded bytes: 2 channels x 2 bytes per frame.
	n := s.dec.Length()
	if n <= 0 || s.dec.SampleRate() == 0 {
		return 0, false
	}
	frames := n / 4
	return time.Duration(frames) * time.Second / time.Duration(s.dec.SampleRate()), true
}

func (s *mp3Stream) Read(p []float64) (int, error) {
	if s.done && len(s.rem) < 2 {
		return 0, io.EOF
	}
	need := len(p)*2 - len(s.rem)
	buf := make([]byte, len(s.rem)+max(need, 0))
	copy(buf, s.rem)
	filled := len(s.rem)
	for filled < len(buf) && !s.done {
		n, err := s.dec.Read(buf[filled:])
		filled += n
		if err != nil {
			s.done = true
			break
		}
	}
	buf = buf[:filled]

	samples := len(buf) / 2
	if samples > len(p) {
		samples = len(p)
	}
	for i := 0; i < samples; i++ {
		v := int16(binary.LittleEndian.Uint16(buf[i*2:]))
		p[i] = float64(v) / 32768.0
	}
	s.rem = append(s.rem[:0], buf[samples*2:]...)

	if samples == 0 {
		return 0, io.EOF
	}
	return samples, nil
}
