// ABOUTME: WAV (RIFF PCM) sample stream
// ABOUTME: Parses the RIFF chunk layout and decodes 8/16/24-bit PCM payloads
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"
)

const wavFormatPCM = 1

type wavStream struct {
	data       []byte // raw PCM payload of the data chunk
	pos        int
	channels   int
	sampleRate int
	bitDepth   int
}

func newWAVStream(data []byte) (Stream, error) {
	s := &wavStream{}
	if err := s.parseChunks(data[12:]); err != nil {
		return nil, err
	}
	if s.channels == 0 || s.sampleRate == 0 {
		return nil, fmt.Errorf("%w: wav: missing fmt chunk", ErrDecode)
	}
	if s.data == nil {
		return nil, fmt.Errorf("%w: wav: missing data chunk", ErrDecode)
	}
	return s, nil
}

// parseChunks walks the RIFF chunk list following the WAVE form type.
func (s *wavStream) parseChunks(b []byte) error {
	for len(b) >= 8 {
		id := string(b[:4])
		size := int(binary.LittleEndian.Uint32(b[4:8]))
		body := b[8:]
		if size > len(body) {
			size = len(body)
		}
		switch id {
		case "fmt ":
			if size < 16 {
				return fmt.Errorf("%w: wav: short fmt chunk", ErrDecode)
			}
			format := int(binary.LittleEndian.Uint16(body[0:2]))
			if format != wavFormatPCM {
				return fmt.Errorf("%w: wav: unsupported format tag %d", ErrDecode, format)
			}
			s.channels = int(binary.LittleEndian.Uint16(body[2:4]))
			s.sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			s.bitDepth = int(binary.LittleEndian.Uint16(body[14:16]))
			if s.bitDepth != 8 && s.bitDepth != 16 && s.bitDepth != 24 {
				return fmt.Errorf("%w: wav: unsupported bit depth %d", ErrDecode, s.bitDepth)
			}
		case "data":
			s.data = body[:size]
		}
		// Chunks are word-aligned.
		if size%2 == 1 {
			size++
		}
		if 8+size > len(b) {
			break
		}
		b = b[8+size:]
	}
	return nil
}

func (s *wavStream) Channels() int   { return s.channels }
func (s *wavStream) SampleRate() int { return s.sampleRate }

func (s *wavStream) Duration() (time.Duration, bool) {
	bytesPerFrame := s.channels * s.bitDepth / 8
	if bytesPerFrame == 0 {
		return 0, false
	}
	frames := len(s.data) / bytesPerFrame
	return time.Duration(frames) * time.Second / time.Duration(s.sampleRate), true
}

func (s *wavStream) Read(p []float64) (int, error) {
	step := s.bitDepth / 8
	n := 0
	for n < len(p) && s.pos+step <= len(s.data) {
		p[n] = s.decodeSample(s.data[s.pos:])
		s.pos += step
		n++
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (s *wavStream) decodeSample(b []byte) float64 {
	switch s.bitDepth {
	case 8:
		// 8-bit WAV is unsigned, midpoint 128.
		return (float64(b[0]) - 128.0) / 128.0
	case 16:
		return float64(int16(binary.LittleEndian.Uint16(b))) / 32768.0
	default: // 24
		v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
		if v&0x800000 != 0 {
			v |= ^int32(0xFFFFFF)
		}
		return float64(v) / 8388608.0
	}
}
