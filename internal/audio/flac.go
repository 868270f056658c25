// ABOUTME: FLAC sample stream
// ABOUTME: Decodes FLAC audio to normalized floats via mewkiz/flac
package audio

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/mewkiz/flac"
)

type flacStream struct {
	stream  *flac.Stream
	pending []float64 // interleaved samples decoded ahead of the reader
	scale   float64
	done    bool
}

func newFLACStream(data []byte) (Stream, error) {
	st, err := flac.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: flac: %v", ErrDecode, err)
	}
	if st.Info.BitsPerSample == 0 || st.Info.NChannels == 0 {
		return nil, fmt.Errorf("%w: flac: missing stream info", ErrDecode)
	}
	return &flacStream{
		stream: st,
		scale:  float64(int64(1) << (st.Info.BitsPerSample - 1)),
	}, nil
}

func (s *flacStream) Channels() int   { return int(s.stream.Info.NChannels) }
func (s *flacStream) SampleRate() int { return int(s.stream.Info.SampleRate) }

func (s *flacStream) Duration() (time.Duration, bool) {
	info := s.stream.Info
	if info.NSamples == 0 || info.SampleRate == 0 {
		return 0, false
	}
	return time.Duration(info.NSamples) * time.Second / time.Duration(info.SampleRate), true
}

func (s *flacStream) Read(p []float64) (int, error) {
	for len(s.pending) < len(p) && !s.done {
		frame, err := s.stream.ParseNext()
		if err != nil {
			// io.EOF is the normal end; any parse failure also ends the
			// stream (truncated file plays up to the damage).
			s.done = true
			break
		}
		for i := 0; i < int(frame.BlockSize); i++ {
			for _, sub := range frame.Subframes {
				s.pending = append(s.pending, float64(sub.Samples[i])/s.scale)
			}
		}
	}

	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}
