// ABOUTME: Container sniffing and decoder construction
// ABOUTME: Builds independent sample streams over one in-memory audio file
package audio

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrDecode reports data that no supported decoder could read. Callers
// treat it as recoverable: the previous track keeps playing.
var ErrDecode = errors.New("audio: undecodable data")

// Open builds a sample stream over data. The format is sniffed from the
// leading bytes; MP3 is tried last because its frame sync has no fixed
// container magic.
func Open(data []byte) (Stream, error) {
	switch {
	case len(data) < 12:
		return nil, fmt.Errorf("%w: file too short", ErrDecode)
	case bytes.HasPrefix(data, []byte("fLaC")):
		return newFLACStream(data)
	case bytes.HasPrefix(data, []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return newWAVStream(data)
	default:
		return newMP3Stream(data)
	}
}

// DualOpen builds two independent streams over the same audio data, one
// for device output and one for spectrum analysis. Each decodes from
// position zero on its own; consuming one never advances the other.
func DualOpen(data []byte) (out, analysis Stream, err error) {
	out, err = Open(data)
	if err != nil {
		return nil, nil, err
	}
	analysis, err = Open(data)
	if err != nil {
		return nil, nil, err
	}
	return out, analysis, nil
}
