// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audfile/audio"
)

// go-mp3 always decodes to interleaved stereo, 16-bit little-endian.
const (
	channels  = 2
	frameSize = 4
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
	Length() int64
}

type source struct {
	dec    mp3Reader
	format audio.Format
	length audio.FrameLength
}

func newSource(dec mp3Reader) *source {
	s := &source{
		dec: dec,
		format: audio.Format{
			Encoding:   audio.PCMSigned,
			Channels:   channels,
			SampleRate: dec.SampleRate(),
			SampleBits: 16,
			FrameSize:  frameSize,
		},
		length: audio.Unspecified,
	}
	// Length is negative when the input is not seekable
	if n := dec.Length(); n >= 0 {
		s.length = audio.Frames(n / frameSize)
	}
	return s
}

func (s *source) Format() audio.Format            { return s.format }
func (s *source) FrameLength() audio.FrameLength { return s.length }

func (s *source) Read(p []byte) (int, error) {
	return s.dec.Read(p)
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.FrameSource, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return newSource(dec), nil
}
