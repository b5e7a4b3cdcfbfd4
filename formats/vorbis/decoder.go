package vorbis

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audfile/audio"
	"github.com/jfreymuth/oggvorbis"
)

// readFrames is the number of frames decoded at a time.
const readFrames = 1024

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Length() int64
	Read([]float32) (int, error)
}

// source yields the decoded samples as interleaved float32 little-endian
// frames.
type source struct {
	dec      oggReader
	format   audio.Format
	length   audio.FrameLength
	floatBuf []float32
	out      []byte
	pending  []byte
	err      error
}

func newSource(dec oggReader) *source {
	ch := dec.Channels()
	s := &source{
		dec: dec,
		format: audio.Format{
			Encoding:   audio.PCMFloat,
			Channels:   ch,
			SampleRate: dec.SampleRate(),
			SampleBits: 32,
			FrameSize:  4 * ch,
		},
		length:   audio.Unspecified,
		floatBuf: make([]float32, readFrames*ch),
		out:      make([]byte, 4*readFrames*ch),
	}
	// zero when the stream cannot report its length
	if n := dec.Length(); n > 0 {
		s.length = audio.Frames(n)
	}
	return s
}

func (s *source) Format() audio.Format            { return s.format }
func (s *source) FrameLength() audio.FrameLength { return s.length }

func (s *source) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for len(s.pending) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		s.fill()
	}

	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

func (s *source) fill() {
	// n counts values, not frames
	n, err := s.dec.Read(s.floatBuf)
	out := s.out[:4*n]
	for i, v := range s.floatBuf[:n] {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	s.pending = out

	switch {
	case err == nil && n == 0, errors.Is(err, io.EOF):
		s.err = io.EOF
	case err != nil:
		s.err = err
	}
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.FrameSource, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}
	if dec.Channels() <= 0 || dec.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrNotVorbisFile, dec.Channels(), dec.SampleRate())
	}

	return newSource(dec), nil
}
