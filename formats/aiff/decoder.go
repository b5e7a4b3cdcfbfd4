package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audfile/audio"
)

// readFrames is the number of frames pulled from the decoder at a time.
const readFrames = 1024

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps go-audio aiff.Decoder to implement audio.FrameSource. The
// integer samples are packed back into big-endian signed frames.
type source struct {
	dec     aiffReader
	format  audio.Format
	intBuf  *goaudio.IntBuffer
	out     []byte
	pending []byte
	err     error
}

func newSource(dec aiffReader, f audio.Format) *source {
	return &source{
		dec:    dec,
		format: f,
		intBuf: &goaudio.IntBuffer{
			Data:   make([]int, readFrames*f.Channels),
			Format: dec.Format(),
		},
		out: make([]byte, readFrames*f.FrameSize),
	}
}

func (s *source) Format() audio.Format { return s.format }

// FrameLength is always unspecified; go-audio does not expose the COMM
// frame count before the samples are read.
func (s *source) FrameLength() audio.FrameLength { return audio.Unspecified }

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
	s.intBuf.Data = s.intBuf.Data[:cap(s.intBuf.Data)]
	n, err := s.dec.PCMBuffer(s.intBuf)

	width := s.format.SampleBytes()
	out := s.out[:n*width]
	for i, v := range s.intBuf.Data[:n] {
		b := out[i*width : (i+1)*width]
		switch width {
		case 1:
			b[0] = byte(int8(v))
		case 2:
			binary.BigEndian.PutUint16(b, uint16(int16(v)))
		case 3:
			b[0], b[1], b[2] = byte(v>>16), byte(v>>8), byte(v)
		case 4:
			binary.BigEndian.PutUint32(b, uint32(int32(v)))
		}
	}
	s.pending = out

	switch {
	case err == nil && n == 0, errors.Is(err, io.EOF):
		s.err = io.EOF
	case err != nil:
		s.err = fmt.Errorf("%w: %w", ErrUnsupportedAiffChunks, err)
	}
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.FrameSource, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedAiffLayout
	}

	f := audio.Format{
		Encoding:   audio.PCMSigned,
		Channels:   format.NumChannels,
		SampleRate: format.SampleRate,
		SampleBits: int(dec.BitDepth),
		FrameSize:  format.NumChannels * int(dec.BitDepth) / 8,
		BigEndian:  dec.BitDepth > 8,
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedAiffLayout, err)
	}

	return newSource(dec, f), nil
}
