package au

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/audfile/audio"
)

type auSource struct {
	r      io.Reader
	format audio.Format
	length audio.FrameLength
}

func (s *auSource) Format() audio.Format            { return s.format }
func (s *auSource) FrameLength() audio.FrameLength { return s.length }
func (s *auSource) Read(p []byte) (int, error)      { return s.r.Read(p) }

// Decoder reads a Sun AU header and returns the sample data verbatim. A data
// size of UnknownSize yields a source of unspecified length that runs to the
// end of the input.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.FrameSource, error) {
	var h [headerSize]byte
	if _, err := io.ReadFull(r, h[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotAuFile, err)
	}

	be := binary.BigEndian
	if be.Uint32(h[0:4]) != magic {
		return nil, ErrNotAuFile
	}

	offset := int64(be.Uint32(h[4:8]))
	size := be.Uint32(h[8:12])
	f := audio.Format{
		SampleRate: int(be.Uint32(h[16:20])),
		Channels:   int(be.Uint32(h[20:24])),
		BigEndian:  true,
	}

	switch code := be.Uint32(h[12:16]); code {
	case EncodingULaw:
		f.Encoding, f.SampleBits = audio.ULaw, 8
	case EncodingALaw:
		f.Encoding, f.SampleBits = audio.ALaw, 8
	case EncodingLinear8, EncodingLinear16, EncodingLinear24, EncodingLinear32:
		f.Encoding, f.SampleBits = audio.PCMSigned, 8*int(code-1)
	case EncodingFloat:
		f.Encoding, f.SampleBits = audio.PCMFloat, 32
	case EncodingDouble:
		f.Encoding, f.SampleBits = audio.PCMFloat, 64
	default:
		return nil, fmt.Errorf("%w: encoding %d", ErrUnsupportedEncoding, code)
	}
	f.FrameSize = f.Channels * f.SampleBytes()
	if f.SampleBits == 8 {
		f.BigEndian = false
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedAuLayout, err)
	}

	// skip the annotation field
	if offset < headerSize {
		return nil, fmt.Errorf("%w: data offset %d", ErrUnsupportedAuLayout, offset)
	}
	if _, err := io.CopyN(io.Discard, r, offset-headerSize); err != nil {
		return nil, fmt.Errorf("%w: annotation: %w", ErrUnsupportedAuLayout, err)
	}

	if size == UnknownSize {
		return &auSource{r: r, format: f, length: audio.Unspecified}, nil
	}
	return &auSource{
		r:      io.LimitReader(r, int64(size)),
		format: f,
		length: audio.Frames(int64(size) / int64(f.FrameSize)),
	}, nil
}
