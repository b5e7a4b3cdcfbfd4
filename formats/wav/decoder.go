package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/riff"
	"github.com/ik5/audfile/audio"
)

type wavSource struct {
	r      io.Reader
	format audio.Format
	length audio.FrameLength
}

func (s *wavSource) Format() audio.Format            { return s.format }
func (s *wavSource) FrameLength() audio.FrameLength { return s.length }
func (s *wavSource) Read(p []byte) (int, error)      { return s.r.Read(p) }

// Decoder reads the fmt and data chunks of a WAVE file and returns the
// samples of the data chunk, verbatim, as an audio.FrameSource.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.FrameSource, error) {
	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if !bytes.Equal(p.ID[:], []byte("RIFF")) || !bytes.Equal(p.Format[:], []byte("WAVE")) {
		return nil, ErrNotWavFile
	}

	var (
		format  audio.Format
		haveFmt bool
		hdr     [chunkHeaderSize]byte
	)
	for {
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavChunks, err)
		}
		id := string(hdr[0:4])
		size := int64(binary.LittleEndian.Uint32(hdr[4:8]))

		switch id {
		case "fmt ":
			body := make([]byte, size+size&1)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, fmt.Errorf("%w: fmt chunk: %w", ErrUnsupportedWavLayout, err)
			}
			f, err := parseFmt(body[:size])
			if err != nil {
				return nil, err
			}
			format, haveFmt = f, true

		case "data":
			if !haveFmt {
				return nil, fmt.Errorf("%w: data before fmt", ErrUnsupportedWavLayout)
			}
			return &wavSource{
				r:      io.LimitReader(r, size),
				format: format,
				length: audio.Frames(size / int64(format.FrameSize)),
			}, nil

		default:
			if _, err := io.CopyN(io.Discard, r, size+size&1); err != nil {
				return nil, fmt.Errorf("%w: skip %q: %w", ErrUnsupportedWavChunks, id, err)
			}
		}
	}
}

func parseFmt(b []byte) (audio.Format, error) {
	if len(b) < fmtChunkSizePCM {
		return audio.Format{}, fmt.Errorf("%w: fmt chunk of %d bytes", ErrUnsupportedWavLayout, len(b))
	}

	le := binary.LittleEndian
	tag := le.Uint16(b[0:2])
	if tag == FormatExtensible {
		if len(b) < 40 {
			return audio.Format{}, fmt.Errorf("%w: short extensible fmt chunk", ErrUnsupportedWavLayout)
		}
		tag = le.Uint16(b[24:26])
	}

	f := audio.Format{
		Channels:   int(le.Uint16(b[2:4])),
		SampleRate: int(le.Uint32(b[4:8])),
		FrameSize:  int(le.Uint16(b[12:14])),
		SampleBits: int(le.Uint16(b[14:16])),
	}

	switch tag {
	case FormatPCM:
		f.Encoding = audio.PCMSigned
		if f.SampleBits == 8 {
			f.Encoding = audio.PCMUnsigned
		}
	case FormatIEEEFloat:
		f.Encoding = audio.PCMFloat
	case FormatMuLaw:
		f.Encoding = audio.ULaw
	case FormatALaw:
		f.Encoding = audio.ALaw
	default:
		return audio.Format{}, fmt.Errorf("%w: format tag 0x%04x", ErrUnsupportedEncoding, tag)
	}

	if err := f.Validate(); err != nil {
		return audio.Format{}, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}
	return f, nil
}
