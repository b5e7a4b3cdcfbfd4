// SPDX-License-Identifier: EPL-2.0

package au

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ik5/audfile/audio"
	"github.com/ik5/audfile/filewriter"
	"github.com/ik5/audfile/internal/pcm"
)

// Sun/NeXT encoding codes.
const (
	EncodingULaw     = 1
	EncodingLinear8  = 2
	EncodingLinear16 = 3
	EncodingLinear24 = 4
	EncodingLinear32 = 5
	EncodingFloat    = 6
	EncodingDouble   = 7
	EncodingALaw     = 27
)

const (
	magic      = 0x2e736e64 // ".snd"
	headerSize = 24
	// UnknownSize is the data size of a file written without knowing its
	// length.
	UnknownSize = 0xFFFFFFFF
)

// Codec lays out Sun AU headers:
//
//	.snd offset=24 dataSize encoding sampleRate channels
//
// Every field is big-endian. The data size may be UnknownSize, so a source
// of unspecified length can be streamed.
type Codec struct{}

var _ filewriter.HeaderCodec = Codec{}

func (Codec) FileType() audio.FileType { return audio.AU }

func (Codec) RequiresLength() bool { return false }

func (Codec) CanEncode(f audio.Format) bool {
	if f.Validate() != nil || int64(f.SampleRate) > math.MaxUint32 || int64(f.Channels) > math.MaxUint32 {
		return false
	}
	return encoding(f) != 0
}

func encoding(f audio.Format) uint32 {
	switch f.Encoding {
	case audio.PCMSigned:
		switch f.SampleBits {
		case 8:
			return EncodingLinear8
		case 16:
			return EncodingLinear16
		case 24:
			return EncodingLinear24
		case 32:
			return EncodingLinear32
		}
	case audio.PCMUnsigned:
		if f.SampleBits == 8 {
			return EncodingLinear8
		}
	case audio.PCMFloat:
		switch f.SampleBits {
		case 32:
			return EncodingFloat
		case 64:
			return EncodingDouble
		}
	case audio.ULaw:
		if f.SampleBits == 8 {
			return EncodingULaw
		}
	case audio.ALaw:
		if f.SampleBits == 8 {
			return EncodingALaw
		}
	}
	return 0
}

func (c Codec) Layout(f audio.Format, length audio.FrameLength) (*filewriter.Layout, error) {
	if !c.CanEncode(f) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, f)
	}

	h := make([]byte, headerSize)
	be := binary.BigEndian
	be.PutUint32(h[0:4], magic)
	be.PutUint32(h[4:8], headerSize)
	be.PutUint32(h[8:12], UnknownSize)
	be.PutUint32(h[12:16], encoding(f))
	be.PutUint32(h[16:20], uint32(f.SampleRate))
	be.PutUint32(h[20:24], uint32(f.Channels))

	layout := &filewriter.Layout{
		Header: h,
		Fields: []filewriter.LengthField{{
			Name:   "data size",
			Offset: 8,
			Width:  4,
			Order:  be,
			Value:  func(_, data int64) uint64 { return uint64(data) },
		}},
		Convert: converter(f),
	}

	if n, ok := length.Count(); ok {
		if err := layout.Fill(n, n*int64(f.FrameSize)); err != nil {
			return nil, err
		}
	}
	return layout, nil
}

func converter(f audio.Format) func([]byte) {
	switch {
	case f.Encoding == audio.PCMUnsigned:
		return pcm.FlipSign
	case !f.BigEndian && f.SampleBytes() > 1:
		width := f.SampleBytes()
		return func(p []byte) { pcm.Swap(p, width) }
	}
	return nil
}
