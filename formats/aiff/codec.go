// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/bits"

	"github.com/ik5/audfile/audio"
	"github.com/ik5/audfile/filewriter"
	"github.com/ik5/audfile/internal/pcm"
)

const headerSize = 54

// Offsets of the payload-dependent fields.
const (
	formSizeOffset   = 4
	numFramesOffset  = 22
	ssndSizeOffset   = 42
	sampleRateOffset = 28
)

// Codec lays out AIFF headers:
//
//	FORM <size> AIFF
//	COMM <18> channels numSampleFrames sampleSize sampleRate(80-bit)
//	SSND <size> offset=0 blockSize=0 frames... [pad]
//
// Every field is big-endian. Samples are signed; 8-bit unsigned input is
// converted.
type Codec struct{}

var _ filewriter.HeaderCodec = Codec{}

func (Codec) FileType() audio.FileType { return audio.AIFF }

func (Codec) RequiresLength() bool { return true }

func (Codec) CanEncode(f audio.Format) bool {
	if f.Validate() != nil || f.Channels > math.MaxInt16 {
		return false
	}
	switch f.Encoding {
	case audio.PCMSigned:
		switch f.SampleBits {
		case 8, 16, 24, 32:
			return true
		}
	case audio.PCMUnsigned:
		return f.SampleBits == 8
	}
	return false
}

func (c Codec) Layout(f audio.Format, length audio.FrameLength) (*filewriter.Layout, error) {
	if !c.CanEncode(f) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, f)
	}

	h := make([]byte, headerSize)
	be := binary.BigEndian

	copy(h[0:4], "FORM")
	copy(h[8:12], "AIFF")
	copy(h[12:16], "COMM")
	be.PutUint32(h[16:20], 18)
	be.PutUint16(h[20:22], uint16(f.Channels))
	be.PutUint16(h[26:28], uint16(f.SampleBits))
	putExtended(h[sampleRateOffset:sampleRateOffset+10], uint64(f.SampleRate))
	copy(h[38:42], "SSND")
	// offset and blockSize stay zero

	layout := &filewriter.Layout{
		Header: h,
		Fields: []filewriter.LengthField{
			{
				Name:   "FORM size",
				Offset: formSizeOffset,
				Width:  4,
				Order:  be,
				Value: func(_, data int64) uint64 {
					return uint64(headerSize - 8 + data + data&1)
				},
			},
			{
				Name:   "numSampleFrames",
				Offset: numFramesOffset,
				Width:  4,
				Order:  be,
				Value:  func(frames, _ int64) uint64 { return uint64(frames) },
			},
			{
				Name:   "SSND size",
				Offset: ssndSizeOffset,
				Width:  4,
				Order:  be,
				Value:  func(_, data int64) uint64 { return uint64(8 + data) },
			},
		},
		Align:   2,
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

// putExtended stores a positive integer v as an 80-bit IEEE 754 extended
// precision float: a 15-bit biased exponent and a 64-bit mantissa with an
// explicit integer bit. Zero is stored as all zero bits.
func putExtended(b []byte, v uint64) {
	clear(b[:10])
	if v == 0 {
		return
	}
	exp := bits.Len64(v) - 1
	binary.BigEndian.PutUint16(b[0:2], uint16(16383+exp))
	binary.BigEndian.PutUint64(b[2:10], v<<(63-exp))
}
