// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ik5/audfile/audio"
	"github.com/ik5/audfile/filewriter"
	"github.com/ik5/audfile/internal/pcm"
)

// WAVE format tags.
const (
	FormatPCM        = 0x0001
	FormatIEEEFloat  = 0x0003
	FormatALaw       = 0x0006
	FormatMuLaw      = 0x0007
	FormatExtensible = 0xFFFE
)

const (
	riffHeaderSize     = 12
	chunkHeaderSize    = 8
	fmtChunkSizePCM    = 16
	fmtChunkSizeNonPCM = 18
	factChunkSize      = 4
)

// Codec lays out RIFF/WAVE headers:
//
//	RIFF <size> WAVE
//	fmt  <16|18> tag channels rate byteRate blockAlign bits [cbSize=0]
//	fact <4> sampleLength     (non-PCM tags only)
//	data <size> frames... [pad]
//
// Every field is little-endian. A data chunk of odd size is followed by a
// zero pad byte that the RIFF size counts and the data size does not.
type Codec struct{}

var _ filewriter.HeaderCodec = Codec{}

func (Codec) FileType() audio.FileType { return audio.WAVE }

func (Codec) RequiresLength() bool { return true }

func (Codec) CanEncode(f audio.Format) bool {
	if f.Validate() != nil || f.Channels > math.MaxUint16 || int64(f.SampleRate) > math.MaxUint32 {
		return false
	}
	if int64(f.SampleRate)*int64(f.FrameSize) > math.MaxUint32 {
		return false
	}
	return formatTag(f) != 0
}

func formatTag(f audio.Format) uint16 {
	switch f.Encoding {
	case audio.PCMSigned:
		switch f.SampleBits {
		case 8, 16, 24, 32:
			return FormatPCM
		}
	case audio.PCMUnsigned:
		if f.SampleBits == 8 {
			return FormatPCM
		}
	case audio.PCMFloat:
		if f.SampleBits == 32 || f.SampleBits == 64 {
			return FormatIEEEFloat
		}
	case audio.ULaw:
		if f.SampleBits == 8 {
			return FormatMuLaw
		}
	case audio.ALaw:
		if f.SampleBits == 8 {
			return FormatALaw
		}
	}
	return 0
}

// Layout builds the header for f. With a known length every field is final.
func (c Codec) Layout(f audio.Format, length audio.FrameLength) (*filewriter.Layout, error) {
	if !c.CanEncode(f) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, f)
	}

	tag := formatTag(f)
	fmtSize := fmtChunkSizePCM
	if tag != FormatPCM {
		fmtSize = fmtChunkSizeNonPCM
	}

	size := riffHeaderSize + chunkHeaderSize + fmtSize + chunkHeaderSize
	if tag != FormatPCM {
		size += chunkHeaderSize + factChunkSize
	}
	h := make([]byte, size)
	le := binary.LittleEndian

	copy(h[0:4], "RIFF")
	copy(h[8:12], "WAVE")

	copy(h[12:16], "fmt ")
	le.PutUint32(h[16:20], uint32(fmtSize))
	le.PutUint16(h[20:22], tag)
	le.PutUint16(h[22:24], uint16(f.Channels))
	le.PutUint32(h[24:28], uint32(f.SampleRate))
	le.PutUint32(h[28:32], uint32(f.SampleRate*f.FrameSize))
	le.PutUint16(h[32:34], uint16(f.FrameSize))
	le.PutUint16(h[34:36], uint16(f.SampleBits))
	off := 36
	// cbSize stays zero for non-PCM tags
	off += fmtSize - fmtChunkSizePCM

	headerLen := int64(size)
	fields := []filewriter.LengthField{{
		Name:   "RIFF size",
		Offset: 4,
		Width:  4,
		Order:  le,
		Value: func(_, data int64) uint64 {
			return uint64(headerLen - 8 + data + data&1)
		},
	}}

	if tag != FormatPCM {
		copy(h[off:off+4], "fact")
		le.PutUint32(h[off+4:off+8], factChunkSize)
		fields = append(fields, filewriter.LengthField{
			Name:   "fact sample length",
			Offset: int64(off + 8),
			Width:  4,
			Order:  le,
			Value:  func(frames, _ int64) uint64 { return uint64(frames) },
		})
		off += chunkHeaderSize + factChunkSize
	}

	copy(h[off:off+4], "data")
	fields = append(fields, filewriter.LengthField{
		Name:   "data size",
		Offset: int64(off + 4),
		Width:  4,
		Order:  le,
		Value:  func(_, data int64) uint64 { return uint64(data) },
	})

	layout := &filewriter.Layout{
		Header:  h,
		Fields:  fields,
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

// converter returns the in-place conversion to WAVE sample layout: 8-bit
// PCM is unsigned, wider samples are little-endian.
func converter(f audio.Format) func([]byte) {
	switch {
	case f.Encoding == audio.PCMSigned && f.SampleBits == 8:
		return pcm.FlipSign
	case f.BigEndian && f.SampleBytes() > 1:
		width := f.SampleBytes()
		return func(p []byte) { pcm.Swap(p, width) }
	}
	return nil
}
