// SPDX-License-Identifier: EPL-2.0

package filewriter

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ik5/audfile/audio"
)

// HeaderCodec computes the header of one container type.
type HeaderCodec interface {
	FileType() audio.FileType
	// CanEncode reports whether frames of format f are representable.
	CanEncode(f audio.Format) bool
	// RequiresLength reports whether the header cannot be written before the
	// frame count is known, unless it can be corrected afterwards.
	RequiresLength() bool
	// Layout returns the header for f and length. With audio.Unspecified the
	// length fields carry the container's placeholder.
	Layout(f audio.Format, length audio.FrameLength) (*Layout, error)
}

// Layout is a computed header plus what is needed to finish the file.
type Layout struct {
	Header []byte
	// Fields lists every header field whose value depends on the payload.
	Fields []LengthField
	// Align is the payload alignment; shorter payloads are zero padded.
	Align int
	// Convert rewrites whole frames in place into the container's sample
	// layout. Nil when frames are stored verbatim.
	Convert func(p []byte)
}

// Padding returns the number of pad bytes following dataBytes of payload.
func (l *Layout) Padding(dataBytes int64) int {
	if l.Align <= 1 {
		return 0
	}
	if r := dataBytes % int64(l.Align); r != 0 {
		return int(int64(l.Align) - r)
	}
	return 0
}

// LengthField is a header field carrying a payload-dependent value.
type LengthField struct {
	Name   string
	Offset int64
	// Width in bytes, 2, 4 or 8.
	Width int
	Order binary.ByteOrder
	// Value computes the field from the written frames and payload bytes,
	// the latter without padding.
	Value func(frames, dataBytes int64) uint64
}

// Encode returns the field bytes for the given payload.
func (f LengthField) Encode(frames, dataBytes int64) ([]byte, error) {
	v := f.Value(frames, dataBytes)
	b := make([]byte, f.Width)
	switch f.Width {
	case 2:
		if v > math.MaxUint16 {
			return nil, fmt.Errorf("%w: %s = %d", audio.ErrTooLarge, f.Name, v)
		}
		f.Order.PutUint16(b, uint16(v))
	case 4:
		if v > math.MaxUint32 {
			return nil, fmt.Errorf("%w: %s = %d", audio.ErrTooLarge, f.Name, v)
		}
		f.Order.PutUint32(b, uint32(v))
	case 8:
		f.Order.PutUint64(b, v)
	default:
		return nil, fmt.Errorf("length field %s: unsupported width %d", f.Name, f.Width)
	}
	return b, nil
}

// Fill writes every field's value for the payload into header.
func (l *Layout) Fill(frames, dataBytes int64) error {
	for _, f := range l.Fields {
		b, err := f.Encode(frames, dataBytes)
		if err != nil {
			return err
		}
		copy(l.Header[f.Offset:], b)
	}
	return nil
}
