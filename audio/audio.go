// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// Encoding identifies how a single sample is represented in frame bytes.
type Encoding int

const (
	// PCMSigned is two's complement linear PCM.
	PCMSigned Encoding = iota + 1
	// PCMUnsigned is offset-binary linear PCM (silence at half scale).
	PCMUnsigned
	// PCMFloat is IEEE 754 floating point, 32 or 64 bits.
	PCMFloat
	// ULaw is G.711 mu-law companded, 8 bits.
	ULaw
	// ALaw is G.711 A-law companded, 8 bits.
	ALaw
)

func (e Encoding) String() string {
	switch e {
	case PCMSigned:
		return "PCM_SIGNED"
	case PCMUnsigned:
		return "PCM_UNSIGNED"
	case PCMFloat:
		return "PCM_FLOAT"
	case ULaw:
		return "ULAW"
	case ALaw:
		return "ALAW"
	}
	return fmt.Sprintf("Encoding(%d)", int(e))
}

// Format describes the layout of the frames a FrameSource yields.
type Format struct {
	Encoding   Encoding
	Channels   int
	SampleRate int
	// SampleBits is the width of one sample of one channel.
	SampleBits int
	// FrameSize is the number of bytes holding one sample of every channel.
	FrameSize int
	// BigEndian applies to multi-byte samples only.
	BigEndian bool
}

// SampleBytes returns the number of bytes of one channel's sample.
func (f Format) SampleBytes() int {
	return (f.SampleBits + 7) / 8
}

// Validate reports whether f is internally consistent.
func (f Format) Validate() error {
	switch {
	case f.Encoding < PCMSigned || f.Encoding > ALaw:
		return fmt.Errorf("%w: unknown encoding %d", ErrInvalidFormat, int(f.Encoding))
	case f.Channels <= 0:
		return fmt.Errorf("%w: %d channels", ErrInvalidFormat, f.Channels)
	case f.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidFormat, f.SampleRate)
	case f.SampleBits <= 0 || f.SampleBits%8 != 0:
		return fmt.Errorf("%w: %d bits per sample", ErrInvalidFormat, f.SampleBits)
	case f.FrameSize != f.Channels*f.SampleBytes():
		return fmt.Errorf("%w: frame size %d does not match %d channels of %d bits",
			ErrInvalidFormat, f.FrameSize, f.Channels, f.SampleBits)
	}

	return nil
}

func (f Format) String() string {
	order := "little-endian"
	if f.BigEndian {
		order = "big-endian"
	}
	return fmt.Sprintf("%s %d Hz, %d bit, %d channels, %d bytes/frame, %s",
		f.Encoding, f.SampleRate, f.SampleBits, f.Channels, f.FrameSize, order)
}

// FrameLength is either a known, non-negative frame count or Unspecified.
// The zero value is Unspecified.
type FrameLength struct {
	n     int64
	known bool
}

// Unspecified is the length of a source that cannot tell in advance how many
// frames it will yield.
var Unspecified = FrameLength{}

// Frames returns a known frame length of n. It panics if n is negative.
func Frames(n int64) FrameLength {
	if n < 0 {
		panic("audio: negative frame length")
	}
	return FrameLength{n: n, known: true}
}

// Known reports whether the length was specified.
func (l FrameLength) Known() bool { return l.known }

// Count returns the frame count and whether it is known.
func (l FrameLength) Count() (int64, bool) { return l.n, l.known }

func (l FrameLength) String() string {
	if !l.known {
		return "unspecified"
	}
	return fmt.Sprintf("%d frames", l.n)
}

// FrameSource is a producer of decoded audio frames. Read yields raw frame
// bytes laid out as described by Format, and io.EOF once exhausted.
type FrameSource interface {
	io.Reader
	Format() Format
	FrameLength() FrameLength
}

// Decoder constructs a FrameSource from an input reader.
type Decoder interface {
	Decode(r io.Reader) (FrameSource, error)
}

// FileType identifies a container file type. Values are compared with ==.
type FileType struct {
	Name      string
	Extension string
}

func (t FileType) String() string { return t.Name }

// Built-in container types.
var (
	WAVE = FileType{Name: "WAVE", Extension: "wav"}
	AIFF = FileType{Name: "AIFF", Extension: "aif"}
	AU   = FileType{Name: "AU", Extension: "au"}
)

// Target is where a container file is written. It is either a sequential
// stream, created with Stream, or a seekable destination, created with
// Seekable, which allows header fields to be corrected after the payload.
type Target struct {
	w  io.Writer
	ws io.WriteSeeker
}

// Stream returns a write-once target. Even if w can seek it is never used.
func Stream(w io.Writer) Target {
	return Target{w: w}
}

// Seekable returns a target that supports positional overwrite.
func Seekable(ws io.WriteSeeker) Target {
	return Target{w: ws, ws: ws}
}

// IsSeekable reports whether t was created with Seekable.
func (t Target) IsSeekable() bool { return t.ws != nil }

// Writer returns the sequential writer of t, nil for the zero Target.
func (t Target) Writer() io.Writer { return t.w }

// Seeker returns the seekable writer of t, nil for stream targets.
func (t Target) Seeker() io.WriteSeeker { return t.ws }

// WriterProvider writes FrameSources as container files of one or more types.
//
// FileTypesFor must return a subset of FileTypes, and Supports and
// SupportsFor must agree with the two listings.
type WriterProvider interface {
	// FileTypes returns every type the provider can write. May be empty.
	FileTypes() []FileType
	// FileTypesFor returns the types the provider can write src as.
	FileTypesFor(src FrameSource) []FileType
	Supports(t FileType) bool
	SupportsFor(t FileType, src FrameSource) bool
	// Write encodes src as a file of type t to dst, returning the number of
	// bytes emitted including header and padding.
	Write(src FrameSource, t FileType, dst Target) (int64, error)
}
