// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audfile/audio"
)

// ErrInjected is the error returned by the failing test doubles.
var ErrInjected = errors.New("injected failure")

// MockSource is an in-memory audio.FrameSource.
type MockSource struct {
	format audio.Format
	length audio.FrameLength
	r      io.Reader
	reads  int
}

// NewMockSource returns a source yielding data and reporting format and length.
// length does not have to agree with len(data).
func NewMockSource(format audio.Format, length audio.FrameLength, data []byte) *MockSource {
	return &MockSource{
		format: format,
		length: length,
		r:      bytes.NewReader(data),
	}
}

// PCM16 returns the format of little-endian signed 16-bit PCM.
func PCM16(sampleRate, channels int) audio.Format {
	return audio.Format{
		Encoding:   audio.PCMSigned,
		Channels:   channels,
		SampleRate: sampleRate,
		SampleBits: 16,
		FrameSize:  2 * channels,
	}
}

// NewPCM16Source returns a little-endian 16-bit source over interleaved
// samples whose length is the number of whole frames in samples.
func NewPCM16Source(sampleRate, channels int, samples []int16) *MockSource {
	return NewMockSource(PCM16(sampleRate, channels), audio.Frames(int64(len(samples)/channels)), Int16LE(samples))
}

// NewSineSource generates frames of a sine wave as little-endian 16-bit PCM.
func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	samples := make([]int16, frames*channels)
	for i := range frames {
		t := float64(i) / float64(sampleRate)
		v := int16(math.Sin(2*math.Pi*frequency*t) * 32767)
		for ch := range channels {
			samples[i*channels+ch] = v
		}
	}
	return NewPCM16Source(sampleRate, channels, samples)
}

// Unspecified makes the source report audio.Unspecified as its length.
func (m *MockSource) Unspecified() *MockSource {
	m.length = audio.Unspecified
	return m
}

// FailAfter makes reads fail with ErrInjected after n bytes.
func (m *MockSource) FailAfter(n int64) *MockSource {
	m.r = io.MultiReader(io.LimitReader(m.r, n), &errReader{})
	return m
}

func (m *MockSource) Format() audio.Format            { return m.format }
func (m *MockSource) FrameLength() audio.FrameLength { return m.length }

// Reads returns how many times Read was called.
func (m *MockSource) Reads() int { return m.reads }

func (m *MockSource) Read(p []byte) (int, error) {
	m.reads++
	return m.r.Read(p)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, ErrInjected }

// Int16LE encodes samples as little-endian bytes.
func Int16LE(samples []int16) []byte {
	b := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(b[2*i:], uint16(s))
	}
	return b
}

// SeekBuffer is an in-memory io.WriteSeeker. Writes past the end grow it,
// writes before the end overwrite.
type SeekBuffer struct {
	data   []byte
	offset int64
	seeks  int
}

// NewSeekBuffer returns a buffer holding prefix, positioned at its end.
func NewSeekBuffer(prefix []byte) *SeekBuffer {
	return &SeekBuffer{data: bytes.Clone(prefix), offset: int64(len(prefix))}
}

func (b *SeekBuffer) Write(p []byte) (int, error) {
	end := b.offset + int64(len(p))
	if end > int64(len(b.data)) {
		b.data = append(b.data, make([]byte, end-int64(len(b.data)))...)
	}
	copy(b.data[b.offset:], p)
	b.offset = end
	return len(p), nil
}

func (b *SeekBuffer) Seek(offset int64, whence int) (int64, error) {
	b.seeks++
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = b.offset + offset
	case io.SeekEnd:
		next = int64(len(b.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if next < 0 {
		return 0, fmt.Errorf("negative position")
	}

	b.offset = next
	return next, nil
}

func (b *SeekBuffer) Bytes() []byte { return b.data }
func (b *SeekBuffer) Len() int      { return len(b.data) }
func (b *SeekBuffer) Offset() int64 { return b.offset }

// Seeks returns how many times Seek was called.
func (b *SeekBuffer) Seeks() int { return b.seeks }

// FailWriter accepts Limit bytes, then fails every write with ErrInjected.
type FailWriter struct {
	Limit   int
	written int
}

func (w *FailWriter) Write(p []byte) (int, error) {
	room := w.Limit - w.written
	if room <= 0 {
		return 0, ErrInjected
	}
	if len(p) > room {
		w.written += room
		return room, ErrInjected
	}
	w.written += len(p)
	return len(p), nil
}

// Written returns the number of accepted bytes.
func (w *FailWriter) Written() int { return w.written }

// FailSeeker is a SeekBuffer whose seeks fail once AllowSeeks have succeeded.
type FailSeeker struct {
	SeekBuffer
	AllowSeeks int
}

func (f *FailSeeker) Seek(offset int64, whence int) (int64, error) {
	if f.seeks >= f.AllowSeeks {
		f.seeks++
		return 0, ErrInjected
	}
	return f.SeekBuffer.Seek(offset, whence)
}

// ShortWriter reports fewer bytes than given without an error.
type ShortWriter struct{}

func (ShortWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return len(p) - 1, nil
}
