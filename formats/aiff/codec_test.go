// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audfile/audio"
	"github.com/ik5/audfile/internal/audiotest"
)

func extendedToInt(b []byte) uint64 {
	exp := int(binary.BigEndian.Uint16(b[0:2])&0x7FFF) - 16383
	mant := binary.BigEndian.Uint64(b[2:10])
	if mant == 0 || exp < 0 || exp > 63 {
		return 0
	}
	return mant >> (63 - exp)
}

func TestPutExtended(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rate uint64
		want []byte
	}{
		{44100, []byte{0x40, 0x0E, 0xAC, 0x44, 0, 0, 0, 0, 0, 0}},
		{8000, []byte{0x40, 0x0B, 0xFA, 0x00, 0, 0, 0, 0, 0, 0}},
		{48000, []byte{0x40, 0x0E, 0xBB, 0x80, 0, 0, 0, 0, 0, 0}},
		{1, []byte{0x3F, 0xFF, 0x80, 0, 0, 0, 0, 0, 0, 0}},
		{0, make([]byte, 10)},
	}

	for _, tt := range tests {
		b := make([]byte, 10)
		putExtended(b, tt.rate)
		if !bytes.Equal(b, tt.want) {
			t.Errorf("putExtended(%d) = % x, want % x", tt.rate, b, tt.want)
		}
		if got := extendedToInt(b); got != tt.rate {
			t.Errorf("extendedToInt(putExtended(%d)) = %d", tt.rate, got)
		}
	}
}

func TestCodec_CanEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		enc  audio.Encoding
		bits int
		want bool
	}{
		{"signed 8", audio.PCMSigned, 8, true},
		{"signed 16", audio.PCMSigned, 16, true},
		{"signed 24", audio.PCMSigned, 24, true},
		{"signed 32", audio.PCMSigned, 32, true},
		{"unsigned 8", audio.PCMUnsigned, 8, true},
		{"unsigned 16", audio.PCMUnsigned, 16, false},
		{"float 32", audio.PCMFloat, 32, false},
		{"ulaw", audio.ULaw, 8, false},
		{"alaw", audio.ALaw, 8, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := audio.Format{Encoding: tt.enc, Channels: 1, SampleRate: 8000, SampleBits: tt.bits, FrameSize: tt.bits / 8}
			if got := (Codec{}).CanEncode(f); got != tt.want {
				t.Errorf("CanEncode(%v) = %v, want %v", f, got, tt.want)
			}
		})
	}
}

func TestWrite_HeaderLayout(t *testing.T) {
	t.Parallel()

	src := audiotest.NewPCM16Source(44100, 2, []int16{1, -1, 2, -2, 3, -3})
	buf := new(bytes.Buffer)

	n, err := NewWriter().Write(src, audio.AIFF, audio.Stream(buf))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data := buf.Bytes()
	if n != 66 || len(data) != 66 {
		t.Fatalf("Write() = %d, file = %d bytes, want 54 + 12", n, len(data))
	}

	be := binary.BigEndian
	checks := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"FORM size", be.Uint32(data[4:8]), 58},
		{"COMM size", be.Uint32(data[16:20]), 18},
		{"channels", uint32(be.Uint16(data[20:22])), 2},
		{"numSampleFrames", be.Uint32(data[22:26]), 3},
		{"sampleSize", uint32(be.Uint16(data[26:28])), 16},
		{"SSND size", be.Uint32(data[42:46]), 20},
		{"offset", be.Uint32(data[46:50]), 0},
		{"blockSize", be.Uint32(data[50:54]), 0},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}

	for _, id := range []struct {
		off  int
		want string
	}{{0, "FORM"}, {8, "AIFF"}, {12, "COMM"}, {38, "SSND"}} {
		if got := string(data[id.off : id.off+4]); got != id.want {
			t.Errorf("chunk id at %d = %q, want %q", id.off, got, id.want)
		}
	}

	if rate := extendedToInt(data[28:38]); rate != 44100 {
		t.Errorf("sampleRate = %d, want 44100", rate)
	}

	// little-endian input swapped to big-endian
	if want := []byte{0x00, 0x01, 0xFF, 0xFF}; !bytes.Equal(data[54:58], want) {
		t.Errorf("first frame = % x, want % x", data[54:58], want)
	}
}

func TestWrite_UnspecifiedLength(t *testing.T) {
	t.Parallel()

	samples := []int16{1, 2, 3, 4, 5}

	known := new(bytes.Buffer)
	if _, err := NewWriter().Write(audiotest.NewPCM16Source(8000, 1, samples), audio.AIFF, audio.Stream(known)); err != nil {
		t.Fatal(err)
	}

	t.Run("seekable", func(t *testing.T) {
		t.Parallel()

		buf := audiotest.NewSeekBuffer(nil)
		src := audiotest.NewPCM16Source(8000, 1, samples).Unspecified()
		if _, err := NewWriter().Write(src, audio.AIFF, audio.Seekable(buf)); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if !bytes.Equal(buf.Bytes(), known.Bytes()) {
			t.Errorf("backpatched file differs:\n got % x\nwant % x", buf.Bytes(), known.Bytes())
		}
	})

	t.Run("stream", func(t *testing.T) {
		t.Parallel()

		buf := new(bytes.Buffer)
		src := audiotest.NewPCM16Source(8000, 1, samples).Unspecified()
		_, err := NewWriter().Write(src, audio.AIFF, audio.Stream(buf))
		if !errors.Is(err, audio.ErrIndeterminateLength) {
			t.Errorf("Write() error = %v, want ErrIndeterminateLength", err)
		}
		if buf.Len() != 0 {
			t.Errorf("%d bytes emitted, want none", buf.Len())
		}
	})
}

func TestWrite_OddDataPadded(t *testing.T) {
	t.Parallel()

	f := audio.Format{Encoding: audio.PCMUnsigned, Channels: 1, SampleRate: 8000, SampleBits: 8, FrameSize: 1}
	src := audiotest.NewMockSource(f, audio.Frames(3), []byte{0x80, 0x00, 0xFF})
	buf := audiotest.NewSeekBuffer(nil)

	n, err := NewWriter().Write(src, audio.AIFF, audio.Seekable(buf))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data := buf.Bytes()
	if n != 58 {
		t.Fatalf("Write() = %d, want 54 + 3 + pad", n)
	}
	if got := binary.BigEndian.Uint32(data[4:8]); got != 50 {
		t.Errorf("FORM size = %d, want 50", got)
	}
	if got := binary.BigEndian.Uint32(data[42:46]); got != 11 {
		t.Errorf("SSND size = %d, want 11", got)
	}
	// unsigned input stored signed
	if want := []byte{0x00, 0x80, 0x7F, 0x00}; !bytes.Equal(data[54:], want) {
		t.Errorf("payload = % x, want % x", data[54:], want)
	}
}

func TestWrite_BigEndianInputUntouched(t *testing.T) {
	t.Parallel()

	f := audio.Format{Encoding: audio.PCMSigned, Channels: 1, SampleRate: 8000, SampleBits: 24, FrameSize: 3, BigEndian: true}
	payload := []byte{0x12, 0x34, 0x56, 0xFE, 0xDC, 0xBA}
	buf := new(bytes.Buffer)

	if _, err := NewWriter().Write(audiotest.NewMockSource(f, audio.Frames(2), payload), audio.AIFF, audio.Stream(buf)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !bytes.Equal(buf.Bytes()[headerSize:], payload) {
		t.Errorf("payload = % x, want % x", buf.Bytes()[headerSize:], payload)
	}
}

func TestWrite_RejectsFloat(t *testing.T) {
	t.Parallel()

	f := audio.Format{Encoding: audio.PCMFloat, Channels: 1, SampleRate: 8000, SampleBits: 32, FrameSize: 4}
	src := audiotest.NewMockSource(f, audio.Frames(1), make([]byte, 4))

	if got := NewWriter().FileTypesFor(src); len(got) != 0 {
		t.Errorf("FileTypesFor() = %v, want none", got)
	}
	_, err := NewWriter().Write(src, audio.AIFF, audio.Stream(new(bytes.Buffer)))
	if !errors.Is(err, audio.ErrUnsupportedFileType) {
		t.Errorf("Write() error = %v, want ErrUnsupportedFileType", err)
	}
}

func TestWrite_RoundTripWithGoAudio(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(44100, 2, 2048, 440).Unspecified()
	want, _ := io.ReadAll(audiotest.NewSineSource(44100, 2, 2048, 440))

	buf := audiotest.NewSeekBuffer(nil)
	if _, err := NewWriter().Write(src, audio.AIFF, audio.Seekable(buf)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	decoded, err := Decoder{}.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	f := decoded.Format()
	if f.SampleRate != 44100 || f.Channels != 2 || f.SampleBits != 16 || !f.BigEndian {
		t.Errorf("Format() = %v", f)
	}

	got, err := io.ReadAll(decoded)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("decoded %d bytes, want %d", len(got), len(want))
	}
	for i := 0; i < len(got); i += 2 {
		g := int16(binary.BigEndian.Uint16(got[i:]))
		w := int16(binary.LittleEndian.Uint16(want[i:]))
		if g != w {
			t.Fatalf("sample %d = %d, want %d", i/2, g, w)
		}
	}
}
