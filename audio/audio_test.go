package audio

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"strings"
	"sync"
	"testing"
)

func pcm16(channels int) Format {
	return Format{Encoding: PCMSigned, Channels: channels, SampleRate: 8000, SampleBits: 16, FrameSize: 2 * channels}
}

func TestFormat_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Format)
		ok     bool
	}{
		{"valid", func(*Format) {}, true},
		{"zero encoding", func(f *Format) { f.Encoding = 0 }, false},
		{"unknown encoding", func(f *Format) { f.Encoding = ALaw + 1 }, false},
		{"no channels", func(f *Format) { f.Channels = 0; f.FrameSize = 0 }, false},
		{"negative rate", func(f *Format) { f.SampleRate = -1 }, false},
		{"odd bits", func(f *Format) { f.SampleBits = 12 }, false},
		{"frame size mismatch", func(f *Format) { f.FrameSize = 3 }, false},
		{"24 bit", func(f *Format) { f.SampleBits = 24; f.FrameSize = 6 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := pcm16(2)
			tt.mutate(&f)
			err := f.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("Validate() error = %v, want ErrInvalidFormat", err)
			}
		})
	}
}

func TestFormat_String(t *testing.T) {
	t.Parallel()

	f := Format{Encoding: PCMFloat, Channels: 2, SampleRate: 48000, SampleBits: 32, FrameSize: 8, BigEndian: true}
	want := "PCM_FLOAT 48000 Hz, 32 bit, 2 channels, 8 bytes/frame, big-endian"
	if got := f.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := Encoding(42).String(); got != "Encoding(42)" {
		t.Errorf("String() = %q", got)
	}
}

func TestFrameLength(t *testing.T) {
	t.Parallel()

	if Unspecified.Known() {
		t.Error("Unspecified.Known() = true")
	}
	if (FrameLength{}) != Unspecified {
		t.Error("zero FrameLength is not Unspecified")
	}

	// zero frames is a length, not the sentinel
	zero := Frames(0)
	if !zero.Known() || zero == Unspecified {
		t.Error("Frames(0) is indistinguishable from Unspecified")
	}
	if n, ok := Frames(7).Count(); n != 7 || !ok {
		t.Errorf("Frames(7).Count() = %d, %v", n, ok)
	}
	if Unspecified.String() != "unspecified" || Frames(3).String() != "3 frames" {
		t.Errorf("String() = %q, %q", Unspecified.String(), Frames(3).String())
	}
}

func TestFrames_NegativePanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("Frames(-1) did not panic")
		}
	}()
	Frames(-1)
}

type nopSeeker struct{ bytes.Buffer }

func (*nopSeeker) Seek(int64, int) (int64, error) { return 0, nil }

func TestTarget(t *testing.T) {
	t.Parallel()

	ws := &nopSeeker{}

	s := Stream(ws)
	if s.IsSeekable() || s.Seeker() != nil || s.Writer() != ws {
		t.Error("Stream() of a seekable writer must stay sequential")
	}

	k := Seekable(ws)
	if !k.IsSeekable() || k.Seeker() != ws || k.Writer() != ws {
		t.Error("Seekable() lost its writer")
	}

	var zero Target
	if zero.Writer() != nil || zero.IsSeekable() {
		t.Error("zero Target has a writer")
	}
}

func TestNewReaderSource(t *testing.T) {
	t.Parallel()

	src := NewReaderSource(strings.NewReader("abcd"), pcm16(1), Frames(2))
	if src.Format() != pcm16(1) || src.FrameLength() != Frames(2) {
		t.Errorf("source = %v, %v", src.Format(), src.FrameLength())
	}
	data, _ := io.ReadAll(src)
	if string(data) != "abcd" {
		t.Errorf("ReadAll() = %q", data)
	}
}

// mockDecoder is a test decoder implementation
type mockDecoder struct {
	name string
}

func (d *mockDecoder) Decode(r io.Reader) (FrameSource, error) {
	return NewReaderSource(r, pcm16(2), Unspecified), nil
}

// fakeWriter writes "<name>" for every source whose channel count it accepts.
type fakeWriter struct {
	name     string
	types    []FileType
	channels int
}

func (w *fakeWriter) FileTypes() []FileType { return w.types }

func (w *fakeWriter) FileTypesFor(src FrameSource) []FileType {
	if src == nil || src.Format().Channels != w.channels {
		return []FileType{}
	}
	return w.types
}

func (w *fakeWriter) Supports(t FileType) bool { return slices.Contains(w.FileTypes(), t) }

func (w *fakeWriter) SupportsFor(t FileType, src FrameSource) bool {
	return slices.Contains(w.FileTypesFor(src), t)
}

func (w *fakeWriter) Write(src FrameSource, t FileType, dst Target) (int64, error) {
	if !w.SupportsFor(t, src) {
		return 0, ErrUnsupportedFileType
	}
	n, err := io.WriteString(dst.Writer(), w.name)
	return int64(n), err
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "wav"}

	registry.RegisterDecoder("wav", decoder)

	got, ok := registry.Decoder("wav")
	if !ok {
		t.Fatal("Registry.Decoder() failed to retrieve registered decoder")
	}
	if got != decoder {
		t.Error("Registry.Decoder() returned different decoder instance")
	}
}

func TestRegistry_ExtensionNormalized(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "aiff"}
	registry.RegisterDecoder(".AIFF", decoder)

	for _, ext := range []string{"aiff", ".aiff", "AIFF"} {
		if got, ok := registry.Decoder(ext); !ok || got != decoder {
			t.Errorf("Decoder(%q) = %v, %v", ext, got, ok)
		}
	}
}

func TestRegistry_GetNonExistent(t *testing.T) {
	t.Parallel()

	if _, ok := NewRegistry().Decoder("nonexistent"); ok {
		t.Error("Registry.Decoder() returned ok=true for non-existent format")
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.RegisterDecoder("wav", &mockDecoder{name: "first"})
	second := &mockDecoder{name: "second"}
	registry.RegisterDecoder("wav", second)

	if got, _ := registry.Decoder("wav"); got != second {
		t.Error("Registry.Decoder() did not return the overwritten decoder")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "test"}

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(3)
		go func() {
			defer wg.Done()
			registry.RegisterDecoder("format", decoder)
		}()
		go func() {
			defer wg.Done()
			_, _ = registry.Decoder("format")
		}()
		go func() {
			defer wg.Done()
			registry.RegisterWriter(&fakeWriter{name: "w", types: []FileType{AU}, channels: 1})
			_ = registry.FileTypes()
		}()
	}
	wg.Wait()

	if got, ok := registry.Decoder("format"); !ok || got != decoder {
		t.Error("Registry returned wrong decoder after concurrent operations")
	}
	if got := registry.FileTypes(); !slices.Equal(got, []FileType{AU}) {
		t.Errorf("FileTypes() = %v, want [AU]", got)
	}
}

func newTestRegistry() *Registry {
	return NewRegistry(
		&fakeWriter{name: "mono", types: []FileType{WAVE, AU}, channels: 1},
		&fakeWriter{name: "stereo", types: []FileType{WAVE, AIFF}, channels: 2},
	)
}

func TestRegistry_Listings(t *testing.T) {
	t.Parallel()

	r := newTestRegistry()

	if got := r.FileTypes(); !slices.Equal(got, []FileType{WAVE, AU, AIFF}) {
		t.Errorf("FileTypes() = %v", got)
	}

	mono := NewReaderSource(strings.NewReader(""), pcm16(1), Frames(0))
	stereo := NewReaderSource(strings.NewReader(""), pcm16(2), Frames(0))
	if got := r.FileTypesFor(mono); !slices.Equal(got, []FileType{WAVE, AU}) {
		t.Errorf("FileTypesFor(mono) = %v", got)
	}
	if got := r.FileTypesFor(stereo); !slices.Equal(got, []FileType{WAVE, AIFF}) {
		t.Errorf("FileTypesFor(stereo) = %v", got)
	}

	all := []FileType{WAVE, AIFF, AU, {Name: "X", Extension: "x"}}
	for _, src := range []FrameSource{mono, stereo, nil} {
		narrowed := r.FileTypesFor(src)
		for _, ft := range all {
			if r.SupportsFor(ft, src) != slices.Contains(narrowed, ft) {
				t.Errorf("SupportsFor(%s) disagrees with FileTypesFor()", ft)
			}
			if slices.Contains(narrowed, ft) && !r.Supports(ft) {
				t.Errorf("%s listed for a source but not statically", ft)
			}
		}
	}
}

func TestRegistry_WriteDispatch(t *testing.T) {
	t.Parallel()

	r := newTestRegistry()

	tests := []struct {
		name     string
		channels int
		ft       FileType
		want     string
		wantErr  error
	}{
		{"mono wav", 1, WAVE, "mono", nil},
		{"stereo wav", 2, WAVE, "stereo", nil},
		{"stereo aiff", 2, AIFF, "stereo", nil},
		{"mono aiff", 1, AIFF, "", ErrUnsupportedFileType},
		{"quad wav", 4, WAVE, "", ErrUnsupportedFileType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := NewReaderSource(strings.NewReader(""), pcm16(tt.channels), Frames(0))
			buf := new(bytes.Buffer)
			_, err := r.Write(src, tt.ft, Stream(buf))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Write() error = %v, want %v", err, tt.wantErr)
			}
			if buf.String() != tt.want {
				t.Errorf("written by %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestRegistry_FileTypeByExtension(t *testing.T) {
	t.Parallel()

	r := newTestRegistry()
	if ft, ok := r.FileTypeByExtension(".WAV"); !ok || ft != WAVE {
		t.Errorf("FileTypeByExtension(.WAV) = %v, %v", ft, ok)
	}
	if _, ok := r.FileTypeByExtension("mp3"); ok {
		t.Error("FileTypeByExtension(mp3) found a writable type")
	}

	r.RegisterExtension("aiff", AIFF)
	r.RegisterExtension(".SND", AU)
	r.RegisterExtension("flac", FileType{Name: "FLAC", Extension: "flac"})

	tests := []struct {
		ext  string
		want FileType
		ok   bool
	}{
		{"aif", AIFF, true},
		{".aiff", AIFF, true},
		{"snd", AU, true},
		{"flac", FileType{}, false},
	}
	for _, tt := range tests {
		if ft, ok := r.FileTypeByExtension(tt.ext); ft != tt.want || ok != tt.ok {
			t.Errorf("FileTypeByExtension(%q) = %v, %v, want %v, %v", tt.ext, ft, ok, tt.want, tt.ok)
		}
	}
}

func TestRegistry_Empty(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if len(r.FileTypes()) != 0 || r.Supports(WAVE) {
		t.Error("empty registry lists types")
	}
	_, err := r.Write(NewReaderSource(strings.NewReader(""), pcm16(1), Frames(0)), WAVE, Stream(io.Discard))
	if !errors.Is(err, ErrUnsupportedFileType) {
		t.Errorf("Write() error = %v, want ErrUnsupportedFileType", err)
	}
}

func BenchmarkRegistry_Decoder(b *testing.B) {
	registry := NewRegistry()
	registry.RegisterDecoder("wav", &mockDecoder{name: "wav"})

	for b.Loop() {
		_, _ = registry.Decoder("wav")
	}
}
