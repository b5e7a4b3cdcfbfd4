// SPDX-License-Identifier: EPL-2.0

package filewriter

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"slices"

	"github.com/ik5/audfile/audio"
	"github.com/ik5/audfile/internal/session"
)

// DefaultBufferFrames is the number of frames moved per read by default.
const DefaultBufferFrames = 1024

// Provider is an audio.WriterProvider over a fixed table of header codecs.
// It holds no per-write state and is safe for concurrent use.
type Provider struct {
	codecs       []HeaderCodec
	logger       *slog.Logger
	bufferFrames int
}

var _ audio.WriterProvider = (*Provider)(nil)

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger receiving debug records of each write.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithBufferFrames sets how many frames are read from the source at a time.
func WithBufferFrames(n int) Option {
	return func(p *Provider) {
		if n > 0 {
			p.bufferFrames = n
		}
	}
}

// NewProvider returns a provider for codecs. When two codecs share a file
// type the first one wins.
func NewProvider(codecs []HeaderCodec, opts ...Option) *Provider {
	p := &Provider{
		logger:       slog.New(slog.DiscardHandler),
		bufferFrames: DefaultBufferFrames,
	}
	for _, c := range codecs {
		if !slices.ContainsFunc(p.codecs, func(k HeaderCodec) bool { return k.FileType() == c.FileType() }) {
			p.codecs = append(p.codecs, c)
		}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) FileTypes() []audio.FileType {
	types := make([]audio.FileType, 0, len(p.codecs))
	for _, c := range p.codecs {
		types = append(types, c.FileType())
	}
	return types
}

func (p *Provider) FileTypesFor(src audio.FrameSource) []audio.FileType {
	types := []audio.FileType{}
	if src == nil {
		return types
	}
	f := src.Format()
	if f.Validate() != nil {
		return types
	}
	for _, c := range p.codecs {
		if c.CanEncode(f) {
			types = append(types, c.FileType())
		}
	}
	return types
}

func (p *Provider) Supports(t audio.FileType) bool {
	return slices.Contains(p.FileTypes(), t)
}

func (p *Provider) SupportsFor(t audio.FileType, src audio.FrameSource) bool {
	return slices.Contains(p.FileTypesFor(src), t)
}

func (p *Provider) codecFor(t audio.FileType, src audio.FrameSource) (HeaderCodec, bool) {
	if !p.SupportsFor(t, src) {
		return nil, false
	}
	for _, c := range p.codecs {
		if c.FileType() == t {
			return c, true
		}
	}
	return nil, false
}

// Write encodes src as a file of type t to dst and returns the bytes
// emitted. On failure it returns what had been emitted so far; that output
// is incomplete and must not be used.
//
// On seekable targets the header carries the container's placeholder
// lengths until the payload is complete, even when the length is known, so
// an interrupted write never leaves a header describing a complete file.
func (p *Provider) Write(src audio.FrameSource, t audio.FileType, dst audio.Target) (int64, error) {
	codec, ok := p.codecFor(t, src)
	if !ok {
		return 0, fmt.Errorf("%w: %s", audio.ErrUnsupportedFileType, t)
	}
	if dst.Writer() == nil {
		return 0, audio.ErrInvalidTarget
	}

	format := src.Format()
	length := src.FrameLength()
	declared, known := length.Count()
	if known && declared > math.MaxInt64/int64(format.FrameSize) {
		return 0, fmt.Errorf("%w: %d frames of %d bytes", audio.ErrTooLarge, declared, format.FrameSize)
	}
	if !dst.IsSeekable() && codec.RequiresLength() && !length.Known() {
		return 0, fmt.Errorf("%w: %s", audio.ErrIndeterminateLength, t)
	}

	layout, err := codec.Layout(format, length)
	if err != nil {
		return 0, fmt.Errorf("%s header: %w", t, err)
	}

	header := layout.Header
	var sess *session.Session
	if dst.IsSeekable() {
		if known {
			pending, err := codec.Layout(format, audio.Unspecified)
			if err != nil {
				return 0, fmt.Errorf("%s header: %w", t, err)
			}
			header = pending.Header
		}
		sess, err = session.NewSeekable(dst.Seeker())
		if err != nil {
			return 0, err
		}
	} else {
		sess = session.New(dst.Writer())
	}

	log := p.logger.With("type", t.Name, "length", length.String(), "seekable", sess.Seekable())
	log.Debug("writing audio file", "format", format.String(), "header", len(header))

	if err := sess.WriteHeader(header); err != nil {
		return sess.Written(), err
	}
	headerEnd := sess.Mark()

	dataBytes, err := p.copyFrames(sess, src, format.FrameSize, length, layout.Convert)
	if err != nil {
		return sess.Written(), err
	}

	if known && sess.Frames() < declared && !sess.Seekable() {
		return sess.Written(), fmt.Errorf("%w: source ended after %d of %d frames: %w",
			audio.ErrIO, sess.Frames(), declared, io.ErrUnexpectedEOF)
	}

	if err := sess.Pad(layout.Padding(dataBytes)); err != nil {
		return sess.Written(), err
	}

	if sess.Seekable() {
		log.Debug("backpatching header", "frames", sess.Frames(), "data", dataBytes)
		if err := backpatch(sess, layout, headerEnd, dataBytes); err != nil {
			return sess.Written(), err
		}
	}

	if err := sess.Finish(); err != nil {
		return sess.Written(), err
	}

	log.Debug("audio file written", "frames", sess.Frames(), "bytes", sess.Written())
	return sess.Written(), nil
}

func (p *Provider) copyFrames(sess *session.Session, src io.Reader, frameSize int,
	length audio.FrameLength, convert func([]byte)) (int64, error) {
	buf := make([]byte, frameSize*p.bufferFrames)
	limit, bounded := length.Count()

	var data int64
	for {
		want := p.bufferFrames
		if bounded {
			left := limit - sess.Frames()
			if left <= 0 {
				return data, nil
			}
			want = int(min(left, int64(want)))
		}

		n, err := io.ReadFull(src, buf[:want*frameSize])
		whole := n - n%frameSize
		if whole > 0 {
			if convert != nil {
				convert(buf[:whole])
			}
			if werr := sess.WriteFrames(buf[:whole], int64(whole/frameSize)); werr != nil {
				return data, werr
			}
			data += int64(whole)
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			if n != whole {
				p.logger.Debug("dropping partial frame", "bytes", n-whole)
			}
			return data, nil
		default:
			return data, fmt.Errorf("%w: read frames: %w", audio.ErrIO, err)
		}
	}
}

// backpatch rewrites every length field with its true value. Fields must lie
// within the first headerEnd bytes. All values are computed before the first
// patch, and fields are patched from the back of the header so that the
// outermost size stays a placeholder until last.
func backpatch(sess *session.Session, layout *Layout, headerEnd, dataBytes int64) error {
	type patch struct {
		off int64
		b   []byte
	}
	patches := make([]patch, 0, len(layout.Fields))
	for _, f := range layout.Fields {
		if f.Offset < 0 || f.Offset+int64(f.Width) > headerEnd {
			return fmt.Errorf("%w: %s at %d", ErrFieldOutsideHeader, f.Name, f.Offset)
		}
		b, err := f.Encode(sess.Frames(), dataBytes)
		if err != nil {
			return err
		}
		patches = append(patches, patch{off: f.Offset, b: b})
	}
	slices.SortFunc(patches, func(a, b patch) int { return cmp.Compare(b.off, a.off) })

	if err := sess.BeginBackpatch(); err != nil {
		return err
	}
	for _, pt := range patches {
		if err := sess.Patch(pt.off, pt.b); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes src as a file of type t at path, creating or truncating
// it. The file is seekable, so sources of unspecified length are accepted.
// If the write fails the file is removed.
func (p *Provider) WriteFile(src audio.FrameSource, t audio.FileType, path string) (int64, error) {
	if !p.SupportsFor(t, src) {
		return 0, fmt.Errorf("%w: %s", audio.ErrUnsupportedFileType, t)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	n, err := p.Write(src, t, audio.Seekable(f))
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w: close %s: %w", audio.ErrIO, path, cerr)
	}
	if err != nil {
		if rerr := os.Remove(path); rerr != nil {
			p.logger.Warn("removing incomplete file", "path", path, "error", rerr)
		}
		return n, err
	}
	return n, nil
}
