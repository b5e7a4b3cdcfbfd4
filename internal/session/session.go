// SPDX-License-Identifier: EPL-2.0

// Package session coordinates the bytes of one file write against its target:
// it counts what was emitted and, on seekable targets, overwrites earlier
// bytes without disturbing the forward write position.
package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audfile/audio"
)

// State of a write session.
type State int

const (
	Idle State = iota
	HeaderPending
	Streaming
	BackpatchPending
	Backpatching
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case HeaderPending:
		return "header-pending"
	case Streaming:
		return "streaming"
	case BackpatchPending:
		return "backpatch-pending"
	case Backpatching:
		return "backpatching"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	ErrNotSeekable = errors.New("session target is not seekable")
	ErrState       = errors.New("invalid session state")
	ErrPatchRange  = errors.New("patch outside written range")
)

// Session is a single-use, single-goroutine write of one file.
type Session struct {
	w    io.Writer
	s    io.Seeker
	base int64

	written int64
	frames  int64
	state   State
	err     error
}

// New returns a sequential session writing to w.
func New(w io.Writer) *Session {
	return &Session{w: w}
}

// NewSeekable returns a session able to patch ws. Offsets given to Patch are
// relative to the position of ws when NewSeekable is called.
func NewSeekable(ws io.WriteSeeker) (*Session, error) {
	base, err := ws.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("%w: locate write position: %w", audio.ErrIO, err)
	}
	return &Session{w: ws, s: ws, base: base}, nil
}

func (s *Session) State() State { return s.state }

// Written returns the number of bytes emitted so far. Patches do not count.
func (s *Session) Written() int64 { return s.written }

// Frames returns the number of frames passed to WriteFrames.
func (s *Session) Frames() int64 { return s.frames }

// Seekable reports whether the session supports Patch.
func (s *Session) Seekable() bool { return s.s != nil }

// Mark returns the current write offset, usable later with Patch.
func (s *Session) Mark() int64 { return s.written }

// Err returns the error that moved the session to Failed.
func (s *Session) Err() error { return s.err }

// WriteHeader emits the container header. It must be the first write.
func (s *Session) WriteHeader(p []byte) error {
	if err := s.expect(Idle); err != nil {
		return err
	}
	s.state = HeaderPending
	if err := s.write(p, "write header"); err != nil {
		return err
	}
	s.state = Streaming
	return nil
}

// WriteFrames emits payload bytes holding frames whole frames.
func (s *Session) WriteFrames(p []byte, frames int64) error {
	if err := s.expect(Streaming); err != nil {
		return err
	}
	if err := s.write(p, "write frames"); err != nil {
		return err
	}
	s.frames += frames
	return nil
}

// Pad emits n zero bytes.
func (s *Session) Pad(n int) error {
	if n <= 0 {
		return nil
	}
	if err := s.expect(Streaming); err != nil {
		return err
	}
	return s.write(make([]byte, n), "write padding")
}

// BeginBackpatch ends forward emission and allows Patch calls.
func (s *Session) BeginBackpatch() error {
	if err := s.expect(Streaming); err != nil {
		return err
	}
	if s.s == nil {
		return s.fail(ErrNotSeekable)
	}
	s.state = BackpatchPending
	return nil
}

// Patch overwrites len(p) bytes at offset off, which must lie within the
// bytes already written, then puts the cursor back at the end of them.
func (s *Session) Patch(off int64, p []byte) error {
	if err := s.expect(BackpatchPending, Backpatching); err != nil {
		return err
	}
	if off < 0 || off+int64(len(p)) > s.written {
		return s.fail(fmt.Errorf("%w: %d bytes at %d, %d written", ErrPatchRange, len(p), off, s.written))
	}
	s.state = Backpatching

	if _, err := s.s.Seek(s.base+off, io.SeekStart); err != nil {
		return s.fail(fmt.Errorf("%w: seek to %d: %w", audio.ErrIO, s.base+off, err))
	}
	n, err := s.w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return s.fail(fmt.Errorf("%w: patch at %d: %w", audio.ErrIO, off, err))
	}
	if _, err := s.s.Seek(s.base+s.written, io.SeekStart); err != nil {
		return s.fail(fmt.Errorf("%w: seek to end: %w", audio.ErrIO, err))
	}
	return nil
}

// Finish marks the session as done.
func (s *Session) Finish() error {
	if err := s.expect(Streaming, BackpatchPending, Backpatching); err != nil {
		return err
	}
	s.state = Done
	return nil
}

func (s *Session) write(p []byte, op string) error {
	n, err := s.w.Write(p)
	s.written += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return s.fail(fmt.Errorf("%w: %s: %w", audio.ErrIO, op, err))
	}
	return nil
}

func (s *Session) expect(states ...State) error {
	if s.state == Failed {
		return fmt.Errorf("%w: session failed: %w", ErrState, s.err)
	}
	for _, st := range states {
		if s.state == st {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrState, s.state)
}

func (s *Session) fail(err error) error {
	s.state = Failed
	s.err = err
	return err
}
