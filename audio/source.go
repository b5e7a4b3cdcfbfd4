// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

type readerSource struct {
	io.Reader
	format Format
	length FrameLength
}

func (s *readerSource) Format() Format            { return s.format }
func (s *readerSource) FrameLength() FrameLength { return s.length }

// NewReaderSource returns a FrameSource reading raw frames laid out as f
// from r. Raw PCM from pipes or network peers is typically Unspecified.
func NewReaderSource(r io.Reader, f Format, length FrameLength) FrameSource {
	return &readerSource{Reader: r, format: f, length: length}
}
