// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	// ErrUnsupportedFileType is returned, before any I/O, when a writer cannot
	// write the requested file type for the given source.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrIndeterminateLength is returned, before any I/O, when the file type
	// needs the length in its header, the source length is unspecified and
	// the target cannot seek.
	ErrIndeterminateLength = errors.New("stream length not specified for a non-seekable target")

	// ErrIO marks faults of the source or the target. It is always joined
	// with the underlying error.
	ErrIO = errors.New("audio I/O fault")

	// ErrInvalidFormat indicates an inconsistent Format.
	ErrInvalidFormat = errors.New("invalid audio format")

	// ErrInvalidTarget is returned for the zero Target.
	ErrInvalidTarget = errors.New("invalid write target")

	// ErrTooLarge indicates a length that does not fit the container's fields.
	ErrTooLarge = errors.New("audio data too large for file type")
)
