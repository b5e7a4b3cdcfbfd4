// SPDX-License-Identifier: EPL-2.0

// Package audio defines the types shared by audio file writers and decoders.
//
// # Frame Sources
//
// A FrameSource yields raw, already decoded frames together with their
// Format and FrameLength:
//
//	type FrameSource interface {
//	    io.Reader
//	    Format() Format
//	    FrameLength() FrameLength
//	}
//
// FrameLength is either Frames(n) or Unspecified. The zero value is
// Unspecified, so a zero-length source is never confused with a source of
// unknown length.
//
// # Targets
//
// Files are written to a Target. Stream wraps any io.Writer and is written
// strictly front to back. Seekable wraps an io.WriteSeeker and lets a writer
// correct header length fields after the payload:
//
//	n, err := writer.Write(src, audio.WAVE, audio.Stream(conn))
//	n, err = writer.Write(src, audio.WAVE, audio.Seekable(file))
//
// # Writer Providers
//
// WriterProvider is the contract of every file writer. The Registry combines
// several providers, plus decoders keyed by file extension:
//
//	registry := audio.NewRegistry(wavWriter, auWriter)
//	registry.RegisterDecoder("mp3", mp3.Decoder{})
//	types := registry.FileTypesFor(src)
//
// # Error Handling
//
// Writers report three classes of failure, all testable with errors.Is:
//   - ErrUnsupportedFileType: the type cannot be written for this source
//   - ErrIndeterminateLength: a stream target, an unspecified length and a
//     header that needs it
//   - ErrIO: the source or the target failed; joined with the cause
//
// The first two are returned before any byte is written.
package audio
