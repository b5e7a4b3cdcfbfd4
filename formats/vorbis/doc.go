// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis
// files into an audio.FrameSource of interleaved 32-bit little-endian
// floats:
//
//	source, err := vorbis.Decoder{}.Decode(file)
//	if errors.Is(err, vorbis.ErrNotVorbisFile) {
//	    // Handle error
//	}
//
// The channel count and sample rate are those of the stream. The length is
// known only when oggvorbis can report it, which needs a seekable input;
// otherwise the source is unspecified and must be written to a seekable
// target or to a container that can be streamed, such as AU.
//
// Vorbis writing is not supported.
package vorbis
