// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files.
//
// # Writing
//
// Codec is the filewriter.HeaderCodec for WAVE. NewWriter wraps it in a
// provider that writes any audio.FrameSource the codec can encode:
//
//	n, err := wav.NewWriter().Write(src, audio.WAVE, audio.Seekable(file))
//
// Supported sample encodings:
//   - signed PCM, 8, 16, 24 or 32 bits (8-bit is stored unsigned)
//   - unsigned PCM, 8 bits
//   - IEEE float, 32 or 64 bits
//   - G.711 mu-law and A-law, 8 bits
//
// Non-PCM encodings get an 18-byte fmt chunk and a fact chunk. Big-endian
// input is converted to little-endian as it is copied.
//
// WAVE headers carry the data size, so a source of unspecified length can
// only be written to a seekable target. The header is written with
// placeholder sizes and patched after the last frame.
//
// WriteWAV16 is a shortcut for mono 16-bit samples held in memory.
//
// # Decoding
//
// Decoder parses the RIFF header, skips unknown chunks and returns the
// payload of the data chunk verbatim:
//
//	source, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE
//	}
//
// The source reports the frame count declared by the data chunk.
package wav
