// SPDX-License-Identifier: EPL-2.0

// Package aiff reads and writes AIFF (Audio Interchange File Format) files.
//
// # Writing
//
// Codec is the filewriter.HeaderCodec for AIFF and NewWriter wraps it in a
// provider:
//
//	n, err := aiff.NewWriter().Write(src, audio.AIFF, audio.Seekable(file))
//
// AIFF stores signed big-endian PCM of 8, 16, 24 or 32 bits. Little-endian
// input is swapped and 8-bit unsigned input is converted to signed. Float
// and companded encodings cannot be written.
//
// The header is 54 bytes:
//
//	FORM <size> AIFF
//	COMM <18> channels numSampleFrames sampleSize sampleRate
//	SSND <size> offset blockSize
//
// The sample rate is an 80-bit IEEE 754 extended float. numSampleFrames and
// both chunk sizes depend on the payload, so a source of unspecified length
// needs a seekable target. An odd-sized SSND chunk is followed by a pad
// byte.
//
// # Decoding
//
// Decoder uses github.com/go-audio/aiff and returns the samples as signed
// big-endian frames:
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not an AIFF file
//	}
//
// go-audio needs an io.ReadSeeker; other readers are read into memory
// first. The decoded source reports an unspecified length.
package aiff
