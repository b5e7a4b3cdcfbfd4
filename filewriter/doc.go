// SPDX-License-Identifier: EPL-2.0

// Package filewriter implements audio.WriterProvider on top of per-container
// header codecs.
//
// A HeaderCodec describes a header as a Layout: the header bytes, the
// offsets of every field that depends on the payload length, the payload
// alignment and the in-place sample conversion the container needs. The
// Provider does the rest:
//
//   - rejects the type before any I/O if the codec cannot encode the source
//   - rejects stream targets before any I/O when the codec requires a length
//     and the source length is unspecified
//   - writes the header, the converted frames and the padding
//   - on seekable targets, writes the header with placeholder lengths and
//     rewrites the length fields once the payload is complete
//
// Writing to a file:
//
//	p := filewriter.NewProvider([]filewriter.HeaderCodec{wav.Codec{}, au.Codec{}})
//	n, err := p.WriteFile(src, audio.WAVE, "out.wav")
//
// Writing to a pipe, where only known lengths (or AU) work:
//
//	n, err := p.Write(src, audio.WAVE, audio.Stream(os.Stdout))
//	if errors.Is(err, audio.ErrIndeterminateLength) {
//	    // buffer to a temporary file, or choose AU
//	}
package filewriter
