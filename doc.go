// SPDX-License-Identifier: EPL-2.0

// Package audfile writes decoded audio frames as WAVE, AIFF and AU files.
//
// The work is split across packages:
//   - audio: frame sources, formats, targets, the WriterProvider contract
//     and the Registry
//   - filewriter: the generic write algorithm over per-container header
//     codecs
//   - formats/wav, formats/aiff, formats/au: the containers, each with a
//     codec and a decoder
//   - formats/mp3, formats/vorbis: decoders feeding the writers
//
// This package wires the built-in pieces together.
//
// # Quick Start
//
//	registry := audfile.NewRegistry()
//
//	dec, _ := registry.Decoder("mp3")
//	src, _ := dec.Decode(in)
//
//	fmt.Println(registry.FileTypesFor(src)) // [WAVE AIFF AU]
//	n, err := registry.Write(src, audio.WAVE, audio.Seekable(out))
//
// # Streams and Seekable Targets
//
// WAVE and AIFF headers carry the payload size. When the source knows its
// length up front the header is exact and any io.Writer will do. When it
// does not, the header is written with placeholders and patched at the
// end, which needs an io.WriteSeeker:
//
//	_, err := registry.Write(src, audio.WAVE, audio.Stream(os.Stdout))
//	if errors.Is(err, audio.ErrIndeterminateLength) {
//	    // nothing was written; use a file or AU
//	}
//
// AU marks the size as unknown instead, so it can always be streamed.
package audfile
