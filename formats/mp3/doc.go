// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files into
// an audio.FrameSource:
//
//	source, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
// # Output Format
//
//   - signed 16-bit little-endian PCM
//   - always 2 channels; mono files are duplicated
//   - sample rate of the file
//
// When the input is an io.Seeker the decoder knows the decoded size up
// front and the source reports a known frame length, so it can be written
// to a stream. Otherwise the length is unspecified.
//
// Example converting MP3 to WAV:
//
//	source, _ := mp3.Decoder{}.Decode(mp3File)
//	_, err := wav.NewWriter().WriteFile(source, audio.WAVE, "output.wav")
//
// MP3 writing is not supported.
package mp3
