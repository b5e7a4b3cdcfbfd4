// SPDX-License-Identifier: EPL-2.0

package audfile

import (
	"github.com/ik5/audfile/audio"
	"github.com/ik5/audfile/filewriter"
	"github.com/ik5/audfile/formats/aiff"
	"github.com/ik5/audfile/formats/au"
	"github.com/ik5/audfile/formats/mp3"
	"github.com/ik5/audfile/formats/vorbis"
	"github.com/ik5/audfile/formats/wav"
)

// Codecs returns the header codecs of every built-in container, WAVE first.
func Codecs() []filewriter.HeaderCodec {
	return []filewriter.HeaderCodec{wav.Codec{}, aiff.Codec{}, au.Codec{}}
}

// NewWriter returns a provider writing every built-in container type.
func NewWriter(opts ...filewriter.Option) *filewriter.Provider {
	return filewriter.NewProvider(Codecs(), opts...)
}

// NewRegistry returns a registry holding the built-in decoders, keyed by
// file extension, and NewWriter(opts...) as its only writer. The alternative
// extensions wave, aiff and snd resolve to their container types.
func NewRegistry(opts ...filewriter.Option) *audio.Registry {
	r := audio.NewRegistry(NewWriter(opts...))

	r.RegisterDecoder("wav", wav.Decoder{})
	r.RegisterDecoder("wave", wav.Decoder{})
	r.RegisterDecoder("aif", aiff.Decoder{})
	r.RegisterDecoder("aiff", aiff.Decoder{})
	r.RegisterDecoder("au", au.Decoder{})
	r.RegisterDecoder("snd", au.Decoder{})
	r.RegisterDecoder("mp3", mp3.Decoder{})
	r.RegisterDecoder("ogg", vorbis.Decoder{})

	r.RegisterExtension("wave", audio.WAVE)
	r.RegisterExtension("aiff", audio.AIFF)
	r.RegisterExtension("snd", audio.AU)

	return r
}
