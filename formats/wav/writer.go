// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"io"

	"github.com/ik5/audfile/audio"
	"github.com/ik5/audfile/filewriter"
)

// NewWriter returns a provider writing WAVE files only.
func NewWriter(opts ...filewriter.Option) *filewriter.Provider {
	return filewriter.NewProvider([]filewriter.HeaderCodec{Codec{}}, opts...)
}

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate. samples must be int16 PCM.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	buf := make([]byte, 2*len(samples))
	for i, s := range samples {
		buf[2*i] = byte(s)
		buf[2*i+1] = byte(uint16(s) >> 8)
	}

	src := audio.NewReaderSource(bytes.NewReader(buf), audio.Format{
		Encoding:   audio.PCMSigned,
		Channels:   1,
		SampleRate: sampleRate,
		SampleBits: 16,
		FrameSize:  2,
	}, audio.Frames(int64(len(samples))))

	_, err := NewWriter().Write(src, audio.WAVE, audio.Stream(w))
	return err
}
