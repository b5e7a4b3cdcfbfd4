// SPDX-License-Identifier: EPL-2.0

// Package pcm holds in-place sample conversions shared by the container codecs.
package pcm

// Swap reverses the byte order of every width-byte sample in p.
// Trailing bytes that do not form a whole sample are left untouched.
func Swap(p []byte, width int) {
	if width < 2 {
		return
	}
	for i := 0; i+width <= len(p); i += width {
		s := p[i : i+width]
		for a, b := 0, width-1; a < b; a, b = a+1, b-1 {
			s[a], s[b] = s[b], s[a]
		}
	}
}

// FlipSign converts 8-bit samples between signed and offset-binary.
func FlipSign(p []byte) {
	for i := range p {
		p[i] ^= 0x80
	}
}
