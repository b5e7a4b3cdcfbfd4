// SPDX-License-Identifier: EPL-2.0

// Package au reads and writes Sun/NeXT AU files.
//
// The header is six big-endian 32-bit words: the ".snd" magic, the data
// offset, the data size, the encoding code, the sample rate and the channel
// count. Codec writes a 24-byte header with no annotation.
//
// AU is the one built-in container that can be streamed without an advance
// length: the data size is written as UnknownSize (0xFFFFFFFF) and readers
// take the data to end of file. On a seekable target the size is patched
// to the real value.
//
// Decoder skips any annotation and returns the data verbatim.
package au
