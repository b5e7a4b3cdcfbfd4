// SPDX-License-Identifier: EPL-2.0

package aiff

import "github.com/ik5/audfile/filewriter"

// NewWriter returns a provider writing AIFF files only.
func NewWriter(opts ...filewriter.Option) *filewriter.Provider {
	return filewriter.NewProvider([]filewriter.HeaderCodec{Codec{}}, opts...)
}
