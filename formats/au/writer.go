// SPDX-License-Identifier: EPL-2.0

package au

import "github.com/ik5/audfile/filewriter"

// NewWriter returns a provider writing AU files only.
func NewWriter(opts ...filewriter.Option) *filewriter.Provider {
	return filewriter.NewProvider([]filewriter.HeaderCodec{Codec{}}, opts...)
}
