package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the file is not a valid AIFF file
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrUnsupportedBitDepth indicates a sample size other than 8, 16, 24 or 32 bits
	ErrUnsupportedBitDepth = errors.New("unsupported AIFF bit depth")

	// ErrUnsupportedAiffLayout indicates an unsupported AIFF layout
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")

	// ErrUnsupportedAiffChunks indicates sound data that could not be read
	ErrUnsupportedAiffChunks = errors.New("unsupported or malformed AIFF chunks")

	// ErrUnsupportedEncoding indicates frames AIFF cannot represent
	ErrUnsupportedEncoding = errors.New("unsupported AIFF sample encoding")
)
