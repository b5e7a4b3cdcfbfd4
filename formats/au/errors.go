package au

import "errors"

var (
	ErrNotAuFile           = errors.New("not an AU file")
	ErrUnsupportedAuLayout = errors.New("unsupported AU layout")
	ErrUnsupportedEncoding = errors.New("unsupported AU sample encoding")
)
