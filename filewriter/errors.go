package filewriter

import "errors"

// ErrFieldOutsideHeader is returned when a codec declares a length field
// that does not lie within the header it emitted.
var ErrFieldOutsideHeader = errors.New("length field outside header")
