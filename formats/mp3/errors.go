package mp3

import "errors"

// ErrNotMP3File indicates the input has no decodable MPEG audio frames
var ErrNotMP3File = errors.New("not an MP3 file")
