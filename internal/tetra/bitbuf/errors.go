package bitbuf

import "errors"

// ErrOutOfBounds is returned when a read would run past the end of the
// buffer's backing array.
var ErrOutOfBounds = errors.New("bitbuf: out of bounds")
