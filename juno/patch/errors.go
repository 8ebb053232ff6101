package patch

import "errors"

var (
	ErrLength       = errors.New("patch: record must be 25 bytes")
	ErrStartMarker  = errors.New("patch: bad start marker")
	ErrEndMarker    = errors.New("patch: bad end marker")
	ErrManufacturer = errors.New("patch: wrong manufacturer ID")
	ErrBatchLength  = errors.New("patch: buffer length is not a multiple of 25")
)
