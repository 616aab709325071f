package textenc

import "errors"

var (
	errOutOfRange   = errors.New("textenc: offset out of range")
	errUnterminated = errors.New("textenc: string heap span has no terminating NUL")
)
