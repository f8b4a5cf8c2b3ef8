package input

import "errors"

var (
	ErrBrokenInvariant = errors.New("input: key ranges do not match buffered moves")
	ErrInvalidKeymap   = errors.New("input: invalid keymap")
)
