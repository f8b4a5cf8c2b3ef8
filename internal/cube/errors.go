package cube

import "errors"

var (
	ErrInvalidNotation = errors.New("cube: invalid notation")
	ErrInvalidState    = errors.New("cube: invalid state")
)
