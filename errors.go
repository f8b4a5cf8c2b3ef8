package cuboard

import "errors"

// Sentinel errors for the cuboard package.
var (
	ErrDeviceNotFound = errors.New("cuboard: device not found")
	ErrClosed         = errors.New("cuboard: cube closed")
)
