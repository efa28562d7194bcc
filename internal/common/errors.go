package common

import "errors"

// ErrInvalidID is returned for identifiers that are not positive integers.
var ErrInvalidID = errors.New("invalid id")
