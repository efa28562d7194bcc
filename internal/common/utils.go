package common

import (
	"fmt"
	"strconv"
)

// WipeByteArray overwrites b with zeros. Secrets read from the terminal are
// wiped once they have been handed to the session store.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ParseID parses a positive entity identifier.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}
