package storage

import "errors"

// ErrNotFound is returned when a lookup or session read finds nothing for the given key.
var ErrNotFound = errors.New("storage: not found")
