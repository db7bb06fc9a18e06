package domain

import "errors"

// ErrNotFound is returned by stores when the requested user does not exist.
var ErrNotFound = errors.New("not found")
