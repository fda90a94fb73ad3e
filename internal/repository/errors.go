package repository

import "errors"

// ErrNotFound is wrapped by Get methods when no row matches. Callers test
// with errors.Is.
var ErrNotFound = errors.New("not found")
