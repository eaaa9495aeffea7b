package repository

import "errors"

// ErrNotFound is the sentinel wrapped by repositories when a row is missing.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a conditional write matched no rows because
// a concurrent writer changed the row first.
var ErrConflict = errors.New("conflict: row changed concurrently")
