package task

import "errors"

// ErrNotFound is returned when a task lookup misses.
var ErrNotFound = errors.New("task not found")
