package repository

import "errors"

// ErrNotFound is returned for rows that do not exist or are soft-deleted.
var ErrNotFound = errors.New("task not found")
