package repository

import "errors"

// Store errors.
var (
	ErrNotFound    = errors.New("user context not found")
	ErrEmptyUserID = errors.New("user id is empty")
)
