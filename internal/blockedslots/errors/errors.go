package errors

import "errors"

var (
	ErrNotFound  = errors.New("blocked slot not found")
	ErrInvalidID = errors.New("invalid blocked slot id")
)
