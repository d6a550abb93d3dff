package errors

import "errors"

var (
	ErrNotFound  = errors.New("turf not found")
	ErrInvalidID = errors.New("invalid turf id")
)
