package errors

import "errors"

var (
	ErrNotFound  = errors.New("user not found")
	ErrInvalidID = errors.New("invalid user id")
	ErrDuplicate = errors.New("user with this phone already exists")
)
