package user

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserExists     = errors.New("username or email already registered")
	ErrHasRelatedData = errors.New("user still owns related records")
	ErrInvalidRole    = errors.New("invalid role")
)
