package nurseprofile

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already in use")
	ErrPhotoUnavailable = errors.New("photo storage is not configured")
	ErrInvalidPhoto     = errors.New("profile photo must be a JPEG, PNG or WebP image")
)
