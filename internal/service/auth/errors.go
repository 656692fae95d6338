package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("username or password is incorrect")
	ErrRoleMismatch       = errors.New("account role does not match the requested role")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrAccountLocked      = errors.New("account temporarily locked due to repeated login failures")
	ErrUserExists         = errors.New("username or email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidResetToken  = errors.New("reset token is invalid or expired")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrRegistrationClosed = errors.New("public registration is disabled")
)
