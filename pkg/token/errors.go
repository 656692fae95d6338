package token

import "errors"

var (
	ErrMisconfigured = errors.New("token: misconfigured manager")

	// ErrInvalid wraps every verification failure: bad signature, wrong
	// issuer or audience, expiry, or a missing subject.
	ErrInvalid = errors.New("token: invalid")

	errNoSubject = errors.New("missing user id")
)
