package assistant

import "errors"

var (
	ErrEmptyMessage = errors.New("message is required")
	ErrUnavailable  = errors.New("ai service unavailable")
)
