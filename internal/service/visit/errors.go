package visit

import "errors"

var (
	ErrVisitNotFound     = errors.New("visit not found")
	ErrPatientNotFound   = errors.New("patient not found")
	ErrInvalidTransition = errors.New("invalid visit status transition")
)
