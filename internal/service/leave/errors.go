package leave

import "errors"

var (
	ErrLeaveNotFound    = errors.New("leave request not found")
	ErrAlreadyDecided   = errors.New("leave request already decided")
	ErrInvalidDateRange = errors.New("end_date must not be before start_date")
	ErrInvalidType      = errors.New("invalid leave type")
	ErrInvalidDecision  = errors.New("decision must be APPROVED or REJECTED")
	ErrSelfDecision     = errors.New("cannot decide own leave request")
)
