package scheduling

import "errors"

var (
	ErrInvalidTimeRange = errors.New("end_datetime must be after start_datetime")
	ErrInvalidType      = errors.New("invalid schedule type")
)
