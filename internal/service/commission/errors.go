package commission

import "errors"

var (
	ErrInvalidCategory = errors.New("invalid service category")
	ErrInvalidPeriod   = errors.New("invalid commission period")
)
