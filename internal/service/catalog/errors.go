package catalog

import "errors"

var (
	ErrCodeExists      = errors.New("service code already exists")
	ErrInvalidCategory = errors.New("invalid service category")
	ErrInvalidPrice    = errors.New("base price must not be negative")
	ErrInvalidRate     = errors.New("commission rate must be between 0 and 100")
)
