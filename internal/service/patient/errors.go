package patient

import "errors"

var (
	ErrPatientNotFound      = errors.New("patient not found")
	ErrVisitNotFound        = errors.New("visit not found")
	ErrServiceNotFound      = errors.New("service not found")
	ErrVisitPatientMismatch = errors.New("visit does not belong to this patient")
	ErrDiscountExceedsPrice = errors.New("discount exceeds treatment price")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
)
