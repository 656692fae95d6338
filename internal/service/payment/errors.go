package payment

import "errors"

var (
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrVisitNotFound       = errors.New("visit not found")
	ErrInvalidMethod       = errors.New("invalid payment method")
	ErrInvalidAmount       = errors.New("payment amount must be positive")
	ErrInsufficientPayment = errors.New("paid amount is less than the amount due")
	ErrGatewayFailure      = errors.New("payment gateway error")
	ErrGatewayDisabled     = errors.New("payment gateway is not configured")
	ErrInvalidSignature    = errors.New("invalid notification signature")
)
