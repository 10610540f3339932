package services

import "errors"

// Sentinel errors returned by the recommendation services. Handlers map these
// to HTTP statuses; anything else is an infrastructure failure.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrCardNotFound     = errors.New("credit card not found")
	ErrMerchantNotFound = errors.New("merchant not found")
	ErrNoActiveCards    = errors.New("no active cards found for user")
	ErrNoSuitableCard   = errors.New("no suitable card found for this purchase")
)
