package domain

import "errors"

var (
	ErrFeedUnavailable  = errors.New("rate feed unavailable")
	ErrCacheUnreadable  = errors.New("rate cache unreadable")
	ErrRatesUnavailable = errors.New("rates unavailable")
	ErrInvalidAmount    = errors.New("amount must be a positive number")
	ErrUnknownCurrency  = errors.New("unknown currency")
)
