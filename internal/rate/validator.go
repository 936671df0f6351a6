package rate

import (
	"bnrfx/internal/domain"
	"errors"
)

var (
	ErrFromRequired = errors.New("source currency is required")
	ErrToRequired   = errors.New("target currency is required")
	ErrFromFormat   = errors.New("source currency must be a 3-letter code")
	ErrToFormat     = errors.New("target currency must be a 3-letter code")
)

// CodeValidator checks the shape of user supplied currency codes before any
// rates are acquired. Whether a code is known is decided by the snapshot.
type CodeValidator struct{}

func (v *CodeValidator) ValidateCodes(from, to string) error {
	from, to = normalizeCode(from), normalizeCode(to)
	if from == "" {
		return ErrFromRequired
	}
	if to == "" {
		return ErrToRequired
	}
	if !domain.IsCurrencyCode(from) {
		return ErrFromFormat
	}
	if !domain.IsCurrencyCode(to) {
		return ErrToFormat
	}
	return nil
}

func NewValidator() *CodeValidator {
	return &CodeValidator{}
}
