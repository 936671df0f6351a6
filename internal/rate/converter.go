package rate

import (
	"bnrfx/internal/domain"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const resultPlaces = 4

// Conversion is a converted amount together with where its rates came from.
type Conversion struct {
	Amount     float64
	From       string
	To         string
	Result     float64
	Timestamp  time.Time
	Provenance domain.Provenance
}

// Convert turns amount of source into target through the base currency and
// rounds the result to 4 decimal places, half away from zero.
func Convert(amount float64, source, target string, rates map[string]float64) (float64, error) {
	if err := ValidateAmount(amount); err != nil {
		return 0, err
	}

	src, dst := normalizeCode(source), normalizeCode(target)
	srcRate, err := lookupRate(rates, src)
	if err != nil {
		return 0, err
	}
	dstRate, err := lookupRate(rates, dst)
	if err != nil {
		return 0, err
	}

	raw := amount * srcRate / dstRate
	if math.IsInf(raw, 0) {
		return 0, fmt.Errorf("%w: result overflows", domain.ErrInvalidAmount)
	}
	result, _ := decimal.NewFromFloat(raw).Round(resultPlaces).Float64()
	return result, nil
}

// ValidateAmount rejects zero, negative and non-finite amounts.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return domain.ErrInvalidAmount
	}
	return nil
}

func lookupRate(rates map[string]float64, code string) (float64, error) {
	v, ok := rates[code]
	if !ok || !(v > 0) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownCurrency, code)
	}
	return v, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
