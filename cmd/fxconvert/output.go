package main

import (
	"bnrfx/internal/domain"
	"bnrfx/internal/rate"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

func convertWith(acq domain.Acquisition, amount float64, from, to string) (string, error) {
	result, err := rate.Convert(amount, from, to, acq.Snapshot.Rates())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s = %s %s",
		strconv.FormatFloat(amount, 'f', -1, 64), strings.ToUpper(strings.TrimSpace(from)),
		strconv.FormatFloat(result, 'f', 4, 64), strings.ToUpper(strings.TrimSpace(to)),
	), nil
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrRatesUnavailable):
		return "exchange rates are not available: the feed could not be reached and there is no local cache"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "please enter an amount greater than zero"
	case errors.Is(err, domain.ErrUnknownCurrency):
		return err.Error()
	default:
		return "error: " + err.Error()
	}
}
