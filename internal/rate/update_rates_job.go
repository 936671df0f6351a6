package rate

import (
	"bnrfx/internal/domain"
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

const refreshTimeout = 30 * time.Second

// RatesSource is anything that can produce the current rates.
type RatesSource interface {
	GetCurrentRates(ctx context.Context) (domain.Acquisition, error)
}

// RefreshRates runs one acquisition so the cache is renewed once it goes stale.
func RefreshRates(ctx context.Context, execID string, rates RatesSource) error {
	reqCtx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	acq, err := rates.GetCurrentRates(reqCtx)
	if err != nil {
		return fmt.Errorf("failed to refresh rates: %w", err)
	}

	fields := logrus.Fields{
		"exec_id":    execID,
		"provenance": acq.Provenance,
		"as_of":      acq.Snapshot.Timestamp(),
	}
	if acq.Offline() {
		logrus.WithFields(fields).Warn("Rates refresh fell back to stale cache")
		return nil
	}
	logrus.WithFields(fields).Info("Rates refresh done")
	return nil
}
