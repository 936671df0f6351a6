package rate

import (
	"bnrfx/internal/adapters"
	"bnrfx/internal/domain"
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const DefaultFreshFor = 24 * time.Hour

type Config struct {
	// FreshFor is how long a cached snapshot is served without contacting the feed.
	FreshFor time.Duration
}

// Service decides, per call, whether the current rates come from the cache or
// from the feed.
type Service struct {
	feed     adapters.FeedClient
	store    adapters.SnapshotStore
	freshFor time.Duration
	now      func() time.Time
	group    singleflight.Group
}

// Outcome is the result of an asynchronous acquisition.
type Outcome struct {
	Acquisition domain.Acquisition
	Err         error
}

// GetCurrentRates returns a fresh cache entry if there is one, otherwise a live
// snapshot, otherwise any cached snapshot marked as stale. It fails with
// domain.ErrRatesUnavailable only when there is neither a feed nor a cache.
// Concurrent callers share a single acquisition; one caller giving up does not
// cancel it for the others.
func (s *Service) GetCurrentRates(ctx context.Context) (domain.Acquisition, error) {
	ch := s.group.DoChan("current", func() (any, error) {
		return s.acquire(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return domain.Acquisition{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.Acquisition{}, res.Err
		}
		return res.Val.(domain.Acquisition), nil
	}
}

func (s *Service) acquire(ctx context.Context) (domain.Acquisition, error) {
	cached, hasCache := s.store.Load()
	if hasCache {
		if age, ok := cached.Age(s.now()); ok && age < s.freshFor {
			logrus.WithField("age", age.Round(time.Second)).Debug("Serving rates from fresh cache")
			return domain.Acquisition{Snapshot: cached, Provenance: domain.ProvenanceFreshCache}, nil
		}
	}

	snapshot, err := s.feed.Fetch(ctx)
	if err == nil {
		if saveErr := s.store.Save(snapshot); saveErr != nil {
			logrus.WithError(saveErr).Error("Failed to persist fetched rates")
		}
		logrus.WithField("currencies", len(snapshot.Codes())).Info("Fetched live rates")
		return domain.Acquisition{Snapshot: snapshot, Provenance: domain.ProvenanceLive}, nil
	}

	if hasCache {
		logrus.WithError(err).WithField("cached_at", cached.Timestamp()).Warn("Rate feed unavailable, serving stale cache")
		return domain.Acquisition{Snapshot: cached, Provenance: domain.ProvenanceStaleFallback}, nil
	}

	logrus.WithError(err).Error("Rate feed unavailable and no cache present")
	return domain.Acquisition{}, fmt.Errorf("%w: %w", domain.ErrRatesUnavailable, err)
}

// Acquire runs GetCurrentRates in the background and delivers exactly one
// Outcome on the returned channel.
func (s *Service) Acquire(ctx context.Context) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		acq, err := s.GetCurrentRates(ctx)
		out <- Outcome{Acquisition: acq, Err: err}
	}()
	return out
}

// Convert acquires the current rates and converts amount from one currency to another.
func (s *Service) Convert(ctx context.Context, amount float64, from, to string) (Conversion, error) {
	if err := ValidateAmount(amount); err != nil {
		return Conversion{}, err
	}

	acq, err := s.GetCurrentRates(ctx)
	if err != nil {
		return Conversion{}, err
	}

	result, err := Convert(amount, from, to, acq.Snapshot.Rates())
	if err != nil {
		return Conversion{}, err
	}

	return Conversion{
		Amount:     amount,
		From:       normalizeCode(from),
		To:         normalizeCode(to),
		Result:     result,
		Timestamp:  acq.Snapshot.Timestamp(),
		Provenance: acq.Provenance,
	}, nil
}

func NewService(feed adapters.FeedClient, store adapters.SnapshotStore, cfg Config) *Service {
	freshFor := cfg.FreshFor
	if freshFor <= 0 {
		freshFor = DefaultFreshFor
	}
	return &Service{feed: feed, store: store, freshFor: freshFor, now: time.Now}
}
