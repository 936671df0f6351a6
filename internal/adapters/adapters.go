package adapters

import (
	"bnrfx/internal/domain"
	"context"
)

type FeedClient interface {
	Fetch(ctx context.Context) (domain.RateSnapshot, error)
}

type SnapshotStore interface {
	Load() (domain.RateSnapshot, bool)
	Save(snapshot domain.RateSnapshot) error
}
