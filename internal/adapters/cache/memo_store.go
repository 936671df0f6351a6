package cache

import (
	"bnrfx/internal/adapters"
	"bnrfx/internal/domain"
	"fmt"

	"github.com/dgraph-io/ristretto"
)

// MemoStore keeps the last snapshot in memory in front of a persistent store,
// so repeated loads do not hit the disk.
type MemoStore struct {
	cache *ristretto.Cache
	next  adapters.SnapshotStore
	key   string
}

func NewMemoStore(next adapters.SnapshotStore, key string, maxItems int64) (*MemoStore, error) {
	if maxItems <= 0 {
		maxItems = 16
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create snapshot memo cache failed: %w", err)
	}
	return &MemoStore{cache: c, next: next, key: key}, nil
}

func (m *MemoStore) Load() (domain.RateSnapshot, bool) {
	if v, ok := m.cache.Get(m.key); ok {
		if snapshot, ok := v.(domain.RateSnapshot); ok {
			return snapshot, true
		}
	}

	snapshot, ok := m.next.Load()
	if !ok {
		return domain.RateSnapshot{}, false
	}
	m.remember(snapshot)
	return snapshot, true
}

// Save persists through the wrapped store. The memory copy is updated even if
// the write fails, so this process keeps serving the newest snapshot.
func (m *MemoStore) Save(snapshot domain.RateSnapshot) error {
	m.remember(snapshot)
	return m.next.Save(snapshot)
}

func (m *MemoStore) remember(snapshot domain.RateSnapshot) {
	m.cache.Set(m.key, snapshot, 1)
	m.cache.Wait()
}

func (m *MemoStore) Close() { m.cache.Close() }
