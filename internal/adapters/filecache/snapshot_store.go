package filecache

import (
	"bnrfx/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// naiveTimestampLayout is the zone-less ISO-8601 form older caches were written with.
const naiveTimestampLayout = "2006-01-02T15:04:05.999999999"

type SnapshotStore struct {
	path string
}

type cacheFile struct {
	Timestamp string             `json:"timestamp"`
	Rates     map[string]float64 `json:"rates"`
}

// Load returns the persisted snapshot. A missing or corrupt file is reported as
// absent; corruption is only logged.
func (s *SnapshotStore) Load() (domain.RateSnapshot, bool) {
	snapshot, err := s.read()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logrus.WithError(err).WithField("path", s.path).Warn("Ignoring unreadable rate cache")
		}
		return domain.RateSnapshot{}, false
	}
	return snapshot, true
}

func (s *SnapshotStore) read() (domain.RateSnapshot, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return domain.RateSnapshot{}, err
	}

	var file cacheFile
	if err = json.Unmarshal(raw, &file); err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("%w: failed to decode %s: %w", domain.ErrCacheUnreadable, s.path, err)
	}
	if file.Rates == nil {
		return domain.RateSnapshot{}, fmt.Errorf("%w: %s has no rates", domain.ErrCacheUnreadable, s.path)
	}
	rates, err := normalizeRates(file.Rates)
	if err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("%w: %s: %w", domain.ErrCacheUnreadable, s.path, err)
	}

	// An unparsable timestamp leaves the snapshot usable as a fallback but never fresh.
	ts, err := parseTimestamp(file.Timestamp)
	if err != nil {
		logrus.WithError(err).WithField("path", s.path).Warn("Rate cache timestamp is not valid")
	}
	return domain.NewRateSnapshot(ts, rates), nil
}

// normalizeRates uppercases codes and rejects the whole table if any entry
// could not have come from the feed.
func normalizeRates(raw map[string]float64) (map[string]float64, error) {
	rates := make(map[string]float64, len(raw))
	for code, v := range raw {
		normalized := strings.ToUpper(strings.TrimSpace(code))
		if !domain.IsCurrencyCode(normalized) {
			return nil, fmt.Errorf("invalid currency code %q", code)
		}
		if _, dup := rates[normalized]; dup {
			return nil, fmt.Errorf("duplicate currency code %q", normalized)
		}
		if v <= 0 {
			return nil, fmt.Errorf("non-positive rate %v for %q", v, code)
		}
		rates[normalized] = v
	}
	return rates, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("timestamp is missing")
	}
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ts, nil
	}
	ts, err := time.ParseInLocation(naiveTimestampLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", raw, err)
	}
	return ts, nil
}

// Save overwrites the cache file with snapshot.
func (s *SnapshotStore) Save(snapshot domain.RateSnapshot) error {
	raw, err := json.MarshalIndent(cacheFile{
		Timestamp: snapshot.Timestamp().Format(time.RFC3339Nano),
		Rates:     snapshot.Rates(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode rate cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(append(raw, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write rate cache: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write rate cache: %w", err)
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

func (s *SnapshotStore) Path() string { return s.path }

func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}
