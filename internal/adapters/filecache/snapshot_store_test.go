package filecache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bnrfx/internal/domain"

	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *SnapshotStore {
	t.Helper()
	return NewSnapshotStore(filepath.Join(t.TempDir(), "rates_cache.json"))
}

func writeFile(t *testing.T, s *SnapshotStore, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0o644))
}

func TestSnapshotStore_SaveAndLoad(t *testing.T) {
	s := newStore(t)
	ts := time.Date(2025, 3, 7, 14, 30, 0, 123456000, time.UTC)

	require.NoError(t, s.Save(domain.NewRateSnapshot(ts, map[string]float64{"EUR": 4.9771, "USD": 4.5987})))

	got, ok := s.Load()
	require.True(t, ok)
	require.True(t, got.Timestamp().Equal(ts))
	require.Equal(t, map[string]float64{"RON": 1.0, "EUR": 4.9771, "USD": 4.5987}, got.Rates())
}

func TestSnapshotStore_FileIsReadableJSON(t *testing.T) {
	s := newStore(t)
	ts := time.Date(2025, 3, 7, 14, 30, 0, 0, time.UTC)
	require.NoError(t, s.Save(domain.NewRateSnapshot(ts, map[string]float64{"EUR": 4.97})))

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	require.Contains(t, string(raw), "\n  \"rates\"")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, "2025-03-07T14:30:00Z", decoded["timestamp"])
	require.Equal(t, map[string]any{"RON": 1.0, "EUR": 4.97}, decoded["rates"])
}

func TestSnapshotStore_SaveOverwrites(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save(domain.NewRateSnapshot(time.Now(), map[string]float64{"EUR": 4.9, "GBP": 5.8})))
	require.NoError(t, s.Save(domain.NewRateSnapshot(time.Now(), map[string]float64{"EUR": 5.0})))

	got, ok := s.Load()
	require.True(t, ok)
	require.Equal(t, map[string]float64{"RON": 1.0, "EUR": 5.0}, got.Rates())

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestSnapshotStore_LoadMissingFile(t *testing.T) {
	_, ok := newStore(t).Load()
	require.False(t, ok)
}

func TestSnapshotStore_LoadCorrupt(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{name: "truncated json", content: `{"timestamp": "2025-03-07T14:30:00Z", "rates": {`},
		{name: "not json", content: `hello`},
		{name: "wrong types", content: `{"timestamp": 5, "rates": {"EUR": "x"}}`},
		{name: "no rates", content: `{"timestamp": "2025-03-07T14:30:00Z"}`},
		{name: "empty file", content: ``},
		{name: "negative rate", content: `{"timestamp": "2025-03-07T10:00:00Z", "rates": {"RON": 1, "EUR": -4.97}}`},
		{name: "zero rate", content: `{"timestamp": "2025-03-07T10:00:00Z", "rates": {"RON": 1, "USD": 0}}`},
		{name: "bad code", content: `{"timestamp": "2025-03-07T10:00:00Z", "rates": {"EURO": 4.97}}`},
		{name: "duplicate code after uppercasing", content: `{"timestamp": "2025-03-07T10:00:00Z", "rates": {"EUR": 4.97, "eur": 4.98}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newStore(t)
			writeFile(t, s, tc.content)

			_, ok := s.Load()
			require.False(t, ok)
		})
	}
}

func TestSnapshotStore_LoadUnreadablePath(t *testing.T) {
	s := NewSnapshotStore(t.TempDir())
	_, ok := s.Load()
	require.False(t, ok)
}

func TestSnapshotStore_LoadBadTimestampKeepsRates(t *testing.T) {
	cases := []string{
		`{"timestamp": "yesterday", "rates": {"EUR": 4.97}}`,
		`{"rates": {"EUR": 4.97}}`,
	}

	for _, content := range cases {
		s := newStore(t)
		writeFile(t, s, content)

		got, ok := s.Load()
		require.True(t, ok)
		require.True(t, got.Timestamp().IsZero())
		v, _ := got.Rate("EUR")
		require.InDelta(t, 4.97, v, 1e-9)
	}
}

func TestSnapshotStore_LoadNaiveTimestamp(t *testing.T) {
	s := newStore(t)
	writeFile(t, s, `{"timestamp": "2025-03-07T14:30:00.123456", "rates": {"RON": 1.0, "EUR": 4.97}}`)

	got, ok := s.Load()
	require.True(t, ok)
	want := time.Date(2025, 3, 7, 14, 30, 0, 123456000, time.Local)
	require.True(t, got.Timestamp().Equal(want))
}

func TestSnapshotStore_SaveToMissingDir(t *testing.T) {
	s := NewSnapshotStore(filepath.Join(t.TempDir(), "missing", "rates_cache.json"))
	err := s.Save(domain.NewRateSnapshot(time.Now(), nil))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to create temp file")
}

func TestSnapshotStore_LoadUppercasesCodes(t *testing.T) {
	s := newStore(t)
	writeFile(t, s, `{"timestamp": "2025-03-07T10:00:00Z", "rates": {"ron": 1, "eur": 4.97}}`)

	got, ok := s.Load()
	require.True(t, ok)
	require.Equal(t, []string{"EUR", "RON"}, got.Codes())
	v, _ := got.Rate("EUR")
	require.InDelta(t, 4.97, v, 1e-9)
}
