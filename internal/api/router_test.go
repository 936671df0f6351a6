package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bnrfx/internal/domain"
	"bnrfx/internal/rate"
	"bnrfx/internal/rate/handler"

	"github.com/stretchr/testify/require"
)

type stubFeed struct{ err error }

func (f stubFeed) Fetch(context.Context) (domain.RateSnapshot, error) {
	if f.err != nil {
		return domain.RateSnapshot{}, f.err
	}
	return domain.NewRateSnapshot(time.Now(), map[string]float64{"EUR": 4.97}), nil
}

type memStore struct {
	snapshot domain.RateSnapshot
	ok       bool
}

func (s *memStore) Load() (domain.RateSnapshot, bool) { return s.snapshot, s.ok }

func (s *memStore) Save(snapshot domain.RateSnapshot) error {
	s.snapshot, s.ok = snapshot, true
	return nil
}

func newTestRouter(feed stubFeed, store *memStore) http.Handler {
	svc := rate.NewService(feed, store, rate.Config{})
	return NewRouter(handler.NewRateHandler(rate.NewValidator(), svc))
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(stubFeed{}, &memStore{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_ConvertLive(t *testing.T) {
	store := &memStore{}
	router := newTestRouter(stubFeed{}, store)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/convert?amount=100&from=eur&to=ron", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var res handler.ConvertResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, 497.0, res.Result)
	require.Equal(t, domain.ProvenanceLive, res.Provenance)
	require.True(t, store.ok)
}

func TestRouter_RatesOfflineFallback(t *testing.T) {
	cached := domain.NewRateSnapshot(time.Now().Add(-72*time.Hour), map[string]float64{"USD": 4.6})
	router := newTestRouter(stubFeed{err: domain.ErrFeedUnavailable}, &memStore{snapshot: cached, ok: true})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/rates", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var res handler.GetRatesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.True(t, res.Offline)
	require.Equal(t, domain.ProvenanceStaleFallback, res.Provenance)
}

func TestRouter_RatesUnavailable(t *testing.T) {
	router := newTestRouter(stubFeed{err: domain.ErrFeedUnavailable}, &memStore{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/rates/currencies", nil))

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
