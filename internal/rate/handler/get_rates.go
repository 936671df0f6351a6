package handler

import (
	"bnrfx/internal/domain"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type GetRatesResponse struct {
	Timestamp  time.Time          `json:"timestamp"`
	Provenance domain.Provenance  `json:"provenance"`
	Offline    bool               `json:"offline"`
	Rates      map[string]float64 `json:"rates"`
}

type GetCurrenciesResponse struct {
	Codes []string `json:"codes"`
}

func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	acq, ok := h.acquire(w, r, "GetRates")
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, GetRatesResponse{
		Timestamp:  acq.Snapshot.Timestamp(),
		Provenance: acq.Provenance,
		Offline:    acq.Offline(),
		Rates:      acq.Snapshot.Rates(),
	})
}

func (h *Handler) GetCurrencies(w http.ResponseWriter, r *http.Request) {
	acq, ok := h.acquire(w, r, "GetCurrencies")
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, GetCurrenciesResponse{Codes: acq.Snapshot.Codes()})
}

func (h *Handler) acquire(w http.ResponseWriter, r *http.Request, handlerName string) (domain.Acquisition, bool) {
	acq, err := h.service.GetCurrentRates(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrRatesUnavailable) {
			writeError(w, http.StatusServiceUnavailable, msgRatesUnavailable)
			return domain.Acquisition{}, false
		}
		msg := "ups, couldn't get rates this time"
		logrus.WithError(err).WithField("handler", handlerName).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return domain.Acquisition{}, false
	}
	return acq, true
}
