package handler

import (
	"bnrfx/internal/domain"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type ConvertResponse struct {
	Amount     float64           `json:"amount"`
	From       string            `json:"from"`
	To         string            `json:"to"`
	Result     float64           `json:"result"`
	Timestamp  time.Time         `json:"timestamp"`
	Provenance domain.Provenance `json:"provenance"`
	Offline    bool              `json:"offline"`
}

func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from := strings.ToUpper(strings.TrimSpace(q.Get("from")))
	to := strings.ToUpper(strings.TrimSpace(q.Get("to")))

	if err := h.validator.ValidateCodes(from, to); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(q.Get("amount")), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "amount must be a number")
		return
	}

	conv, err := h.service.Convert(r.Context(), amount, from, to)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			writeError(w, http.StatusBadRequest, domain.ErrInvalidAmount.Error())
		case errors.Is(err, domain.ErrUnknownCurrency):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrRatesUnavailable):
			writeError(w, http.StatusServiceUnavailable, msgRatesUnavailable)
		default:
			msg := "ups, couldn't convert this time"
			logrus.WithError(err).WithFields(logrus.Fields{"handler": "Convert", "from": from, "to": to}).Error(msg)
			writeError(w, http.StatusInternalServerError, msg)
		}
		return
	}

	writeJSON(w, http.StatusOK, ConvertResponse{
		Amount:     conv.Amount,
		From:       conv.From,
		To:         conv.To,
		Result:     conv.Result,
		Timestamp:  conv.Timestamp,
		Provenance: conv.Provenance,
		Offline:    conv.Provenance == domain.ProvenanceStaleFallback,
	})
}
