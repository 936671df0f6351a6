package handler

import (
	"bnrfx/internal/domain"
	"bnrfx/internal/rate"
	"context"
	"encoding/json"
	"net/http"
)

type ratesService interface {
	GetCurrentRates(ctx context.Context) (domain.Acquisition, error)
	Convert(ctx context.Context, amount float64, from, to string) (rate.Conversion, error)
}

type codeValidator interface {
	ValidateCodes(from, to string) error
}

type Handler struct {
	validator codeValidator
	service   ratesService
}

func NewRateHandler(validator codeValidator, service ratesService) *Handler {
	return &Handler{validator: validator, service: service}
}

type errorResponse struct {
	Error string `json:"error"`
}

const msgRatesUnavailable = "exchange rates are not available right now, check your connection and try again"

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{Error: errorMsg})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
