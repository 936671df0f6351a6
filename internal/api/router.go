package api

import (
	"bnrfx/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(rateHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	router.Get("/api/v1/rates", rateHandler.GetRates)
	router.Get("/api/v1/rates/currencies", rateHandler.GetCurrencies)
	router.Get("/api/v1/convert", rateHandler.Convert)
	return router
}
