package wire

import (
	"expert-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func ExpertWire(router *chi.Mux, handler *adaptor.Handler, logger *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	router.Route("/api/experts", func(r chi.Router) {
		r.Get("/", handler.Expert.GetExperts)
		r.Get("/categories", handler.Expert.GetCategories)
		r.Get("/{id}", handler.Expert.GetExpertByID)
		r.Get("/{id}/events", handler.Realtime.StreamSlotEvents)
	})

	logger.Info("Expert routes wired")
}
