package wire

import (
	"expert-booking/internal/adaptor"
	"expert-booking/internal/data/repository"
	"expert-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func AdminWire(router *chi.Mux, handler *adaptor.Handler, repo *repository.Repository, logger *zap.Logger) {
	// ==================== ADMIN ROUTES ====================
	router.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, logger))
		r.Use(middleware.Admin(repo.User, logger))

		r.Get("/dashboard", handler.Admin.Dashboard)
		r.Get("/bookings", handler.Admin.GetAllBookings)
		r.Patch("/bookings/{id}/status", handler.Admin.SetBookingStatus)
		r.Post("/experts", handler.Admin.CreateExpert)
		r.Delete("/experts/{id}", handler.Admin.DeleteExpert)
	})

	logger.Info("Admin routes wired")
}
