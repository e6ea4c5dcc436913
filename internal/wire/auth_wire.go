package wire

import (
	"expert-booking/internal/adaptor"
	"expert-booking/internal/data/repository"
	"expert-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func AuthWire(router *chi.Mux, handler *adaptor.Handler, repo *repository.Repository, logger *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	router.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", handler.Auth.Register)
		r.Post("/login", handler.Auth.Login)

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(pr chi.Router) {
			pr.Use(middleware.AuthSession(repo.Session, logger))
			pr.Post("/logout", handler.Auth.Logout)
			pr.Get("/me", handler.Auth.Me)
		})
	})

	logger.Info("Auth routes wired")
}
