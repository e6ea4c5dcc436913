package wire

import (
	"net/http"

	"expert-booking/internal/adaptor"
	"expert-booking/internal/data/repository"
	"expert-booking/internal/hub"
	"expert-booking/internal/usecase"
	"expert-booking/pkg/middleware"
	"expert-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring builds the service and handler graph and mounts every route group.
func Wiring(repo *repository.Repository, config *utils.Config, events *hub.Hub, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, events, logger)
	handler := adaptor.NewHandler(service, events, logger)

	router := setupRouter(logger)

	AuthWire(router, handler, repo, logger)
	ExpertWire(router, handler, logger)
	BookingWire(router, handler, logger)
	AdminWire(router, handler, repo, logger)

	logger.Info("All routes wired")

	return &App{Router: router}
}

func setupRouter(logger *zap.Logger) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recover(logger))
	router.Use(middleware.CORS())

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "ok", nil)
	})

	return router
}
