package handlers

import (
	"Flashcards/internal/config"
	"Flashcards/internal/middleware"
	"Flashcards/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	flashcardService *service.FlashcardService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithCORS(config.CORSOrigins))
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	flashcardHandler := NewFlashcardHandler(flashcardService, logger)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Post("/api/user/logout", userHandler.Logout)
	r.Get("/api/user/status", userHandler.Status)

	// Flashcards
	r.Route("/api/flashcards", func(r chi.Router) {
		r.Get("/", flashcardHandler.List)
		r.Post("/", flashcardHandler.Add)
		r.Get("/stats", flashcardHandler.Stats)
		r.Get("/{id}", flashcardHandler.Get)
		r.Put("/{id}", flashcardHandler.Update)
		r.Delete("/{id}", flashcardHandler.Delete)
	})
	r.Get("/api/categories/{category}/flashcards", flashcardHandler.ListByCategory)

	return &Handler{Router: r}
}
