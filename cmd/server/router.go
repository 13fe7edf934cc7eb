package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MuhammadAhmed-503/study-buddy/internal/api"
	apiMiddleware "github.com/MuhammadAhmed-503/study-buddy/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier)
	documentHandler := api.NewDocumentHandler(app.documentService, app.contentService)
	chatHandler := api.NewChatHandler(app.chatService)
	reviewHandler := api.NewReviewHandler(app.reviewService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Document endpoints
			r.Post("/documents", documentHandler.Upload)
			r.Get("/documents", documentHandler.List)
			r.Get("/documents/{id}", documentHandler.Get)
			r.Post("/documents/{id}/regenerate", documentHandler.Regenerate)
			r.Get("/documents/{id}/summary", documentHandler.GetSummary)
			r.Get("/documents/{id}/flashcards", documentHandler.ListFlashcards)
			r.Get("/documents/{id}/quiz", documentHandler.GetQuiz)

			// Chat endpoints
			r.Post("/chat", chatHandler.SendMessage)
			r.Get("/chat", chatHandler.History)

			// Review endpoints
			r.Get("/reviews/due", reviewHandler.ListDue)
			r.Post("/flashcards/{id}/review", reviewHandler.SubmitReview)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
