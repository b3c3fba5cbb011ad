package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/mtg-cardfilter/internal/api/handlers"
	"github.com/ramonehamilton/mtg-cardfilter/internal/api/response"
	"github.com/ramonehamilton/mtg-cardfilter/internal/version"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check endpoint (no versioning)
	s.router.Get("/health", s.healthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Mana routes
		manaHandler := handlers.NewManaHandler()
		r.Post("/mana/parse", manaHandler.ParseCost)

		// Card routes
		cardHandler := handlers.NewCardHandler(s.searcher, s.decodeOptions)
		r.Route("/cards", func(r chi.Router) {
			r.Post("/search", cardHandler.SearchCards)
			r.Get("/name/{name}", cardHandler.GetCardByName)
		})

		// Filter routes
		filterHandler := handlers.NewFilterHandler(s.filters, s.searcher, s.decodeOptions)
		r.Route("/filters", func(r chi.Router) {
			r.Post("/validate", filterHandler.ValidateFilter)
			r.Get("/", filterHandler.ListFilters)
			r.Post("/", filterHandler.CreateFilter)
			r.Get("/{filterID}", filterHandler.GetFilter)
			r.Put("/{filterID}", filterHandler.UpdateFilter)
			r.Delete("/{filterID}", filterHandler.DeleteFilter)
			r.Post("/{filterID}/search", filterHandler.SearchWithFilter)
		})

		// System routes
		systemHandler := handlers.NewSystemHandler(s.catalog)
		r.Get("/stats", systemHandler.GetStats)
	})
}

// healthCheck returns server health status.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "mtg-cardfilter-api",
		"version": version.GetVersion(),
		"cards":   s.catalog.Count(),
	})
}
