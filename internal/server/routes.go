package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lorakeys/internal/characters"
	"lorakeys/internal/handlers"
	"lorakeys/internal/handlers/api"
	"lorakeys/internal/library"
	"lorakeys/internal/triggers"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(svc *triggers.Service, store *triggers.Store, lib *library.Library, chars *characters.Catalog) {
	// Initialize handlers
	keywordHandler := api.NewKeywordHandler(svc)
	libraryHandler := api.NewLibraryHandler(lib)
	characterHandler := api.NewCharacterHandler(chars)
	textHandler := api.NewTextHandler()
	dimensionsHandler := api.NewDimensionsHandler()
	probeHandler := handlers.NewProbeHandler(store)
	statusHandler := handlers.NewStatusHandler(svc)

	// Status page and operational endpoints
	s.App.Get("/", statusHandler.Index)
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Keyword resolution API
	s.App.Get("/api/keywords", keywordHandler.List)
	s.App.Get("/api/keywords/:name", keywordHandler.Get)
	s.App.Delete("/api/keywords/:name", keywordHandler.Delete)

	// Local model library
	s.App.Get("/api/models/:kind", libraryHandler.List)
	s.App.Get("/api/models/:kind/random", libraryHandler.Random)

	// Character data
	s.App.Get("/api/characters", characterHandler.All)
	s.App.Get("/api/characters/random", characterHandler.Random)

	// Prompt utilities
	s.App.Get("/api/shuffle", textHandler.Shuffle)
	s.App.Get("/api/dimensions", dimensionsHandler.Get)

	// Legacy route kept for frontends that predate the JSON API:
	// returns the bare keyword list with no envelope.
	s.App.Get("/lora_keywords/:name", keywordHandler.GetRaw)
}
