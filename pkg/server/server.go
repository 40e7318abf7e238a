// Package server provides a public API for embedding the observation
// events service in another application.
package server

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ecoraiz/inat-events/internal/api"
	"github.com/ecoraiz/inat-events/internal/config"
	"github.com/ecoraiz/inat-events/internal/feed"
	"github.com/ecoraiz/inat-events/internal/inat"
	"github.com/ecoraiz/inat-events/internal/plants"
	"github.com/ecoraiz/inat-events/internal/reports"
)

// Options configures the embedded observation events service.
type Options struct {
	// INatBaseURL is the iNaturalist API base URL.
	// Default: "https://api.inaturalist.org"
	INatBaseURL string

	// Timeout is the upstream request timeout.
	// Default: 30s
	Timeout time.Duration

	// DefaultPlaceID scopes the featured feed when the caller names no place.
	// Default: 6793 (Mexico)
	DefaultPlaceID int

	// DefaultCount is the default number of results per fetch.
	// Default: 10
	DefaultCount int

	// MaxCount is the maximum number of results per fetch.
	// Default: 100
	MaxCount int

	// DefaultRadiusKm is the default nearby search radius.
	// Default: 30
	DefaultRadiusKm float64

	// ReportsDBPath is the SQLite path for the report store.
	// Default: ":memory:"
	ReportsDBPath string

	// Logger is the slog logger to use.
	// Default: slog.Default()
	Logger *slog.Logger
}

// Server is an observation events service that can be mounted in another
// application's router.
type Server struct {
	router chi.Router
	store  *reports.Store
}

// New creates a new embedded server with the given options.
func New(opts Options) (*Server, error) {
	if opts.INatBaseURL == "" {
		opts.INatBaseURL = inat.DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.DefaultPlaceID == 0 {
		opts.DefaultPlaceID = 6793
	}
	if opts.DefaultCount == 0 {
		opts.DefaultCount = 10
	}
	if opts.MaxCount == 0 {
		opts.MaxCount = 100
	}
	if opts.DefaultRadiusKm == 0 {
		opts.DefaultRadiusKm = inat.DefaultRadiusKm
	}
	if opts.ReportsDBPath == "" {
		opts.ReportsDBPath = ":memory:"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	cfg := &config.Config{
		INat: config.INatConfig{
			BaseURL: opts.INatBaseURL,
			Timeout: opts.Timeout,
		},
		Feed: config.FeedConfig{
			DefaultPlaceID:  opts.DefaultPlaceID,
			DefaultCount:    opts.DefaultCount,
			MaxCount:        opts.MaxCount,
			DefaultRadiusKm: opts.DefaultRadiusKm,
		},
		Reports: config.ReportsConfig{
			DBPath: opts.ReportsDBPath,
		},
	}

	store, err := reports.Open(cfg.Reports.DBPath, opts.Logger)
	if err != nil {
		return nil, err
	}

	client := inat.NewClient(cfg.INat.BaseURL, cfg.INat.Timeout).WithLogger(opts.Logger)
	source := feed.NewService(client, opts.Logger)
	catalog := plants.DefaultCatalog()

	api.RegisterMetrics()
	handlers := api.NewHandlers(cfg, source, catalog, store, opts.Logger)
	router := api.NewRouter(handlers, opts.Logger)

	return &Server{
		router: router,
		store:  store,
	}, nil
}

// Router returns the chi.Router for mounting in another application.
func (s *Server) Router() chi.Router {
	return s.router
}

// Close releases the report store.
func (s *Server) Close() error {
	return s.store.Close()
}
