// Package feed orchestrates iNaturalist fetches into the two feeds the UI
// consumes: featured event cards and nearby map observations.
package feed

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/ecoraiz/inat-events/internal/events"
	"github.com/ecoraiz/inat-events/internal/inat"
)

// Fetcher is the part of the iNaturalist client the feed service needs.
type Fetcher interface {
	Observations(ctx context.Context, query url.Values) (*inat.ObservationResponse, error)
}

// Source is the feed surface consumed by the HTTP handlers.
type Source interface {
	FeaturedEvents(ctx context.Context, placeID, count int) ([]events.FeaturedEvent, error)
	NearbyObservations(ctx context.Context, lat, lng, radiusKm float64, taxonIDs []int, count int) ([]inat.Observation, error)
}

// Service implements Source on top of the iNaturalist client. It holds no
// mutable state; every call is independent.
type Service struct {
	client Fetcher
	logger *slog.Logger
}

// NewService creates a feed service.
func NewService(client Fetcher, logger *slog.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// FeaturedEvents fetches the latest research-grade plant observations for a
// place and maps them into display-ready cards. Records missing mandatory
// display fields are dropped; an empty list is a successful outcome and the
// caller must treat it as such, not as a failure.
func (s *Service) FeaturedEvents(ctx context.Context, placeID, count int) ([]events.FeaturedEvent, error) {
	params := inat.FeaturedParams{PlaceID: placeID, Count: count}

	resp, err := s.client.Observations(ctx, params.ToURLValues())
	if err != nil {
		return nil, err
	}

	mapped := events.MapFeatured(resp.Results)
	accepted := events.Filter(mapped)

	s.logger.DebugContext(ctx, "featured events mapped",
		slog.Int("received", len(resp.Results)),
		slog.Int("mapped", len(mapped)),
		slog.Int("accepted", len(accepted)),
	)

	return accepted, nil
}

// NearbyObservations fetches observations of the given taxa around a
// coordinate and returns them unmapped; the map renderer derives coordinates
// and excludes records without one. An empty taxon list short-circuits to an
// empty success without touching the network: a taxon-less geo query would
// pull every observation in range.
func (s *Service) NearbyObservations(ctx context.Context, lat, lng, radiusKm float64, taxonIDs []int, count int) ([]inat.Observation, error) {
	if len(taxonIDs) == 0 {
		s.logger.DebugContext(ctx, "nearby query without taxa, skipping fetch")
		return []inat.Observation{}, nil
	}

	params := inat.NearbyParams{
		Latitude:  lat,
		Longitude: lng,
		RadiusKm:  radiusKm,
		TaxonIDs:  taxonIDs,
		Count:     count,
	}

	resp, err := s.client.Observations(ctx, params.ToURLValues())
	if err != nil {
		return nil, err
	}

	return resp.Results, nil
}
