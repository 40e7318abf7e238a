package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ecoraiz/inat-events/internal/config"
	"github.com/ecoraiz/inat-events/internal/events"
	"github.com/ecoraiz/inat-events/internal/feed"
	"github.com/ecoraiz/inat-events/internal/inat"
	"github.com/ecoraiz/inat-events/internal/plants"
	"github.com/ecoraiz/inat-events/internal/reports"
)

// Handlers contains all HTTP handlers for the service.
type Handlers struct {
	cfg     *config.Config
	feed    feed.Source
	catalog *plants.Catalog
	reports *reports.Store
	logger  *slog.Logger
}

// NewHandlers creates a new Handlers instance with the given dependencies.
func NewHandlers(
	cfg *config.Config,
	source feed.Source,
	catalog *plants.Catalog,
	store *reports.Store,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		cfg:     cfg,
		feed:    source,
		catalog: catalog,
		reports: store,
		logger:  logger,
	}
}

// Health returns a liveness response.
// GET /health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type featuredResponse struct {
	Events []events.FeaturedEvent `json:"events"`
	Count  int                    `json:"count"`
}

// FeaturedEvents returns the curated latest-sightings feed for a place.
// An empty feed is a 200 with an empty array: "zero after filtering" is a
// successful fetch, distinct from any upstream failure.
// GET /events/featured?place_id=&count=
func (h *Handlers) FeaturedEvents(w http.ResponseWriter, r *http.Request) {
	placeID := h.cfg.Feed.DefaultPlaceID
	if v := r.URL.Query().Get("place_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id < 1 {
			WriteInvalidParameter(w, "place_id must be a positive integer")
			return
		}
		placeID = id
	}

	count, ok := h.countParam(w, r)
	if !ok {
		return
	}

	list, err := h.feed.FeaturedEvents(r.Context(), placeID, count)
	if err != nil {
		h.writeFetchError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, featuredResponse{Events: list, Count: len(list)})
}

// nearbyObservation pairs a raw observation with its derived map position.
type nearbyObservation struct {
	inat.Observation
	Position inat.Coordinate `json:"position"`
}

type nearbyResponse struct {
	Observations []nearbyObservation `json:"observations"`
	Count        int                 `json:"count"`
}

// NearbyObservations returns invasive-species observations around a
// coordinate for map rendering. Records without a valid geojson point are
// excluded, not errors. Without an explicit taxon_ids parameter the
// catalog's mapped taxa are used.
// GET /observations/nearby?lat=&lng=&radius=&taxon_ids=&count=
func (h *Handlers) NearbyObservations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		WriteInvalidParameter(w, "lat must be a number between -90 and 90")
		return
	}
	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil || lng < -180 || lng > 180 {
		WriteInvalidParameter(w, "lng must be a number between -180 and 180")
		return
	}

	radius := h.cfg.Feed.DefaultRadiusKm
	if v := q.Get("radius"); v != "" {
		radius, err = strconv.ParseFloat(v, 64)
		if err != nil || radius <= 0 {
			WriteInvalidParameter(w, "radius must be a positive number of kilometers")
			return
		}
	}

	taxonIDs := h.catalog.TaxonIDs()
	if v := q.Get("taxon_ids"); v != "" {
		taxonIDs, err = parseTaxonIDs(v)
		if err != nil {
			WriteInvalidParameter(w, "taxon_ids must be a comma-separated list of integers")
			return
		}
	}

	count, ok := h.countParam(w, r)
	if !ok {
		return
	}

	list, err := h.feed.NearbyObservations(r.Context(), lat, lng, radius, taxonIDs, count)
	if err != nil {
		h.writeFetchError(w, r, err)
		return
	}

	pins := make([]nearbyObservation, 0, len(list))
	for i := range list {
		pos, ok := list[i].Coordinate()
		if !ok {
			continue
		}
		pins = append(pins, nearbyObservation{Observation: list[i], Position: pos})
	}

	WriteJSON(w, http.StatusOK, nearbyResponse{Observations: pins, Count: len(pins)})
}

type plantsResponse struct {
	Plants []plants.Plant `json:"plants"`
	Count  int            `json:"count"`
}

// Plants returns the invasive plant catalog.
// GET /plants
func (h *Handlers) Plants(w http.ResponseWriter, r *http.Request) {
	list := h.catalog.All()
	WriteJSON(w, http.StatusOK, plantsResponse{Plants: list, Count: len(list)})
}

// Plant returns one catalog entry by ID.
// GET /plants/{plantId}
func (h *Handlers) Plant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "plantId")
	p, ok := h.catalog.Get(id)
	if !ok {
		WriteNotFound(w, "plant not found")
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

type createReportRequest struct {
	PlantName      string  `json:"plant_name"`
	ScientificName string  `json:"scientific_name"`
	Description    string  `json:"description"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LocationName   string  `json:"location_name"`
}

// CreateReport stores a community-submitted invasive plant sighting.
// POST /reports
func (h *Handlers) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req createReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body")
		return
	}

	if strings.TrimSpace(req.PlantName) == "" {
		WriteInvalidParameter(w, "plant_name is required")
		return
	}
	if req.Latitude < -90 || req.Latitude > 90 {
		WriteInvalidParameter(w, "latitude must be between -90 and 90")
		return
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		WriteInvalidParameter(w, "longitude must be between -180 and 180")
		return
	}

	stored, err := h.reports.Insert(r.Context(), reports.Report{
		PlantName:      req.PlantName,
		ScientificName: req.ScientificName,
		Description:    req.Description,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		LocationName:   req.LocationName,
	})
	if err != nil {
		h.logger.Error("failed to store report", slog.String("error", err.Error()))
		WriteInternalError(w, "failed to store report")
		return
	}

	WriteJSON(w, http.StatusCreated, stored)
}

type reportsResponse struct {
	Reports []reports.Report `json:"reports"`
	Count   int              `json:"count"`
}

// Reports lists stored sightings, newest first.
// GET /reports?limit=
func (h *Handlers) Reports(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			WriteInvalidParameter(w, "limit must be a positive integer")
			return
		}
		limit = n
	}

	list, err := h.reports.List(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list reports", slog.String("error", err.Error()))
		WriteInternalError(w, "failed to list reports")
		return
	}

	WriteJSON(w, http.StatusOK, reportsResponse{Reports: list, Count: len(list)})
}

// countParam reads and clamps the count query parameter.
func (h *Handlers) countParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	count := h.cfg.Feed.DefaultCount
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			WriteInvalidParameter(w, "count must be a positive integer")
			return 0, false
		}
		count = n
	}
	if count > h.cfg.Feed.MaxCount {
		count = h.cfg.Feed.MaxCount
	}
	return count, true
}

func parseTaxonIDs(v string) ([]int, error) {
	parts := strings.Split(v, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// writeFetchError maps client failures onto HTTP statuses: anything the
// upstream API caused is a 502, everything else a 500.
func (h *Handlers) writeFetchError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("observation fetch failed",
		slog.String("request_id", GetRequestID(r.Context())),
		slog.String("error", err.Error()),
	)

	var statusErr *inat.StatusError
	var transportErr *inat.TransportError
	var decodeErr *inat.DecodeError

	switch {
	case errors.As(err, &statusErr),
		errors.As(err, &transportErr),
		errors.As(err, &decodeErr),
		errors.Is(err, inat.ErrNoData):
		WriteUpstreamError(w, "observation service unavailable")
	default:
		WriteInternalError(w, "internal server error")
	}
}
