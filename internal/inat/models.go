package inat

import (
	"encoding/json"
	"errors"
)

// ObservationResponse is the top-level payload of the observations endpoint.
type ObservationResponse struct {
	TotalResults int           `json:"total_results"`
	Page         int           `json:"page"`
	PerPage      int           `json:"per_page"`
	Results      []Observation `json:"results"`
}

// Observation is one user-submitted sighting as returned by iNaturalist.
// Everything except the id is optional on the wire; absent fields decode to nil.
type Observation struct {
	ID               int      `json:"id"`
	SpeciesGuess     *string  `json:"species_guess"`
	ObservedOnString *string  `json:"observed_on_string"`
	PlaceGuess       *string  `json:"place_guess"`
	User             *User    `json:"user"`
	Photos           []Photo  `json:"photos"`
	URI              *string  `json:"uri"`
	Taxon            *Taxon   `json:"taxon"`
	GeoJSON          *GeoJSON `json:"geojson"`
}

// Taxon is the species/genus classification attached to an observation.
type Taxon struct {
	ID                  int     `json:"id"`
	Name                *string `json:"name"`
	PreferredCommonName *string `json:"preferred_common_name"`
}

// User identifies the observer.
type User struct {
	ID    int    `json:"id"`
	Login string `json:"login"`
}

// Photo is one attached photo. URLs embed a size token ("square") in the path.
type Photo struct {
	ID  int     `json:"id"`
	URL *string `json:"url"`
}

// UnmarshalJSON decodes an observation and rejects records without an id.
// The id is the only mandatory field; a result lacking one fails the whole
// batch, optional fields stay tolerant.
func (o *Observation) UnmarshalJSON(data []byte) error {
	type observation Observation
	aux := struct {
		ID *int `json:"id"`
		*observation
	}{observation: (*observation)(o)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.ID == nil {
		return errors.New("observation missing mandatory id")
	}
	o.ID = *aux.ID
	return nil
}

// GeoJSON is the API's coordinate encoding: [longitude, latitude].
type GeoJSON struct {
	Type        *string   `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Coordinate is a derived (latitude, longitude) pair for map rendering.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coordinate derives the observation's position from its geojson field.
// Only a "Point" with exactly two coordinates yields a position; anything
// else reports absence, never an error. GeoJSON order is [lon, lat].
func (o *Observation) Coordinate() (Coordinate, bool) {
	g := o.GeoJSON
	if g == nil || g.Type == nil || *g.Type != "Point" || len(g.Coordinates) != 2 {
		return Coordinate{}, false
	}
	return Coordinate{
		Latitude:  g.Coordinates[1],
		Longitude: g.Coordinates[0],
	}, true
}
