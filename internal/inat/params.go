package inat

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultRadiusKm is the search radius used when a nearby query names none.
const DefaultRadiusKm = 30.0

// queryLocale fixes the locale for common names returned by the API.
const queryLocale = "es-MX"

// FeaturedParams describes a place-scoped, plant-filtered observation query
// used for the curated "latest sightings" feed.
type FeaturedParams struct {
	PlaceID int // iNaturalist place identifier
	Count   int // per_page result count
}

// ToURLValues converts FeaturedParams to query parameters.
func (p *FeaturedParams) ToURLValues() url.Values {
	values := baseValues(p.Count)
	values.Set("place_id", strconv.Itoa(p.PlaceID))
	values.Set("quality_grade", "research")
	values.Set("locale", queryLocale)
	values.Set("iconic_taxa", "Plantae")
	return values
}

// NearbyParams describes a coordinate+radius+taxon query used to plot
// known invasive-species sightings on a map.
type NearbyParams struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64 // 0 means DefaultRadiusKm
	TaxonIDs  []int   // iNaturalist taxon identifiers, comma-joined on the wire
	Count     int
}

// ToURLValues converts NearbyParams to query parameters.
func (p *NearbyParams) ToURLValues() url.Values {
	values := baseValues(p.Count)

	values.Set("lat", strconv.FormatFloat(p.Latitude, 'f', -1, 64))
	values.Set("lng", strconv.FormatFloat(p.Longitude, 'f', -1, 64))

	radius := p.RadiusKm
	if radius <= 0 {
		radius = DefaultRadiusKm
	}
	values.Set("radius", strconv.FormatFloat(radius, 'f', -1, 64))

	if len(p.TaxonIDs) > 0 {
		ids := make([]string, 0, len(p.TaxonIDs))
		for _, id := range p.TaxonIDs {
			ids = append(ids, strconv.Itoa(id))
		}
		values.Set("taxon_id", strings.Join(ids, ","))
	}

	values.Set("locale", queryLocale)
	return values
}

// baseValues holds the parameters present on every observation query.
func baseValues(count int) url.Values {
	values := url.Values{}
	values.Set("order_by", "observed_on")
	values.Set("order", "desc")
	values.Set("per_page", strconv.Itoa(count))
	values.Set("photos", "true")
	values.Set("sounds", "false")
	return values
}
