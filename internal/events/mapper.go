// Package events maps raw iNaturalist observations into display-ready
// featured-event records.
package events

import (
	"fmt"
	"strings"

	"github.com/ecoraiz/inat-events/internal/inat"
)

// UnknownLocation is rendered when an observation carries no place guess.
const UnknownLocation = "Ubicación desconocida"

// FeaturedEvent is one card in the curated "latest sightings" feed.
// A featured event always has an image; records without one are dropped
// during mapping, never constructed.
type FeaturedEvent struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Date           string `json:"date"`
	Location       string `json:"location"`
	ImageURL       string `json:"image_url"`
	ObservationURL string `json:"observation_url,omitempty"`
}

// titleCandidates is the ordered fallback chain for the event title.
// First non-empty candidate wins; order is part of the display contract.
var titleCandidates = []func(o *inat.Observation) string{
	func(o *inat.Observation) string {
		if o.Taxon != nil && o.Taxon.PreferredCommonName != nil {
			return *o.Taxon.PreferredCommonName
		}
		return ""
	},
	func(o *inat.Observation) string {
		if o.Taxon != nil && o.Taxon.Name != nil {
			return *o.Taxon.Name
		}
		return ""
	},
	func(o *inat.Observation) string {
		if o.SpeciesGuess != nil {
			return *o.SpeciesGuess
		}
		return ""
	},
}

// MapFeatured converts raw observations into featured events, applying the
// title/date/location fallback rules and dropping any record without a
// usable photo. Dropping records is normal operation, not an error; the
// result may legitimately be empty.
func MapFeatured(observations []inat.Observation) []FeaturedEvent {
	mapped := make([]FeaturedEvent, 0, len(observations))
	for i := range observations {
		o := &observations[i]

		imageURL := ImageURL(o)
		if imageURL == "" {
			continue
		}

		var observationURL string
		if o.URI != nil {
			observationURL = *o.URI
		}

		mapped = append(mapped, FeaturedEvent{
			ID:             o.ID,
			Title:          Title(o),
			Date:           FormatObservedOn(observedOn(o)),
			Location:       Location(o),
			ImageURL:       imageURL,
			ObservationURL: observationURL,
		})
	}
	return mapped
}

// Title evaluates the candidate chain and falls back to "ID: {id}".
func Title(o *inat.Observation) string {
	for _, candidate := range titleCandidates {
		if v := strings.TrimSpace(candidate(o)); v != "" {
			return v
		}
	}
	return fmt.Sprintf("ID: %d", o.ID)
}

// Location returns the observation's place guess or the unknown sentinel.
func Location(o *inat.Observation) string {
	if o.PlaceGuess != nil && strings.TrimSpace(*o.PlaceGuess) != "" {
		return *o.PlaceGuess
	}
	return UnknownLocation
}

// ImageURL returns the first photo's URL resized from the API's "square"
// thumbnail to "medium", or "" when the observation has no usable photo.
func ImageURL(o *inat.Observation) string {
	if len(o.Photos) == 0 || o.Photos[0].URL == nil {
		return ""
	}
	return strings.ReplaceAll(*o.Photos[0].URL, "square", "medium")
}

func observedOn(o *inat.Observation) string {
	if o.ObservedOnString == nil {
		return ""
	}
	return *o.ObservedOnString
}

// Accepted is the display acceptance filter: an event must have a real
// title, a parsed date, a named location and an image. Rejections are not
// errors; a feed reduced to zero events is still a successful fetch.
func Accepted(e FeaturedEvent) bool {
	if e.ImageURL == "" {
		return false
	}
	if e.Title == fmt.Sprintf("ID: %d", e.ID) {
		return false
	}
	if e.Date == UnknownDate || e.Date == InvalidDate {
		return false
	}
	if e.Location == UnknownLocation {
		return false
	}
	return true
}

// Filter applies Accepted to a mapped list.
func Filter(list []FeaturedEvent) []FeaturedEvent {
	out := make([]FeaturedEvent, 0, len(list))
	for _, e := range list {
		if Accepted(e) {
			out = append(out, e)
		}
	}
	return out
}
