package events

import (
	"fmt"
	"strings"
	"time"
)

// Sentinel strings rendered when a date is missing or unparseable. The UI
// shows these verbatim, so they are part of the contract.
const (
	UnknownDate = "Fecha desconocida"
	InvalidDate = "Fecha inválida"
)

// isoLayouts are tried first: internet timestamps with and without
// fractional seconds, with a zone offset or Z.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

// Spanish month abbreviations, es-MX medium date style ("2 mar 2024").
// The standard library carries no locale data and none of the upstream
// formats need more than month names and the 12-hour day period.
var spanishMonths = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// FormatObservedOn normalizes the free-form observed_on_string values the
// API returns into a localized display string. It is total: every input,
// including garbage, yields a string and never an error.
//
// Formats are attempted in order, first parse wins:
// internet timestamp with fractional seconds, internet timestamp,
// "yyyy-MM-dd HH:mm:ss" assumed UTC, "yyyy-MM-dd" assumed UTC.
func FormatObservedOn(s string) string {
	if strings.TrimSpace(s) == "" {
		return UnknownDate
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			// A bare date that parsed to exact midnight gets no time-of-day.
			// The "T" check keeps explicit midnights ("...T00:00:00Z") on
			// the date+time path.
			if isMidnight(t) && !strings.Contains(s, "T") {
				return formatDate(t)
			}
			return formatDateTime(t)
		}
	}

	if t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC); err == nil {
		return formatDateTime(t)
	}

	if t, err := time.ParseInLocation("2006-01-02", s, time.UTC); err == nil {
		return formatDate(t)
	}

	return InvalidDate
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0
}

// formatDate renders the es-MX medium date style, e.g. "2 mar 2024".
func formatDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

// formatDateTime appends the es-MX short time style, e.g.
// "2 mar 2024, 2:30 p.m.". Times render in the offset they were parsed with.
func formatDateTime(t time.Time) string {
	hour := t.Hour()
	period := "a.m."
	if hour >= 12 {
		period = "p.m."
	}
	hour = hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%s, %d:%02d %s", formatDate(t), hour, t.Minute(), period)
}
