// Package analyzer builds the day-level activity report: known-location
// dwell time, detected activity sessions, a geocoded timeline and a day-type
// classification.
package analyzer

import (
	"context"
	"log"
	"time"

	"github.com/gavraq/activity-backend-go/internal/activity"
	"github.com/gavraq/activity-backend-go/internal/config"
	"github.com/gavraq/activity-backend-go/internal/geocode"
	"github.com/gavraq/activity-backend-go/internal/locations"
	"github.com/gavraq/activity-backend-go/internal/models"
)

// DailyAnalyzer aggregates one day of pings into a DailyPattern. It holds
// no per-analysis state; each Analyze call takes its own location view, so
// callers may run separate days in parallel.
type DailyAnalyzer struct {
	classifiers []activity.Classifier
	geocoder    geocode.Geocoder
	cfg         config.DailyConfig
}

// NewDailyAnalyzer creates an analyzer from fully constructed dependencies.
// The geocoder may be nil; timeline entries then fall back to coordinate
// labels.
func NewDailyAnalyzer(classifiers []activity.Classifier, geocoder geocode.Geocoder, cfg config.DailyConfig) *DailyAnalyzer {
	return &DailyAnalyzer{
		classifiers: classifiers,
		geocoder:    geocoder,
		cfg:         cfg,
	}
}

// Analyze builds the best-effort daily pattern for a batch of pings against
// an already-resolved location view. It never returns an error; partial data
// degrades individual fields instead.
func (a *DailyAnalyzer) Analyze(ctx context.Context, pings []models.Ping, date time.Time, view *locations.View) *models.DailyPattern {
	pattern := &models.DailyPattern{
		Date:                 date.Format("2006-01-02"),
		PingCount:            len(pings),
		TimeAtKnownLocations: make(map[string]models.LocationDwell),
		PrimaryLocation:      "Unknown",
		DayType:              models.DayTypeNoData,
	}
	if len(pings) == 0 {
		return pattern
	}

	first := pings[0].Timestamp
	last := pings[len(pings)-1].Timestamp
	pattern.FirstPing = &first
	pattern.LastPing = &last

	pattern.TimeAtKnownLocations = a.dwellTimes(pings, view)

	for _, c := range a.classifiers {
		pattern.Activities = append(pattern.Activities, c.DetectSessions(pings, view)...)
	}
	activity.SortSessions(pattern.Activities)

	pattern.Timeline = a.buildTimeline(ctx, pings, view)
	pattern.PrimaryLocation = a.primaryLocation(pattern)
	pattern.DayType = a.dayType(date, view, pattern)

	log.Printf("[DailyAnalyzer] %s: %d pings, %d sessions, %d timeline entries, day type %s",
		pattern.Date, pattern.PingCount, len(pattern.Activities), len(pattern.Timeline), pattern.DayType)

	return pattern
}

// primaryLocation picks the stay with the most hours, requiring at least
// the configured minimum
func (a *DailyAnalyzer) primaryLocation(pattern *models.DailyPattern) string {
	best := ""
	bestHours := 0.0

	for name, dwell := range pattern.TimeAtKnownLocations {
		if dwell.TotalHours > bestHours {
			best = name
			bestHours = dwell.TotalHours
		}
	}
	for _, entry := range pattern.Timeline {
		if entry.Hours > bestHours {
			best = entry.Name
			bestHours = entry.Hours
		}
	}

	if bestHours < a.cfg.PrimaryMinHours || best == "" {
		return "Unknown"
	}
	return best
}
