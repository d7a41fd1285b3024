package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gavraq/activity-backend-go/internal/analyzer"
	"github.com/gavraq/activity-backend-go/internal/locations"
	"github.com/gavraq/activity-backend-go/internal/models"
)

// AnalysisService handles business logic for daily activity analysis
type AnalysisService struct {
	analyzer *analyzer.DailyAnalyzer
	store    *locations.Store
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(a *analyzer.DailyAnalyzer, store *locations.Store) *AnalysisService {
	return &AnalysisService{
		analyzer: a,
		store:    store,
	}
}

// DailyAnalysisResult wraps the daily pattern with decode diagnostics
type DailyAnalysisResult struct {
	Pattern      *models.DailyPattern `json:"pattern"`
	DroppedPings int                  `json:"dropped_pings"`
	TripName     string               `json:"trip_name,omitempty"`
}

// AnalyzeDay decodes a raw ping payload and runs the daily analyzer for the
// given date (YYYY-MM-DD). Malformed individual pings are dropped, not fatal.
// Timestamps are shifted into the resolved view's timezone so time-of-day
// windows evaluate local wall-clock time.
func (s *AnalysisService) AnalyzeDay(ctx context.Context, dateStr string, payload []byte) (*DailyAnalysisResult, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}

	pings, dropped, err := models.DecodePings(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode pings: %w", err)
	}
	sort.Slice(pings, func(i, j int) bool {
		return pings[i].Timestamp.Before(pings[j].Timestamp)
	})

	view := s.store.AutoResolveForDate(date)
	tz := view.Location()
	for i := range pings {
		pings[i].Timestamp = pings[i].Timestamp.In(tz)
	}

	pattern := s.analyzer.Analyze(ctx, pings, date, view)

	return &DailyAnalysisResult{
		Pattern:      pattern,
		DroppedPings: dropped,
		TripName:     view.TripName(),
	}, nil
}

// LocationsResponse lists the known locations in effect for a date
type LocationsResponse struct {
	TripName  string                 `json:"trip_name,omitempty"`
	Locations []models.KnownLocation `json:"locations"`
}

// LocationsForDate resolves the location view for a date; an empty date
// returns the base set with no trip overlay.
func (s *AnalysisService) LocationsForDate(dateStr string) (*LocationsResponse, error) {
	view := s.store.BaseView()
	if dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", dateStr, err)
		}
		view = s.store.AutoResolveForDate(date)
	}
	return &LocationsResponse{
		TripName:  view.TripName(),
		Locations: view.All(),
	}, nil
}

// Trips lists the loaded trip overlays
func (s *AnalysisService) Trips() []models.TripInfo {
	return s.store.Trips()
}
