package models

import "time"

// LocationDwell summarizes time spent at one known location over a day
type LocationDwell struct {
	TotalHours float64 `json:"total_hours"`
	Visits     int     `json:"visits"`
}

// TimelineEntry is one named stay in the merged day timeline
type TimelineEntry struct {
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Hours     float64   `json:"hours"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Known     bool      `json:"known"` // matched a known location (vs geocoded)
}

// Day type constants produced by the daily pattern decision table
const (
	DayTypeWorkOffice     = "work_office"
	DayTypeWorkFromHome   = "work_wfh"
	DayTypeWeekendGolf    = "weekend_golf"
	DayTypeWeekendParkrun = "weekend_parkrun"
	DayTypeWeekendSnow    = "weekend_snowboarding"
	DayTypeWeekendHome    = "weekend_home"
	DayTypeWeekendOut     = "weekend_out"
	DayTypeTravel         = "travel_day"
	DayTypeMixed          = "mixed"
	DayTypeNoData         = "no_data"
)

// DailyPattern is the day-level aggregate returned by the analyzer
type DailyPattern struct {
	Date      string     `json:"date"` // YYYY-MM-DD
	PingCount int        `json:"ping_count"`
	FirstPing *time.Time `json:"first_ping,omitempty"`
	LastPing  *time.Time `json:"last_ping,omitempty"`

	TimeAtKnownLocations map[string]LocationDwell `json:"time_at_known_locations"`
	Activities           []ActivitySession        `json:"activities"`
	Timeline             []TimelineEntry          `json:"timeline"`

	PrimaryLocation string `json:"primary_location"` // stay with the most hours, minimum 1h, else "Unknown"
	DayType         string `json:"day_type"`
}
