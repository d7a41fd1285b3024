package activity

import (
	"log"
	"strings"
	"time"

	"github.com/gavraq/activity-backend-go/internal/config"
	"github.com/gavraq/activity-backend-go/internal/locations"
	"github.com/gavraq/activity-backend-go/internal/models"
	"github.com/gavraq/activity-backend-go/internal/movement"
	"github.com/gavraq/activity-backend-go/internal/spatial"
)

// CommuteClassifier detects commutes as ordered visits to an expected set of
// named locations inside morning/evening windows on configured weekdays,
// corroborated by train-speed segments.
type CommuteClassifier struct {
	cfg config.CommuteConfig
}

// NewCommuteClassifier creates a commute classifier
func NewCommuteClassifier(thresholds config.Thresholds) Classifier {
	return &CommuteClassifier{cfg: thresholds.Commute}
}

// ActivityType returns the commute activity type
func (c *CommuteClassifier) ActivityType() models.ActivityType {
	return models.ActivityCommute
}

// commuteVisit records the first and last ping seen inside one expected
// location during a window
type commuteVisit struct {
	loc   models.KnownLocation
	first time.Time
	last  time.Time
}

// DetectSessions detects up to one commute per time-of-day window
func (c *CommuteClassifier) DetectSessions(pings []models.Ping, view *locations.View) []models.ActivitySession {
	if len(pings) == 0 {
		return nil
	}

	expected := c.expectedLocations(view)
	if len(expected) < 2 {
		return nil
	}

	segments := movement.BuildSegments(pings)

	var sessions []models.ActivitySession
	for _, w := range []struct {
		name   string
		window config.HourWindow
	}{
		{"morning", c.cfg.MorningWindow},
		{"evening", c.cfg.EveningWindow},
	} {
		if session := c.detectWindow(pings, segments, expected, w.window, w.name); session != nil {
			sessions = append(sessions, *session)
		}
	}
	return sessions
}

// expectedLocations resolves the configured route IDs against the view.
// With no configured route it falls back to home -> stations -> office.
func (c *CommuteClassifier) expectedLocations(view *locations.View) []models.KnownLocation {
	if len(c.cfg.ExpectedLocations) > 0 {
		var out []models.KnownLocation
		for _, id := range c.cfg.ExpectedLocations {
			if loc, ok := view.Get(id); ok {
				out = append(out, loc)
			}
		}
		return out
	}

	var out []models.KnownLocation
	if home, ok := view.Home(); ok {
		out = append(out, home)
	}
	out = append(out, view.ByType(models.LocationTypeStation)...)
	out = append(out, view.ByType(models.LocationTypeOffice)...)
	return out
}

func (c *CommuteClassifier) detectWindow(pings []models.Ping, segments []models.MovementSegment, expected []models.KnownLocation, window config.HourWindow, windowName string) *models.ActivitySession {
	windowPings := pingsInWindow(pings, window)
	if len(windowPings) == 0 {
		return nil
	}
	if !c.isCommuteWeekday(windowPings[0].Timestamp) {
		return nil
	}

	visits := c.matchVisits(windowPings, expected)
	if len(visits) < c.cfg.MinLocationsVisited {
		return nil
	}

	start := visits[0].first
	end := visits[0].last
	for _, v := range visits[1:] {
		if v.first.Before(start) {
			start = v.first
		}
		if v.last.After(end) {
			end = v.last
		}
	}
	durationHours := end.Sub(start).Hours()

	trainSegments := c.trainSegments(segments, start, end)
	direction := c.direction(visits)

	factors := []Factor{
		{Name: "locations_visited", Weight: c.cfg.Weights.LocationsVisited, Satisfied: float64(len(visits)) / float64(len(expected))},
		{Name: "time_window", Weight: c.cfg.Weights.TimeWindow, Satisfied: windowFit(start, end, window)},
		{Name: "train_speed", Weight: c.cfg.Weights.TrainSpeed, Satisfied: boolFactor(len(trainSegments) > 0)},
		{Name: "duration", Weight: c.cfg.Weights.Duration, Satisfied: boolFactor(durationHours >= c.cfg.MinDurationHours && durationHours <= c.cfg.MaxDurationHours)},
		{Name: "direction", Weight: c.cfg.Weights.Direction, Satisfied: boolFactor(direction != "")},
	}

	score := Score(factors)
	if score < c.cfg.MinScore {
		return nil
	}

	last := visits[len(visits)-1]
	visitedNames := make([]string, len(visits))
	for i, v := range visits {
		visitedNames[i] = v.loc.Name
	}

	log.Printf("[CommuteClassifier] %s commute %s -> %s (%d/%d locations, %d train segments, score %.2f)",
		windowName, start.Format("15:04"), end.Format("15:04"), len(visits), len(expected), len(trainSegments), score)

	return &models.ActivitySession{
		ActivityType:    models.ActivityCommute,
		StartTime:       start,
		EndTime:         end,
		DurationHours:   durationHours,
		Location:        models.SessionLocation{Name: last.loc.Name, Coordinates: [2]float64{last.loc.Coordinates.Lat, last.loc.Coordinates.Lon}},
		Confidence:      LabelForScore(score),
		ConfidenceScore: score,
		Details: map[string]interface{}{
			"window":            windowName,
			"direction":         direction,
			"visited_locations": visitedNames,
			"expected_count":    len(expected),
			"train_segments":    len(trainSegments),
		},
	}
}

// matchVisits finds visits to expected locations, ordered by first entry
func (c *CommuteClassifier) matchVisits(pings []models.Ping, expected []models.KnownLocation) []commuteVisit {
	byID := make(map[string]*commuteVisit)
	var order []*commuteVisit

	for _, p := range pings {
		for _, loc := range expected {
			if !spatial.WithinRadius(p.Lat, p.Lon, loc) {
				continue
			}
			v, ok := byID[loc.ID]
			if !ok {
				v = &commuteVisit{loc: loc, first: p.Timestamp, last: p.Timestamp}
				byID[loc.ID] = v
				order = append(order, v)
			} else if p.Timestamp.After(v.last) {
				v.last = p.Timestamp
			}
		}
	}

	visits := make([]commuteVisit, len(order))
	for i, v := range order {
		visits[i] = *v
	}
	return visits
}

// trainSegments returns segments in the high velocity band between the
// session bounds
func (c *CommuteClassifier) trainSegments(segments []models.MovementSegment, start, end time.Time) []models.MovementSegment {
	var out []models.MovementSegment
	for _, seg := range segments {
		if seg.StartTime.Before(start) || seg.EndTime.After(end) {
			continue
		}
		if seg.VelocityMPS >= c.cfg.TrainMinMPS && seg.VelocityMPS <= c.cfg.TrainMaxMPS &&
			seg.DurationSeconds >= c.cfg.MinTrainSegmentSeconds {
			out = append(out, seg)
		}
	}
	return out
}

// direction classifies to_office / from_office from the first and last
// visited location names against the keyword sets
func (c *CommuteClassifier) direction(visits []commuteVisit) string {
	if len(visits) < 2 {
		return ""
	}
	first := visits[0].loc
	last := visits[len(visits)-1].loc

	switch {
	case c.matchesKeywords(first, c.cfg.HomeKeywords) && c.matchesKeywords(last, c.cfg.OfficeKeywords):
		return "to_office"
	case c.matchesKeywords(first, c.cfg.OfficeKeywords) && c.matchesKeywords(last, c.cfg.HomeKeywords):
		return "from_office"
	default:
		return ""
	}
}

func (c *CommuteClassifier) matchesKeywords(loc models.KnownLocation, keywords []string) bool {
	haystack := strings.ToLower(loc.Name + " " + loc.Type + " " + loc.ID)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func (c *CommuteClassifier) isCommuteWeekday(t time.Time) bool {
	day := int(t.Weekday())
	for _, d := range c.cfg.Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// pingsInWindow returns the pings whose time of day falls inside the window
func pingsInWindow(pings []models.Ping, window config.HourWindow) []models.Ping {
	var out []models.Ping
	for _, p := range pings {
		if p.Valid() && window.Contains(p.Timestamp) {
			out = append(out, p)
		}
	}
	return out
}

// windowFit gives full credit when both session bounds sit inside the
// window, half credit when only the start does
func windowFit(start, end time.Time, window config.HourWindow) float64 {
	switch {
	case window.Contains(start) && window.Contains(end.Add(-time.Second)):
		return 1
	case window.Contains(start):
		return 0.5
	default:
		return 0
	}
}

func init() {
	Register(models.ActivityCommute, NewCommuteClassifier)
}
