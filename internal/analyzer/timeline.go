package analyzer

import (
	"context"
	"time"

	"github.com/gavraq/activity-backend-go/internal/geocode"
	"github.com/gavraq/activity-backend-go/internal/locations"
	"github.com/gavraq/activity-backend-go/internal/models"
	"github.com/gavraq/activity-backend-go/internal/spatial"
)

// staySegment is an unnamed stay cluster built purely from geometry
type staySegment struct {
	start    time.Time
	end      time.Time
	centroid models.Coordinates
	points   []models.Coordinates
}

// buildTimeline clusters all pings into stay-segments by a radius+gap rule,
// names each segment (known location first, one reverse-geocode per distinct
// centroid otherwise) and merges adjacent entries resolving to the same
// name. No network call happens before the clustering step.
func (a *DailyAnalyzer) buildTimeline(ctx context.Context, pings []models.Ping, view *locations.View) []models.TimelineEntry {
	stays := a.clusterStays(pings)
	if len(stays) == 0 {
		return nil
	}

	timeout := time.Duration(a.cfg.GeocodeTimeoutSecs * float64(time.Second))

	var timeline []models.TimelineEntry
	for _, stay := range stays {
		name := ""
		known := false
		if loc, ok := view.Match(stay.centroid.Lat, stay.centroid.Lon); ok {
			name = loc.Name
			known = true
		} else {
			lookupCtx, cancel := context.WithTimeout(ctx, timeout)
			name = geocode.ReverseOrCoordinate(lookupCtx, a.geocoder, stay.centroid.Lat, stay.centroid.Lon)
			cancel()
		}

		entry := models.TimelineEntry{
			Name:      name,
			StartTime: stay.start,
			EndTime:   stay.end,
			Hours:     stay.end.Sub(stay.start).Hours(),
			Lat:       stay.centroid.Lat,
			Lon:       stay.centroid.Lon,
			Known:     known,
		}

		// Merge with the previous entry when the name repeats
		if n := len(timeline); n > 0 && timeline[n-1].Name == name {
			timeline[n-1].EndTime = entry.EndTime
			timeline[n-1].Hours = entry.EndTime.Sub(timeline[n-1].StartTime).Hours()
			continue
		}
		timeline = append(timeline, entry)
	}
	return timeline
}

// clusterStays groups consecutive pings into stay-segments: a ping extends
// the current stay while it sits within the stay radius of the running
// centroid and within the gap tolerance of the previous ping
func (a *DailyAnalyzer) clusterStays(pings []models.Ping) []staySegment {
	gap := time.Duration(a.cfg.StayGapMinutes * float64(time.Minute))
	minStay := time.Duration(a.cfg.MinStayMinutes * float64(time.Minute))

	var stays []staySegment
	var current *staySegment
	var lastTime time.Time

	flush := func() {
		if current != nil && current.end.Sub(current.start) >= minStay {
			stays = append(stays, *current)
		}
		current = nil
	}

	for _, p := range pings {
		if !p.Valid() {
			continue
		}

		if current != nil {
			dist := spatial.HaversineDistance(p.Lat, p.Lon, current.centroid.Lat, current.centroid.Lon)
			if dist > a.cfg.StayRadiusMeters || p.Timestamp.Sub(lastTime) > gap {
				flush()
			}
		}

		if current == nil {
			current = &staySegment{
				start:    p.Timestamp,
				centroid: models.Coordinates{Lat: p.Lat, Lon: p.Lon},
			}
		}

		current.points = append(current.points, models.Coordinates{Lat: p.Lat, Lon: p.Lon})
		current.centroid = spatial.Centroid(current.points)
		current.end = p.Timestamp
		lastTime = p.Timestamp
	}
	flush()

	return stays
}
