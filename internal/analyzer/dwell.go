package analyzer

import (
	"time"

	"github.com/gavraq/activity-backend-go/internal/locations"
	"github.com/gavraq/activity-backend-go/internal/models"
	"github.com/gavraq/activity-backend-go/internal/spatial"
)

// dwellTimes computes per-location dwell via continuous-presence detection:
// a visit starts when a ping falls inside the location's radius and ends
// when pings leave it or the data ends. Visits shorter than the minimum are
// discarded as pass-throughs.
func (a *DailyAnalyzer) dwellTimes(pings []models.Ping, view *locations.View) map[string]models.LocationDwell {
	minVisit := time.Duration(a.cfg.MinVisitMinutes * float64(time.Minute))
	result := make(map[string]models.LocationDwell)

	for _, loc := range view.All() {
		dwell := models.LocationDwell{}

		var visitStart, visitEnd time.Time
		inVisit := false

		flush := func() {
			if inVisit && visitEnd.Sub(visitStart) >= minVisit {
				dwell.TotalHours += visitEnd.Sub(visitStart).Hours()
				dwell.Visits++
			}
			inVisit = false
		}

		for _, p := range pings {
			if !p.Valid() {
				continue
			}
			if spatial.WithinRadius(p.Lat, p.Lon, loc) {
				if !inVisit {
					visitStart = p.Timestamp
					inVisit = true
				}
				visitEnd = p.Timestamp
			} else {
				flush()
			}
		}
		flush()

		if dwell.Visits > 0 {
			result[loc.Name] = dwell
		}
	}

	return result
}
