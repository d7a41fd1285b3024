package activity

import (
	"time"

	"github.com/gavraq/activity-backend-go/internal/locations"
	"github.com/gavraq/activity-backend-go/internal/models"
)

func testView(locs ...models.KnownLocation) *locations.View {
	return locations.NewView(locs, nil, "", "")
}

func pingAt(ts time.Time, lat, lon float64) models.Ping {
	return models.Ping{Timestamp: ts, Lat: lat, Lon: lon}
}

func pingAtAlt(ts time.Time, lat, lon, alt float64) models.Ping {
	p := pingAt(ts, lat, lon)
	p.Altitude = &alt
	return p
}

// track appends count pings spaced interval apart, each moving latStep
// degrees of latitude per ping, and returns the updated series
func track(pings []models.Ping, from time.Time, count int, interval time.Duration, startLat, lon, latStep float64) []models.Ping {
	for i := 0; i < count; i++ {
		pings = append(pings, pingAt(from.Add(time.Duration(i)*interval), startLat+float64(i)*latStep, lon))
	}
	return pings
}
