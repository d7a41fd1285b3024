package analyzer

import (
	"time"

	"github.com/gavraq/activity-backend-go/internal/locations"
	"github.com/gavraq/activity-backend-go/internal/models"
)

// dayType classifies the day from a decision table over weekend/weekday,
// hours at home and office, and which activities were detected
func (a *DailyAnalyzer) dayType(date time.Time, view *locations.View, pattern *models.DailyPattern) string {
	if pattern.PingCount == 0 {
		return models.DayTypeNoData
	}

	detected := make(map[models.ActivityType]bool, len(pattern.Activities))
	for _, s := range pattern.Activities {
		detected[s.ActivityType] = true
	}

	homeHours := hoursAtType(view, pattern, models.LocationTypeHome)
	officeHours := hoursAtType(view, pattern, models.LocationTypeOffice)

	weekday := date.Weekday()
	weekend := weekday == time.Saturday || weekday == time.Sunday

	if weekend {
		switch {
		case detected[models.ActivityParkrun]:
			return models.DayTypeWeekendParkrun
		case detected[models.ActivityGolf]:
			return models.DayTypeWeekendGolf
		case detected[models.ActivitySnowboarding]:
			return models.DayTypeWeekendSnow
		case homeHours >= a.cfg.WeekendHomeHours:
			return models.DayTypeWeekendHome
		default:
			return models.DayTypeWeekendOut
		}
	}

	switch {
	case officeHours >= a.cfg.OfficeDayHours:
		return models.DayTypeWorkOffice
	case homeHours >= a.cfg.HomeWFHHours:
		return models.DayTypeWorkFromHome
	}

	// Low known-location coverage over a long span reads as travel
	if totalKnownHours(pattern) <= a.cfg.TravelMaxKnownHours && daySpanHours(pattern) >= 6 {
		return models.DayTypeTravel
	}
	return models.DayTypeMixed
}

// hoursAtType sums dwell hours over known locations of the given type. The
// dwell map is keyed by display name, so names are recovered from the view.
func hoursAtType(view *locations.View, pattern *models.DailyPattern, locType string) float64 {
	names := make(map[string]bool)
	for _, loc := range view.ByType(locType) {
		names[loc.Name] = true
	}
	var hours float64
	for name, dwell := range pattern.TimeAtKnownLocations {
		if names[name] {
			hours += dwell.TotalHours
		}
	}
	return hours
}

func totalKnownHours(pattern *models.DailyPattern) float64 {
	var total float64
	for _, dwell := range pattern.TimeAtKnownLocations {
		total += dwell.TotalHours
	}
	return total
}

func daySpanHours(pattern *models.DailyPattern) float64 {
	if pattern.FirstPing == nil || pattern.LastPing == nil {
		return 0
	}
	return pattern.LastPing.Sub(*pattern.FirstPing).Hours()
}
