// Package timeutil derives date keys in the Amsterdam timezone. Game days roll
// over at local midnight in the Netherlands, so every date key comes from
// Amsterdam wall-clock time, not UTC.
// No external dependencies - uses only standard library.
package timeutil

import "time"

// AmsterdamTZ is the Europe/Amsterdam timezone (CET/CEST, observes DST).
// Falls back to a fixed UTC+1 zone when the IANA database is unavailable.
var AmsterdamTZ = loadAmsterdam()

func loadAmsterdam() *time.Location {
	loc, err := time.LoadLocation("Europe/Amsterdam")
	if err != nil {
		return time.FixedZone("CET", 1*60*60)
	}
	return loc
}

// FormatDate is the standard date key format (YYYY-MM-DD).
const FormatDate = "2006-01-02"

// DateKey formats a time as a date key (YYYY-MM-DD) in Amsterdam timezone.
func DateKey(t time.Time) string {
	return t.In(AmsterdamTZ).Format(FormatDate)
}

// TodayKey returns the date key for the current Amsterdam day.
func TodayKey() string {
	return DateKey(time.Now())
}
