// Package dateutil holds the day-count conventions that map simulated years
// onto the daily market series.
package dateutil

import (
	"math"
	"time"
)

// DaysPerYear is the average calendar year length used when converting
// fractional years to day counts.
const DaysPerYear = 365.25

// YearsToDays converts a year span to whole days, truncating toward zero.
func YearsToDays(years float64) int {
	return int(math.Floor(years * DaysPerYear))
}

// OffsetDate returns the calendar date the given number of days after epoch.
func OffsetDate(epoch time.Time, days int) time.Time {
	return epoch.AddDate(0, 0, days)
}

// DaysBetween returns the number of whole days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// ApproxYear expresses an epoch-relative day offset as a fractional calendar
// year, for diagnostics like "offset 3652 starts near 1981.0".
func ApproxYear(epoch time.Time, days int) float64 {
	return float64(epoch.Year()) + float64(days)/DaysPerYear
}

// IsLeapYear checks if a year is a leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns the number of days in a given calendar year.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}
