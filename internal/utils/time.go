package utils

import (
	"fmt"
	"time"

	"github.com/routineanchor/anchor/internal/constants"
	"github.com/routineanchor/anchor/internal/models"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// "Local" or an empty string selects the system timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// TodayInTimezone returns today's date string (YYYY-MM-DD) in the specified
// timezone, so "today" follows the user's configured timezone rather than
// the system clock's.
func TodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// TodayFromSettings returns today's date string using the timezone from settings.
func TodayFromSettings(settings models.Settings) (string, error) {
	return TodayInTimezone(settings.Timezone)
}

// ParseTime parses a time string in the standard HH:MM format.
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses an HH:MM string into minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinutes renders minutes from midnight as an HH:MM string.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// ResolveDate turns a user-supplied date argument into a YYYY-MM-DD string,
// accepting "today", "yesterday", "tomorrow", or an explicit date.
func ResolveDate(arg string, settings models.Settings) (string, error) {
	switch arg {
	case "", "today":
		return TodayFromSettings(settings)
	case "yesterday", "tomorrow":
		now, err := NowInTimezone(settings.Timezone)
		if err != nil {
			return "", err
		}
		if arg == "yesterday" {
			return now.AddDate(0, 0, -1).Format(constants.DateFormat), nil
		}
		return now.AddDate(0, 0, 1).Format(constants.DateFormat), nil
	}

	if _, err := ParseDate(arg); err != nil {
		return "", fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}
	return arg, nil
}

// CombineDateAndTime combines a date string (YYYY-MM-DD) and time string
// (HH:MM) into a time.Time in the given location.
func CombineDateAndTime(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	d, err := ParseDate(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	t, err := ParseTime(timeStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}
