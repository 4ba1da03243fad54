package utils

import (
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04:05"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}

// WeekEnding maps a date to the settlement week-ending date for the given
// anchor weekday. Pure date math: the same input date always lands on the
// same week-ending date, month boundaries included. A date already on the
// anchor maps to itself.
func WeekEnding(t time.Time, endsOn time.Weekday) time.Time {
	days := (int(endsOn) - int(t.Weekday()) + 7) % 7
	d := t.AddDate(0, 0, days)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// WeekEndingDate is WeekEnding over YYYY-MM-DD strings, the shape tickets
// carry their dates in.
func WeekEndingDate(date string, endsOn time.Weekday) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(WeekEnding(t, endsOn)), nil
}
