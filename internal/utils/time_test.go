package utils

import (
	"testing"
	"time"
)

func TestWeekEndingStableAcrossWeek(t *testing.T) {
	// Saturday 2025-03-15 through Friday 2025-03-21 are all one settlement
	// week when the week ends on Friday.
	for day := 15; day <= 21; day++ {
		d := time.Date(2025, 3, day, 0, 0, 0, 0, time.Local)
		got := WeekEnding(d, time.Friday)
		if FormatDate(got) != "2025-03-21" {
			t.Fatalf("WeekEnding(2025-03-%02d) = %s, want 2025-03-21", day, FormatDate(got))
		}
	}
}

func TestWeekEndingAnchorMapsToItself(t *testing.T) {
	friday := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)
	if got := WeekEnding(friday, time.Friday); FormatDate(got) != "2025-03-14" {
		t.Fatalf("a Friday should map to itself, got %s", FormatDate(got))
	}
}

func TestWeekEndingCrossesMonthBoundary(t *testing.T) {
	// Sunday 2025-03-30 belongs to the week ending Friday 2025-04-04.
	d := time.Date(2025, 3, 30, 0, 0, 0, 0, time.Local)
	if got := WeekEnding(d, time.Friday); FormatDate(got) != "2025-04-04" {
		t.Fatalf("WeekEnding(2025-03-30) = %s, want 2025-04-04", FormatDate(got))
	}
}

func TestWeekEndingDateParsesAndMaps(t *testing.T) {
	got, err := WeekEndingDate("2025-03-12", time.Friday)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != "2025-03-14" {
		t.Fatalf("WeekEndingDate(2025-03-12) = %s, want 2025-03-14", got)
	}

	if _, err := WeekEndingDate("12/03/2025", time.Friday); err == nil {
		t.Fatalf("expected error for non-ISO date")
	}
}
