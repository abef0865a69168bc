package utils

import (
	"testing"
	"time"

	"github.com/routineanchor/anchor/internal/models"
)

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"06:30", 390, false},
		{"23:59", 1439, false},
		{"7am", 0, true},
		{"25:00", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTimeToMinutes(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTimeToMinutes(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeToMinutes(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{390, "06:30"},
		{1439, "23:59"},
	}
	for _, tt := range tests {
		if got := FormatMinutes(tt.in); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveDate(t *testing.T) {
	settings := models.Settings{Timezone: "UTC"}

	got, err := ResolveDate("2026-01-05", settings)
	if err != nil {
		t.Fatalf("ResolveDate failed: %v", err)
	}
	if got != "2026-01-05" {
		t.Errorf("explicit date changed: %q", got)
	}

	today, err := ResolveDate("today", settings)
	if err != nil {
		t.Fatalf("ResolveDate(today) failed: %v", err)
	}
	empty, err := ResolveDate("", settings)
	if err != nil {
		t.Fatalf("ResolveDate(\"\") failed: %v", err)
	}
	if today != empty {
		t.Errorf("empty arg and 'today' disagree: %q vs %q", empty, today)
	}

	yesterday, err := ResolveDate("yesterday", settings)
	if err != nil {
		t.Fatalf("ResolveDate(yesterday) failed: %v", err)
	}
	tomorrow, err := ResolveDate("tomorrow", settings)
	if err != nil {
		t.Fatalf("ResolveDate(tomorrow) failed: %v", err)
	}
	td, _ := time.Parse("2006-01-02", today)
	if yesterday != td.AddDate(0, 0, -1).Format("2006-01-02") {
		t.Errorf("yesterday = %q relative to today %q", yesterday, today)
	}
	if tomorrow != td.AddDate(0, 0, 1).Format("2006-01-02") {
		t.Errorf("tomorrow = %q relative to today %q", tomorrow, today)
	}

	if _, err := ResolveDate("Jan 5", settings); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestResolveDateInvalidTimezone(t *testing.T) {
	if _, err := ResolveDate("today", models.Settings{Timezone: "Mars/Olympus"}); err == nil {
		t.Error("expected error for invalid timezone")
	}
}

func TestCombineDateAndTime(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation failed: %v", err)
	}

	got, err := CombineDateAndTime("2026-01-05", "09:30", loc)
	if err != nil {
		t.Fatalf("CombineDateAndTime failed: %v", err)
	}
	want := time.Date(2026, 1, 5, 9, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("CombineDateAndTime = %v, want %v", got, want)
	}

	if _, err := CombineDateAndTime("01/05/2026", "09:30", loc); err == nil {
		t.Error("expected error for bad date")
	}
	if _, err := CombineDateAndTime("2026-01-05", "9:30pm", loc); err == nil {
		t.Error("expected error for bad time")
	}
}

func TestLoadLocation(t *testing.T) {
	if loc, err := LoadLocation(""); err != nil || loc != time.Local {
		t.Errorf("empty timezone must resolve to Local, got %v, %v", loc, err)
	}
	if loc, err := LoadLocation("UTC"); err != nil || loc.String() != "UTC" {
		t.Errorf("UTC lookup failed: %v, %v", loc, err)
	}
	if _, err := LoadLocation("Not/AZone"); err == nil {
		t.Error("expected error for unknown timezone")
	}
}
