package timerange_test

import (
	"errors"
	"testing"
	"time"

	"camctl/internal/services"
	"camctl/internal/timerange"
)

var now = time.Date(2023, 5, 15, 18, 30, 0, 0, time.Local)

func TestParseSince(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"30m", 30 * time.Minute},
		{"2h", 2 * time.Hour},
		{"3d", 72 * time.Hour},
	}
	for _, tt := range tests {
		w, err := timerange.ParseSince(tt.in, now)
		if err != nil {
			t.Fatalf("ParseSince(%q): %v", tt.in, err)
		}
		if !w.End.Equal(now) {
			t.Fatalf("ParseSince(%q) end = %v", tt.in, w.End)
		}
		if got := w.End.Sub(w.Start); got != tt.want {
			t.Fatalf("ParseSince(%q) span = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseSinceRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "30", "m30", "2w", "0h", "-1d", "1.5h"} {
		if _, err := timerange.ParseSince(in, now); !errors.Is(err, services.ErrValidation) {
			t.Errorf("ParseSince(%q): expected validation error, got %v", in, err)
		}
	}
}

func TestParseDate(t *testing.T) {
	w, err := timerange.ParseDate("2023-05-10", now)
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	wantStart := time.Date(2023, 5, 10, 0, 0, 0, 0, time.Local)
	wantEnd := time.Date(2023, 5, 10, 23, 59, 59, 0, time.Local)
	if !w.Start.Equal(wantStart) || !w.End.Equal(wantEnd) {
		t.Fatalf("window = %v..%v", w.Start, w.End)
	}
}

func TestParseDateKeywords(t *testing.T) {
	today, err := timerange.ParseDate("today", now)
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if today.Start.Day() != 15 {
		t.Fatalf("today start = %v", today.Start)
	}

	yesterday, err := timerange.ParseDate("yesterday", now)
	if err != nil {
		t.Fatalf("yesterday: %v", err)
	}
	if yesterday.Start.Day() != 14 {
		t.Fatalf("yesterday start = %v", yesterday.Start)
	}
}

func TestParseRange(t *testing.T) {
	w, err := timerange.ParseRange("2023-05-01", "2023-05-03", time.Local)
	if err != nil {
		t.Fatalf("ParseRange: %v", err)
	}
	if w.Start.Day() != 1 || w.End.Day() != 3 || w.End.Hour() != 23 {
		t.Fatalf("window = %v..%v", w.Start, w.End)
	}
}

func TestParseRangeRejectsInverted(t *testing.T) {
	if _, err := timerange.ParseRange("2023-05-03", "2023-05-01", time.Local); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
