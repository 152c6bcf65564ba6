package engine

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	// A Tuesday.
	now := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "today", input: "today", want: "2026-09-01"},
		{name: "tomorrow", input: "Tomorrow", want: "2026-09-02"},
		{name: "arabic tomorrow", input: "غداً", want: "2026-09-02"},
		{name: "weekday ahead", input: "friday", want: "2026-09-04"},
		{name: "weekday abbreviation", input: "Fri", want: "2026-09-04"},
		{name: "same weekday rolls a week", input: "tuesday", want: "2026-09-08"},
		{name: "weekday behind rolls forward", input: "monday", want: "2026-09-07"},
		{name: "arabic weekday", input: "الجمعة", want: "2026-09-04"},
		{name: "iso", input: "2026-12-25", want: "2026-12-25"},
		{name: "iso with arabic digits", input: "٢٠٢٦-١٢-٢٥", want: "2026-12-25"},
		{name: "slash format", input: "25/12/2026", want: "2026-12-25"},
		{name: "month name", input: "December 25", want: "2026-12-25"},
		{name: "month name short", input: "dec 25", want: "2026-12-25"},
		{name: "day first", input: "25 December", want: "2026-12-25"},
		{name: "yearless past rolls to next year", input: "January 5", want: "2027-01-05"},
		{name: "past iso rejected", input: "2025-01-01", wantErr: true},
		{name: "gibberish", input: "whenever works", wantErr: true},
		{name: "empty", input: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, now)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestSlotStart(t *testing.T) {
	loc := time.FixedZone("GST", 4*3600)

	got, err := SlotStart("2026-09-10", "2:00 PM", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 9, 10, 14, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("expected %s, got %s", want, got)
	}

	if _, err := SlotStart("not-a-date", "2:00 PM", loc); err == nil {
		t.Error("expected error for bad date")
	}
	if _, err := SlotStart("2026-09-10", "half past", loc); err == nil {
		t.Error("expected error for bad timeslot")
	}
}
