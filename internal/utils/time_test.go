package utils

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestToday(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC))
	if got := Today(clock); got != "2024-03-15" {
		t.Errorf("Today() = %q, want 2024-03-15", got)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		want    int
		wantErr bool
	}{
		{name: "same day", from: "2024-01-01", to: "2024-01-01", want: 0},
		{name: "next day", from: "2024-01-01", to: "2024-01-02", want: 1},
		{name: "backwards", from: "2024-01-05", to: "2024-01-01", want: -4},
		{name: "across month", from: "2024-01-31", to: "2024-02-01", want: 1},
		{name: "leap year", from: "2024-02-28", to: "2024-03-01", want: 2},
		{name: "invalid", from: "2024-13-01", to: "2024-01-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DaysBetween(tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DaysBetween() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStartOfWeek(t *testing.T) {
	// 2024-03-13 is a Wednesday
	wed := time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC)
	got := StartOfWeek(wed)
	want := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartOfWeek() = %v, want %v", got, want)
	}

	sun := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	if got := StartOfWeek(sun); !got.Equal(want) {
		t.Errorf("StartOfWeek(sunday) = %v, want %v", got, want)
	}
}

func TestCombineDateAndTime(t *testing.T) {
	got, err := CombineDateAndTime("2024-01-01", "23:00", time.UTC)
	if err != nil {
		t.Fatalf("CombineDateAndTime() error = %v", err)
	}
	want := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CombineDateAndTime() = %v, want %v", got, want)
	}

	if _, err := CombineDateAndTime("2024-01-01", "25:00", time.UTC); err == nil {
		t.Error("expected error for invalid time")
	}
}

func TestDayRange(t *testing.T) {
	got, err := DayRange("2024-03-02", 3)
	if err != nil {
		t.Fatalf("DayRange() error = %v", err)
	}
	want := []string{"2024-02-29", "2024-03-01", "2024-03-02"}
	if len(got) != len(want) {
		t.Fatalf("DayRange() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DayRange()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{in: "mon", want: time.Monday},
		{in: "Tuesday", want: time.Tuesday},
		{in: "SAT", want: time.Saturday},
		{in: "funday", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekday(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekday() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseWeekday() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRound1(t *testing.T) {
	if got := Round1(6.66); got != 6.7 {
		t.Errorf("Round1(6.66) = %v", got)
	}
	if got := Round1(2.0); got != 2.0 {
		t.Errorf("Round1(2.0) = %v", got)
	}
}
