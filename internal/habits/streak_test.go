package habits

import (
	"testing"
	"time"
)

func TestHabitStreak(t *testing.T) {
	tests := []struct {
		name        string
		dates       []string
		wantCurrent int
		wantLongest int
		wantLast    string
	}{
		{
			name:        "no logs",
			wantCurrent: 0,
		},
		{
			name:        "three consecutive ending today",
			dates:       []string{"2024-03-13", "2024-03-14", "2024-03-15"},
			wantCurrent: 3,
			wantLongest: 3,
			wantLast:    "2024-03-15",
		},
		{
			name:        "gap at yesterday",
			dates:       []string{"2024-03-13", "2024-03-15"},
			wantCurrent: 1,
			wantLongest: 1,
			wantLast:    "2024-03-15",
		},
		{
			name:        "ending yesterday still counts",
			dates:       []string{"2024-03-13", "2024-03-14"},
			wantCurrent: 2,
			wantLongest: 2,
			wantLast:    "2024-03-14",
		},
		{
			name:        "last done two days ago",
			dates:       []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04", "2024-03-13"},
			wantCurrent: 0,
			wantLongest: 4,
			wantLast:    "2024-03-13",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _, _ := setupTestStore(t)
			h := addBinary(t, store, "Read")
			for _, d := range tt.dates {
				store.ToggleHabitCompletion(h.ID, d)
			}

			got := store.HabitStreak(h.ID)
			if got.CurrentStreak != tt.wantCurrent {
				t.Errorf("CurrentStreak = %d, want %d", got.CurrentStreak, tt.wantCurrent)
			}
			if got.LongestStreak != tt.wantLongest {
				t.Errorf("LongestStreak = %d, want %d", got.LongestStreak, tt.wantLongest)
			}
			if got.LastCompletedDate != tt.wantLast {
				t.Errorf("LastCompletedDate = %q, want %q", got.LastCompletedDate, tt.wantLast)
			}
			if store.CurrentStreak(h.ID) != tt.wantCurrent {
				t.Errorf("CurrentStreak() disagrees with HabitStreak()")
			}
		})
	}
}

func TestStreakIgnoresUncompletedLogs(t *testing.T) {
	store, _, _ := setupTestStore(t)
	h := addBinary(t, store, "Read")

	store.ToggleHabitCompletion(h.ID, "2024-03-15")
	store.ToggleHabitCompletion(h.ID, "2024-03-14")
	store.ToggleHabitCompletion(h.ID, "2024-03-14") // un-complete yesterday

	if got := store.CurrentStreak(h.ID); got != 1 {
		t.Errorf("CurrentStreak() = %d, want 1", got)
	}
}

func TestStreakFollowsClock(t *testing.T) {
	store, _, clock := setupTestStore(t)
	h := addBinary(t, store, "Read")
	store.ToggleHabitCompletion(h.ID, "2024-03-15")

	clock.Advance(24 * time.Hour) // tomorrow: yesterday's completion still counts
	if got := store.CurrentStreak(h.ID); got != 1 {
		t.Errorf("next day streak = %d, want 1", got)
	}
	clock.Advance(24 * time.Hour) // two days later: broken
	if got := store.CurrentStreak(h.ID); got != 0 {
		t.Errorf("two days later streak = %d, want 0", got)
	}
}

func TestBestCurrentStreak(t *testing.T) {
	store, _, _ := setupTestStore(t)
	a := addBinary(t, store, "A")
	b := addBinary(t, store, "B")
	store.ToggleHabitCompletion(a.ID, "2024-03-15")
	for _, d := range []string{"2024-03-13", "2024-03-14", "2024-03-15"} {
		store.ToggleHabitCompletion(b.ID, d)
	}
	if got := store.BestCurrentStreak(); got != 3 {
		t.Errorf("BestCurrentStreak() = %d, want 3", got)
	}
}
