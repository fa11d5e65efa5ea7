package events

import (
	"sort"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/storage"
)

// Wednesday noon; the week opens on Sunday 2024-01-07.
var testNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

func setupTestStore(t *testing.T) (*Store, *storage.MemoryStore, *clockwork.FakeClock) {
	t.Helper()
	provider := storage.NewMemoryStore()
	clock := clockwork.NewFakeClockAt(testNow)
	store := NewStore(provider, clock)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	return store, provider, clock
}

func at(day, hour, min int) time.Time {
	return time.Date(2024, 1, day, hour, min, 0, 0, time.UTC)
}

func addEvent(t *testing.T, s *Store, title string, start, end time.Time) models.CalendarEvent {
	t.Helper()
	e, err := s.AddEvent(models.CalendarEvent{Title: title, Start: start, End: end, Type: models.EventStudy})
	if err != nil {
		t.Fatalf("AddEvent() failed: %v", err)
	}
	return e
}

func TestAddEventDefaults(t *testing.T) {
	store, _, _ := setupTestStore(t)
	e, _ := store.AddEvent(models.CalendarEvent{
		Title:     "Lab",
		Type:      models.EventWork,
		Start:     at(10, 15, 0),
		End:       at(10, 16, 0),
		Completed: true,
		Skipped:   true,
	})
	if e.ID == "" || e.Completed || e.Skipped {
		t.Errorf("AddEvent() = %+v", e)
	}
	if e.Color != models.EventColors[models.EventWork] {
		t.Errorf("Color = %q", e.Color)
	}
}

func TestEventsRoundTripTimes(t *testing.T) {
	store, provider, clock := setupTestStore(t)
	e := addEvent(t, store, "Study", at(10, 15, 0), at(10, 16, 30))

	reloaded := NewStore(provider, clock)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	got, ok := reloaded.Event(e.ID)
	if !ok {
		t.Fatal("event missing after reload")
	}
	if !got.Start.Equal(e.Start) || !got.End.Equal(e.End) {
		t.Errorf("times after reload = %v - %v", got.Start, got.End)
	}
	if n := len(reloaded.TodayEvents()); n != 1 {
		t.Errorf("TodayEvents() after reload = %d, want 1", n)
	}
}

func TestToggleSkipUpdate(t *testing.T) {
	store, _, clock := setupTestStore(t)
	e := addEvent(t, store, "Gym", at(10, 18, 0), at(10, 19, 0))

	store.ToggleEventComplete(e.ID)
	got, _ := store.Event(e.ID)
	if !got.Completed {
		t.Error("event should be completed")
	}
	store.ToggleEventComplete(e.ID)
	got, _ = store.Event(e.ID)
	if got.Completed {
		t.Error("event should be incomplete after second toggle")
	}

	clock.Advance(time.Minute)
	store.UpdateEvent(e.ID, func(ev *models.CalendarEvent) { ev.Title = "Swim" })
	got, _ = store.Event(e.ID)
	if got.Title != "Swim" || !got.UpdatedAt.After(got.CreatedAt) {
		t.Errorf("after update = %+v", got)
	}

	store.SkipEvent(e.ID)
	if n := len(store.TodayEvents()); n != 0 {
		t.Errorf("skipped event still in TodayEvents(): %d", n)
	}
	if n := len(store.EventsForDate(testNow)); n != 1 {
		t.Errorf("skipped event should stay in history, got %d", n)
	}

	for _, op := range []func(string) error{store.ToggleEventComplete, store.SkipEvent, store.DeleteEvent} {
		if err := op("missing"); err != nil {
			t.Errorf("unknown id error = %v", err)
		}
	}
}

func TestRescheduleEvent(t *testing.T) {
	store, _, _ := setupTestStore(t)
	orig := addEvent(t, store, "Essay", at(10, 14, 0), at(10, 15, 0))

	clone, err := store.RescheduleEvent(orig.ID, at(11, 9, 0), at(11, 10, 0))
	if err != nil {
		t.Fatalf("RescheduleEvent() failed: %v", err)
	}
	if clone.RescheduledFrom != orig.ID || clone.ID == orig.ID || clone.Title != "Essay" {
		t.Errorf("clone = %+v", clone)
	}

	old, _ := store.Event(orig.ID)
	if !old.Skipped {
		t.Error("original should be skipped")
	}
	if !old.Start.Equal(orig.Start) || !old.End.Equal(orig.End) {
		t.Error("original times must not change")
	}

	for _, e := range store.TodayEvents() {
		if e.ID == orig.ID {
			t.Error("original still listed today")
		}
	}
	upcoming := store.UpcomingEvents(0)
	if len(upcoming) != 1 || upcoming[0].ID != clone.ID {
		t.Errorf("UpcomingEvents() = %+v", upcoming)
	}
	if len(store.Events()) != 2 {
		t.Errorf("events = %d, want 2", len(store.Events()))
	}
}

func TestRescheduleUnknown(t *testing.T) {
	store, _, _ := setupTestStore(t)
	if _, err := store.RescheduleEvent("missing", at(11, 9, 0), at(11, 10, 0)); err != nil {
		t.Errorf("error = %v", err)
	}
	if len(store.Events()) != 0 {
		t.Error("no event should be created")
	}
}

func TestEventsForDateMembership(t *testing.T) {
	store, _, _ := setupTestStore(t)
	addEvent(t, store, "inside", at(10, 9, 0), at(10, 10, 0))
	addEvent(t, store, "ends today", at(9, 22, 0), at(10, 1, 0))
	addEvent(t, store, "starts today", at(10, 23, 0), at(11, 2, 0))
	addEvent(t, store, "spans", at(9, 0, 0), at(12, 0, 0))
	addEvent(t, store, "yesterday", at(9, 9, 0), at(9, 10, 0))
	addEvent(t, store, "tomorrow", at(11, 0, 0), at(11, 1, 0))

	got := titles(store.EventsForDate(testNow))
	want := []string{"ends today", "inside", "spans", "starts today"}
	if !equal(got, want) {
		t.Errorf("EventsForDate() = %v, want %v", got, want)
	}
}

func TestEventsForWeek(t *testing.T) {
	store, _, _ := setupTestStore(t)
	addEvent(t, store, "sunday", at(7, 9, 0), at(7, 10, 0))
	addEvent(t, store, "saturday", at(13, 20, 0), at(13, 21, 0))
	addEvent(t, store, "last saturday", at(6, 9, 0), at(6, 10, 0))
	addEvent(t, store, "next sunday", at(14, 9, 0), at(14, 10, 0))

	got := titles(store.EventsForWeek(testNow))
	if !equal(got, []string{"saturday", "sunday"}) {
		t.Errorf("EventsForWeek() = %v", got)
	}
}

func TestTodayAndUpcomingOrdering(t *testing.T) {
	store, _, _ := setupTestStore(t)
	late := addEvent(t, store, "late", at(10, 20, 0), at(10, 21, 0))
	addEvent(t, store, "early", at(10, 8, 0), at(10, 9, 0))
	addEvent(t, store, "noon", at(10, 12, 0), at(10, 13, 0))

	today := store.TodayEvents()
	if len(today) != 3 || today[0].Title != "early" || today[2].Title != "late" {
		t.Errorf("TodayEvents() = %v", titles(today))
	}

	for d := 11; d <= 16; d++ {
		addEvent(t, store, "future", at(d, 9, 0), at(d, 10, 0))
	}
	store.ToggleEventComplete(late.ID)

	upcoming := store.UpcomingEvents(0)
	if len(upcoming) != 5 {
		t.Fatalf("UpcomingEvents() = %d, want 5", len(upcoming))
	}
	// The noon event starts exactly now and counts as upcoming
	if upcoming[0].Title != "noon" {
		t.Errorf("first upcoming = %q, want noon", upcoming[0].Title)
	}
	for _, e := range upcoming {
		if e.ID == late.ID {
			t.Error("completed event listed as upcoming")
		}
	}
	if n := len(store.UpcomingEvents(2)); n != 2 {
		t.Errorf("UpcomingEvents(2) = %d", n)
	}
}

func titles(events []models.CalendarEvent) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Title)
	}
	sort.Strings(out)
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
