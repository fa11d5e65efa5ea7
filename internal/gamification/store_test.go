package gamification

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/storage"
)

// Thursday; the week closes at Sunday 2024-02-04 00:00.
var testNow = time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)

func setupTestStore(t *testing.T, opts ...Option) (*Store, *storage.MemoryStore, *clockwork.FakeClock) {
	t.Helper()
	provider := storage.NewMemoryStore()
	clock := clockwork.NewFakeClockAt(testNow)
	store := NewStore(provider, clock, opts...)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	return store, provider, clock
}

func TestInitialState(t *testing.T) {
	store, _, _ := setupTestStore(t)
	st := store.State()
	if st.Level != 1 || st.ExperienceToNextLevel != 100 || st.TotalPoints != 0 {
		t.Errorf("initial state = %+v", st)
	}
	if st.WeeklyChallenge != nil {
		t.Error("no challenge expected before generation")
	}
}

func TestAddPointsRecomputesLevel(t *testing.T) {
	store, provider, clock := setupTestStore(t)
	store.AddPoints(60, "habit")
	store.AddPoints(40, "habit")

	st := store.State()
	if st.TotalPoints != 100 || st.WeeklyPoints != 100 || st.Level != 2 || st.ExperienceToNextLevel != 150 {
		t.Errorf("state = %+v", st)
	}
	if len(st.History) != 2 || st.History[0].Reason != "habit" {
		t.Errorf("history = %+v", st.History)
	}

	reloaded := NewStore(provider, clock)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if reloaded.State().Level != 2 {
		t.Errorf("level after reload = %d", reloaded.State().Level)
	}
}

func TestHistoryIsCapped(t *testing.T) {
	store, _, _ := setupTestStore(t)
	for i := 0; i < historyLimit+5; i++ {
		store.AddPoints(1, "tick")
	}
	if n := len(store.State().History); n != historyLimit {
		t.Errorf("history = %d, want %d", n, historyLimit)
	}
	if store.State().TotalPoints != historyLimit+5 {
		t.Error("capping the ledger must not change totals")
	}
}

func TestUnlockAchievementIsIdempotent(t *testing.T) {
	store, _, _ := setupTestStore(t)
	first, _ := store.UnlockAchievement(AchievementFirstHabit)
	second, _ := store.UnlockAchievement(AchievementFirstHabit)
	if !first || second {
		t.Errorf("unlock results = %v, %v", first, second)
	}
	if n := len(store.State().UnlockedAchievements); n != 1 {
		t.Errorf("unlocked = %d, want 1", n)
	}
	if !store.HasAchievement(AchievementFirstHabit) || store.HasAchievement(AchievementLevel5) {
		t.Error("HasAchievement() mismatch")
	}
}

func TestWeeklyChallengeRewardsOnce(t *testing.T) {
	store, _, _ := setupTestStore(t)
	store.state.WeeklyChallenge = &models.WeeklyChallenge{
		ID:           "test",
		Title:        "Test",
		TargetValue:  5,
		CurrentValue: 4,
		Reward:       50,
		ExpiresAt:    testNow.Add(time.Hour),
	}

	awarded, err := store.UpdateWeeklyChallenge(2)
	if err != nil {
		t.Fatalf("UpdateWeeklyChallenge() failed: %v", err)
	}
	st := store.State()
	if awarded != 50 || st.WeeklyChallenge.CurrentValue != 6 || st.TotalPoints != 50 {
		t.Errorf("after crossing: awarded=%d state=%+v", awarded, st)
	}

	awarded, _ = store.UpdateWeeklyChallenge(1)
	st = store.State()
	if awarded != 0 || st.WeeklyChallenge.CurrentValue != 7 || st.TotalPoints != 50 {
		t.Errorf("after overshoot: awarded=%d state=%+v", awarded, st)
	}
}

func TestWeeklyChallengeRewardRaisesLevel(t *testing.T) {
	store, _, _ := setupTestStore(t)
	store.AddPoints(90, "habit")
	store.state.WeeklyChallenge = &models.WeeklyChallenge{ID: "x", TargetValue: 1, Reward: 25}
	store.UpdateWeeklyChallenge(1)
	if got := store.State().Level; got != 2 {
		t.Errorf("level = %d, want 2", got)
	}
}

func TestUpdateWeeklyChallengeWithoutChallenge(t *testing.T) {
	store, _, _ := setupTestStore(t)
	awarded, err := store.UpdateWeeklyChallenge(3)
	if awarded != 0 || err != nil {
		t.Errorf("UpdateWeeklyChallenge() = %d, %v", awarded, err)
	}
}

func TestGenerateWeeklyChallenge(t *testing.T) {
	store, _, clock := setupTestStore(t, WithPicker(func(int) int { return 4 }))
	if !store.ChallengeExpired() {
		t.Error("missing challenge should count as expired")
	}

	c, err := store.GenerateWeeklyChallenge()
	if err != nil {
		t.Fatalf("GenerateWeeklyChallenge() failed: %v", err)
	}
	want := WeeklyChallenges[4]
	if c.ID != want.ID || c.TargetValue != want.TargetValue || c.CurrentValue != 0 {
		t.Errorf("challenge = %+v", c)
	}
	if !c.ExpiresAt.Equal(time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ExpiresAt = %v", c.ExpiresAt)
	}
	if store.ChallengeExpired() {
		t.Error("fresh challenge should not be expired")
	}

	clock.Advance(3 * 24 * time.Hour)
	if !store.ChallengeExpired() {
		t.Error("challenge should expire at the week boundary")
	}
}

func TestOverallStreak(t *testing.T) {
	store, _, _ := setupTestStore(t)
	for _, done := range []bool{true, true, true, false, true} {
		store.UpdateOverallStreak(done)
	}
	st := store.State()
	if st.CurrentOverallStreak != 1 || st.LongestOverallStreak != 3 {
		t.Errorf("streak = %d/%d, want 1/3", st.CurrentOverallStreak, st.LongestOverallStreak)
	}
}

func TestRecordDayOncePerDate(t *testing.T) {
	store, _, _ := setupTestStore(t)
	applied, _ := store.RecordDay("2024-01-30", true)
	if !applied {
		t.Fatal("first day should apply")
	}
	applied, _ = store.RecordDay("2024-01-30", true)
	if applied {
		t.Error("same day should not apply twice")
	}
	applied, _ = store.RecordDay("2024-01-29", true)
	if applied {
		t.Error("earlier day should not apply")
	}
	store.RecordDay("2024-01-31", true)

	st := store.State()
	if st.CurrentOverallStreak != 2 || st.LastStreakCheck != "2024-01-31" {
		t.Errorf("state = %+v", st)
	}
}

func TestResetWeeklyPoints(t *testing.T) {
	store, _, _ := setupTestStore(t)
	store.AddPoints(120, "habit")
	store.ResetWeeklyPoints()
	st := store.State()
	if st.WeeklyPoints != 0 || st.TotalPoints != 120 {
		t.Errorf("state = %+v", st)
	}
}

type failingProvider struct {
	*storage.MemoryStore
}

func (failingProvider) Put(string, any) error { return errors.New("disk full") }

func TestPersistFailureKeepsMemoryState(t *testing.T) {
	store := NewStore(failingProvider{storage.NewMemoryStore()}, clockwork.NewFakeClockAt(testNow))
	if err := store.AddPoints(10, "habit"); err == nil {
		t.Fatal("expected persistence error")
	}
	if store.State().TotalPoints != 10 {
		t.Error("in-memory state should keep the award")
	}
}

func TestCatalogs(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range Achievements {
		if seen[a.ID] {
			t.Errorf("duplicate achievement %q", a.ID)
		}
		seen[a.ID] = true
	}
	if _, ok := AchievementByID(AchievementHabitStreak30); !ok {
		t.Error("habit-streak-30 missing")
	}
	for _, c := range WeeklyChallenges {
		if c.TargetValue <= 0 || c.Reward <= 0 {
			t.Errorf("bad challenge %+v", c)
		}
	}
}
