package app

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/julianstephens/ripple/internal/coach"
	"github.com/julianstephens/ripple/internal/constants"
	rerrors "github.com/julianstephens/ripple/internal/errors"
	"github.com/julianstephens/ripple/internal/gamification"
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/profile"
	"github.com/julianstephens/ripple/internal/storage"
)

// Wednesday morning; the week closes Sunday 2024-01-14.
var testNow = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

// warmUp is the catalog index of the five-habit challenge.
const warmUp = 4

func setupTestApp(t *testing.T, opts Options) (*App, *storage.MemoryStore, *clockwork.FakeClock) {
	t.Helper()
	provider := storage.NewMemoryStore()
	clock := clockwork.NewFakeClockAt(testNow)
	if opts.Picker == nil {
		opts.Picker = func(int) int { return warmUp }
	}
	a := New(provider, clock, opts)
	if err := a.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if _, err := a.Gamification.GenerateWeeklyChallenge(); err != nil {
		t.Fatalf("GenerateWeeklyChallenge() failed: %v", err)
	}
	return a, provider, clock
}

func addHabit(t *testing.T, a *App, name string, points, target int) models.Habit {
	t.Helper()
	h, err := a.Habits.AddHabit(models.Habit{
		Name:                name,
		Frequency:           models.FrequencyDaily,
		PointsPerCompletion: points,
		TargetCount:         target,
		Active:              true,
	})
	if err != nil {
		t.Fatalf("AddHabit() failed: %v", err)
	}
	return h
}

func TestToggleHabitAwardsOnCompletion(t *testing.T) {
	a, _, _ := setupTestApp(t, Options{})
	h := addHabit(t, a, "Read", 20, 0)

	log, out, err := a.ToggleHabit(h.ID, "")
	if err != nil {
		t.Fatalf("ToggleHabit() failed: %v", err)
	}
	if !log.Completed || log.Date != "2024-01-10" {
		t.Errorf("log = %+v", log)
	}
	if out.Points != 20 || len(out.Unlocked) != 1 || out.Unlocked[0].ID != gamification.AchievementFirstHabit {
		t.Errorf("outcome = %+v", out)
	}

	st := a.Gamification.State()
	// 20 for the habit plus 10 for the first-habit achievement
	if st.TotalPoints != 30 || st.WeeklyChallenge.CurrentValue != 1 {
		t.Errorf("after first toggle: points=%d challenge=%d", st.TotalPoints, st.WeeklyChallenge.CurrentValue)
	}

	_, out, _ = a.ToggleHabit(h.ID, "")
	if out.Points != 0 {
		t.Errorf("un-completing should not award, got %+v", out)
	}
	if st := a.Gamification.State(); st.TotalPoints != 30 || st.WeeklyChallenge.CurrentValue != 1 {
		t.Errorf("after second toggle: %+v", st)
	}

	a.ToggleHabit(h.ID, "")
	if st := a.Gamification.State(); st.TotalPoints != 50 || st.WeeklyChallenge.CurrentValue != 2 {
		t.Errorf("after third toggle: points=%d challenge=%d", st.TotalPoints, st.WeeklyChallenge.CurrentValue)
	}
}

func TestMultiStepHabitAwardsWhenTargetReached(t *testing.T) {
	a, _, _ := setupTestApp(t, Options{})
	h := addHabit(t, a, "Water", 10, 3)

	for i := 0; i < 2; i++ {
		if _, out, _ := a.IncrementHabit(h.ID, ""); out.Points != 0 {
			t.Errorf("step %d awarded %d", i+1, out.Points)
		}
	}
	log, out, _ := a.IncrementHabit(h.ID, "")
	if !log.Completed || out.Points != 10 {
		t.Errorf("third step: log=%+v outcome=%+v", log, out)
	}

	// Going past the target does not pay again
	if _, out, _ := a.IncrementHabit(h.ID, ""); out.Points != 0 {
		t.Errorf("fourth step awarded %d", out.Points)
	}
	a.DecrementHabit(h.ID, "")
	a.DecrementHabit(h.ID, "")
	if _, out, _ := a.DecrementHabit(h.ID, ""); out.Points != 0 {
		t.Error("decrement should never award")
	}
	if log, out, _ := a.IncrementHabit(h.ID, ""); !log.Completed || out.Points != 10 {
		t.Errorf("re-reaching target: log=%+v outcome=%+v", log, out)
	}
}

func TestToggleMultiStepHabitPaysOnce(t *testing.T) {
	a, _, _ := setupTestApp(t, Options{})
	h := addHabit(t, a, "Water", 10, 3)

	log, out, err := a.ToggleHabit(h.ID, "")
	if err != nil {
		t.Fatalf("ToggleHabit() failed: %v", err)
	}
	if !log.Completed || log.Count != 3 || out.Points != 10 {
		t.Fatalf("toggle: log=%+v outcome=%+v", log, out)
	}
	paid := a.Gamification.State().TotalPoints

	for i := 0; i < 3; i++ {
		log, out, _ = a.IncrementHabit(h.ID, "")
		if !log.Completed || out.Points != 0 {
			t.Errorf("increment %d after toggle: log=%+v outcome=%+v", i+1, log, out)
		}
	}
	if got := a.Gamification.State().TotalPoints; got != paid {
		t.Errorf("points = %d after increments, want %d", got, paid)
	}

	log, out, _ = a.ToggleHabit(h.ID, "")
	if log.Completed || log.Count != 0 || out.Points != 0 {
		t.Errorf("toggle off: log=%+v outcome=%+v", log, out)
	}
}

func TestUnknownHabitIsNoOp(t *testing.T) {
	a, _, _ := setupTestApp(t, Options{})
	log, out, err := a.ToggleHabit("missing", "")
	if err != nil || log.ID != "" || out.Points != 0 {
		t.Errorf("ToggleHabit(unknown) = %+v, %+v, %v", log, out, err)
	}
	if len(a.Habits.Logs()) != 0 {
		t.Error("no log should be created")
	}
}

func TestLogMoodAndSleepAwardNewEntriesOnly(t *testing.T) {
	a, _, _ := setupTestApp(t, Options{})

	_, out, _ := a.LogMood(models.MoodEntry{MoodScore: 7, StressLevel: 3})
	if out.Points != constants.MoodLogPoints {
		t.Errorf("new mood = %d points", out.Points)
	}
	_, out, _ = a.LogMood(models.MoodEntry{MoodScore: 4, StressLevel: 6})
	if out.Points != 0 {
		t.Errorf("replaced mood = %d points", out.Points)
	}

	bed := time.Date(2024, 1, 9, 23, 0, 0, 0, time.UTC)
	entry := models.SleepEntry{Date: "2024-01-09", BedTime: bed, WakeTime: bed.Add(8 * time.Hour), QualityRating: 4}
	_, out, _ = a.LogSleep(entry)
	if out.Points != constants.SleepLogPoints {
		t.Errorf("new sleep = %d points", out.Points)
	}
	_, out, _ = a.LogSleep(entry)
	if out.Points != 0 {
		t.Errorf("replaced sleep = %d points", out.Points)
	}

	if got := a.Gamification.State().TotalPoints; got != constants.MoodLogPoints+constants.SleepLogPoints {
		t.Errorf("total = %d", got)
	}
}

func TestChallengeCompletionThroughDispatch(t *testing.T) {
	a, _, _ := setupTestApp(t, Options{})
	target := gamification.WeeklyChallenges[warmUp]

	var last Outcome
	for i := 0; i < target.TargetValue; i++ {
		out, err := a.Dispatch(HabitCompleted{HabitID: "x", Date: "2024-01-10"})
		if err != nil {
			t.Fatalf("Dispatch() failed: %v", err)
		}
		last = out
	}
	if last.ChallengeReward != target.Reward {
		t.Errorf("ChallengeReward = %d, want %d", last.ChallengeReward, target.Reward)
	}
	if !a.Gamification.HasAchievement(gamification.AchievementChallengeComplete) {
		t.Error("challenge achievement not unlocked")
	}

	out, _ := a.Dispatch(HabitCompleted{HabitID: "x", Date: "2024-01-10"})
	if out.ChallengeReward != 0 || len(out.Unlocked) != 0 {
		t.Errorf("overshoot outcome = %+v", out)
	}
}

func TestHabitStreakAchievement(t *testing.T) {
	a, _, _ := setupTestApp(t, Options{})
	h := addHabit(t, a, "Walk", 5, 0)

	var unlocked []string
	for d := 6; d >= 0; d-- {
		date := testNow.AddDate(0, 0, -d).Format("2006-01-02")
		_, out, _ := a.ToggleHabit(h.ID, date)
		for _, ach := range out.Unlocked {
			unlocked = append(unlocked, ach.ID)
		}
	}
	if !a.Gamification.HasAchievement(gamification.AchievementHabitStreak7) {
		t.Errorf("habit-streak-7 not unlocked, got %v", unlocked)
	}
	if a.Gamification.HasAchievement(gamification.AchievementHabitStreak30) {
		t.Error("habit-streak-30 unlocked too early")
	}
}

func TestLevelAchievement(t *testing.T) {
	a, _, _ := setupTestApp(t, Options{})
	a.Gamification.AddPoints(1000, "seed")

	out, _ := a.Dispatch(MoodLogged{Date: "2024-01-10"})
	found := false
	for _, ach := range out.Unlocked {
		if ach.ID == gamification.AchievementLevel5 {
			found = true
		}
	}
	if !found {
		t.Errorf("level-5 not unlocked: %+v", out.Unlocked)
	}
}

func TestCloseDayOncePerDate(t *testing.T) {
	a, _, _ := setupTestApp(t, Options{})
	h := addHabit(t, a, "Read", 10, 0)
	a.ToggleHabit(h.ID, "2024-01-09")

	applied, err := a.CloseDay("2024-01-09")
	if err != nil || !applied {
		t.Fatalf("CloseDay() = %v, %v", applied, err)
	}
	applied, _ = a.CloseDay("2024-01-09")
	if applied {
		t.Error("second close of the same day should be ignored")
	}
	if st := a.Gamification.State(); st.CurrentOverallStreak != 1 || st.LongestOverallStreak != 1 {
		t.Errorf("streak = %d/%d", st.CurrentOverallStreak, st.LongestOverallStreak)
	}

	// Nothing done on the 10th breaks the streak
	a.CloseDay("2024-01-10")
	if st := a.Gamification.State(); st.CurrentOverallStreak != 0 || st.LongestOverallStreak != 1 {
		t.Errorf("streak after missed day = %d/%d", st.CurrentOverallStreak, st.LongestOverallStreak)
	}
}

func TestRollover(t *testing.T) {
	a, _, clock := setupTestApp(t, Options{})
	h := addHabit(t, a, "Read", 10, 0)
	a.ToggleHabit(h.ID, "")

	// Same week: only yesterday is closed
	if err := a.Rollover(); err != nil {
		t.Fatalf("Rollover() failed: %v", err)
	}
	st := a.Gamification.State()
	if st.LastStreakCheck != "2024-01-09" || st.WeeklyPoints == 0 {
		t.Errorf("mid-week rollover state = %+v", st)
	}
	firstExpiry := st.WeeklyChallenge.ExpiresAt

	clock.Advance(4*24*time.Hour - 9*time.Hour + 5*time.Minute) // Sunday 00:05
	if err := a.Rollover(); err != nil {
		t.Fatalf("Rollover() failed: %v", err)
	}
	st = a.Gamification.State()
	if st.LastStreakCheck != "2024-01-13" {
		t.Errorf("LastStreakCheck = %s", st.LastStreakCheck)
	}
	if st.WeeklyPoints != 0 || st.TotalPoints == 0 {
		t.Errorf("weekly points not reset: %+v", st)
	}
	if !st.WeeklyChallenge.ExpiresAt.After(firstExpiry) || st.WeeklyChallenge.CurrentValue != 0 {
		t.Errorf("challenge not renewed: %+v", st.WeeklyChallenge)
	}
}

func TestOnboard(t *testing.T) {
	provider := storage.NewMemoryStore()
	clock := clockwork.NewFakeClockAt(testNow)
	a := New(provider, clock, Options{Picker: func(int) int { return 0 }})
	if err := a.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if err := a.RequireOnboarded(); !errors.Is(err, rerrors.ErrNotOnboarded) {
		t.Errorf("RequireOnboarded() = %v", err)
	}

	p := profile.Default()
	p.Name = "Jordan"
	p.Classes = []models.ClassSchedule{{
		Name:      "Physics",
		Code:      "PHYS1",
		Days:      []time.Weekday{time.Thursday},
		StartTime: "13:00",
		EndTime:   "14:00",
	}}
	if err := a.Onboard(p, []string{"Drink Water", "Exercise", "Not A Habit"}); err != nil {
		t.Fatalf("Onboard() failed: %v", err)
	}

	if err := a.RequireOnboarded(); err != nil {
		t.Errorf("RequireOnboarded() after onboarding = %v", err)
	}
	if n := len(a.Habits.ActiveHabits()); n != 2 {
		t.Errorf("active habits = %d, want 2", n)
	}
	if a.Gamification.State().WeeklyChallenge == nil {
		t.Error("weekly challenge not generated")
	}
	if n := len(a.Events.Events()); n != constants.DefaultWeeksAhead {
		t.Errorf("class events = %d, want %d", n, constants.DefaultWeeksAhead)
	}

	// Everything survives a reload from the same provider
	again := New(provider, clock, Options{})
	if err := again.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !again.Profile.Onboarded() || len(again.Habits.Habits()) != 2 {
		t.Error("onboarding state lost on reload")
	}
}

func TestExport(t *testing.T) {
	a, _, _ := setupTestApp(t, Options{})
	a.Profile.SetUser(profile.Default())
	h := addHabit(t, a, "Read", 10, 0)
	a.ToggleHabit(h.ID, "")
	a.LogMood(models.MoodEntry{MoodScore: 8})

	if got := a.ExportFileName(); got != "ripple-export-2024-01-10.json" {
		t.Errorf("ExportFileName() = %s", got)
	}

	path, err := a.WriteExport(t.TempDir())
	if err != nil {
		t.Fatalf("WriteExport() failed: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var exp Export
	if err := json.Unmarshal(raw, &exp); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if exp.User == nil || len(exp.Habits) != 1 || len(exp.HabitLogs) != 1 || len(exp.MoodEntries) != 1 {
		t.Errorf("export = %+v", exp)
	}
	if exp.SleepEntries == nil || exp.Events == nil {
		t.Error("empty collections should export as []")
	}
	if exp.Gamification.TotalPoints == 0 || exp.Gamification.Level != 1 || len(exp.Gamification.Achievements) != 1 {
		t.Errorf("gamification summary = %+v", exp.Gamification)
	}
	if filepath.Base(path) != a.ExportFileName() {
		t.Errorf("path = %s", path)
	}
}

func TestReset(t *testing.T) {
	backups := 0
	a, provider, _ := setupTestApp(t, Options{Backup: func() (string, error) {
		backups++
		return "/tmp/ripple-backup.db", nil
	}})
	a.Profile.SetUser(profile.Default())
	a.Profile.CompleteOnboarding()
	addHabit(t, a, "Read", 10, 0)
	a.Gamification.AddPoints(500, "seed")

	if err := a.Reset(); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if backups != 1 {
		t.Errorf("backups = %d, want 1", backups)
	}
	if a.Profile.Onboarded() || len(a.Habits.Habits()) != 0 {
		t.Error("stores not cleared")
	}
	if st := a.Gamification.State(); st.TotalPoints != 0 || st.Level != 1 || st.WeeklyChallenge != nil {
		t.Errorf("gamification after reset = %+v", st)
	}
	if keys, _ := provider.Keys(); len(keys) != 0 {
		t.Errorf("keys after reset = %v", keys)
	}
}

func TestResetStopsWhenBackupFails(t *testing.T) {
	a, _, _ := setupTestApp(t, Options{Backup: func() (string, error) { return "", errors.New("disk full") }})
	addHabit(t, a, "Read", 10, 0)
	if err := a.Reset(); err == nil {
		t.Fatal("expected error")
	}
	if len(a.Habits.Habits()) != 1 {
		t.Error("data should survive a failed backup")
	}
}

type stubCoach struct {
	reply string
	err   error
	ctx   coach.Context
}

func (s *stubCoach) Complete(_ context.Context, _ []coach.Message, c coach.Context) (string, error) {
	s.ctx = c
	return s.reply, s.err
}

func TestAskCoach(t *testing.T) {
	stub := &stubCoach{reply: "Try a 20 minute nap."}
	a, _, _ := setupTestApp(t, Options{Coach: stub})
	a.LogMood(models.MoodEntry{MoodScore: 4})

	reply, err := a.AskCoach(context.Background(), "I'm exhausted")
	if err != nil {
		t.Fatalf("AskCoach() failed: %v", err)
	}
	if reply.Role != models.RoleAssistant || reply.Content != stub.reply {
		t.Errorf("reply = %+v", reply)
	}
	if stub.ctx.TodayMood != 4 {
		t.Errorf("coach context mood = %d", stub.ctx.TodayMood)
	}
	session, ok := a.Chat.CurrentSession()
	if !ok || len(session.Messages) != 2 || session.Context.CurrentMood != 4 {
		t.Errorf("session = %+v", session)
	}
}

func TestAskCoachFallback(t *testing.T) {
	for name, opts := range map[string]Options{
		"failing coach": {Coach: &stubCoach{err: errors.New("offline")}},
		"no coach":      {},
	} {
		t.Run(name, func(t *testing.T) {
			a, _, _ := setupTestApp(t, opts)
			reply, err := a.AskCoach(context.Background(), "hello")
			if err != nil {
				t.Fatalf("AskCoach() failed: %v", err)
			}
			if reply.Content != constants.CoachFallbackMessage {
				t.Errorf("reply = %q", reply.Content)
			}
		})
	}
}
