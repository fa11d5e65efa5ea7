package app

import (
	"github.com/julianstephens/ripple/internal/constants"
	"github.com/julianstephens/ripple/internal/logger"
	"github.com/julianstephens/ripple/internal/models"
)

// Event is a domain event that touches more than one store.
type Event interface {
	eventName() string
}

// HabitCompleted is raised when a habit's log for Date turns completed.
type HabitCompleted struct {
	HabitID string
	Date    string
	Points  int
}

// MoodLogged is raised after a mood entry is saved; New is false for a
// replacement of the day's entry.
type MoodLogged struct {
	Date string
	New  bool
}

// SleepLogged is raised after a sleep entry is saved.
type SleepLogged struct {
	Date string
	New  bool
}

func (HabitCompleted) eventName() string { return "habit-completed" }
func (MoodLogged) eventName() string     { return "mood-logged" }
func (SleepLogged) eventName() string    { return "sleep-logged" }

// Outcome reports what a dispatch changed in the gamification state.
type Outcome struct {
	Points          int
	ChallengeReward int
	Unlocked        []models.Achievement
}

// Dispatch applies every store update an event implies as one operation.
func (a *App) Dispatch(ev Event) (Outcome, error) {
	var out Outcome
	var errs []error

	switch e := ev.(type) {
	case HabitCompleted:
		out.Points = e.Points
		errs = append(errs, a.Gamification.AddPoints(e.Points, "habit completed: "+a.habitName(e.HabitID)))
		reward, err := a.Gamification.UpdateWeeklyChallenge(1)
		out.ChallengeReward = reward
		errs = append(errs, err)
	case MoodLogged:
		if e.New {
			out.Points = constants.MoodLogPoints
			errs = append(errs, a.Gamification.AddPoints(constants.MoodLogPoints, "mood logged"))
		}
	case SleepLogged:
		if e.New {
			out.Points = constants.SleepLogPoints
			errs = append(errs, a.Gamification.AddPoints(constants.SleepLogPoints, "sleep logged"))
		}
	}

	unlocked, err := a.evaluateAchievements(out.ChallengeReward > 0)
	out.Unlocked = unlocked
	errs = append(errs, err)

	log := logger.With("event", ev.eventName())
	for _, u := range unlocked {
		log.Info("achievement unlocked", "id", u.ID, "points", u.Points)
	}
	log.Debug("event dispatched", "points", out.Points, "challenge_reward", out.ChallengeReward)
	return out, joinErrs(errs...)
}

func (a *App) habitName(id string) string {
	if h, ok := a.Habits.Habit(id); ok {
		return h.Name
	}
	return id
}

// ToggleHabit flips the habit's completion on date and, when it turns
// completed, awards its points and advances the weekly challenge.
func (a *App) ToggleHabit(habitID, date string) (models.HabitLog, Outcome, error) {
	return a.logHabit(habitID, date, a.Habits.ToggleHabitCompletion)
}

func (a *App) IncrementHabit(habitID, date string) (models.HabitLog, Outcome, error) {
	return a.logHabit(habitID, date, a.Habits.IncrementHabitCount)
}

// DecrementHabit never awards anything; points already earned are kept.
func (a *App) DecrementHabit(habitID, date string) (models.HabitLog, Outcome, error) {
	return a.logHabit(habitID, date, a.Habits.DecrementHabitCount)
}

func (a *App) logHabit(habitID, date string, op func(string, string) (models.HabitLog, error)) (models.HabitLog, Outcome, error) {
	if date == "" {
		date = a.Today()
	}
	h, ok := a.Habits.Habit(habitID)
	if !ok {
		return models.HabitLog{}, Outcome{}, nil
	}

	before := a.Habits.IsCompletedOn(habitID, date)
	log, err := op(habitID, date)
	if before || !log.Completed {
		return log, Outcome{}, err
	}

	out, dispatchErr := a.Dispatch(HabitCompleted{HabitID: habitID, Date: date, Points: h.PointsPerCompletion})
	return log, out, joinErrs(err, dispatchErr)
}

// LogMood upserts the day's mood entry and awards points for a new day.
func (a *App) LogMood(e models.MoodEntry) (models.MoodEntry, Outcome, error) {
	saved, isNew, err := a.Mood.AddEntry(e)
	out, dispatchErr := a.Dispatch(MoodLogged{Date: saved.Date, New: isNew})
	return saved, out, joinErrs(err, dispatchErr)
}

// LogSleep upserts the night's sleep entry and awards points for a new night.
func (a *App) LogSleep(e models.SleepEntry) (models.SleepEntry, Outcome, error) {
	saved, isNew, err := a.Sleep.AddEntry(e)
	out, dispatchErr := a.Dispatch(SleepLogged{Date: saved.Date, New: isNew})
	return saved, out, joinErrs(err, dispatchErr)
}
