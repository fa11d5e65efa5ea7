package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/julianstephens/ripple/internal/chat"
	"github.com/julianstephens/ripple/internal/coach"
	"github.com/julianstephens/ripple/internal/constants"
	rerrors "github.com/julianstephens/ripple/internal/errors"
	"github.com/julianstephens/ripple/internal/events"
	"github.com/julianstephens/ripple/internal/gamification"
	"github.com/julianstephens/ripple/internal/habits"
	"github.com/julianstephens/ripple/internal/logger"
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/mood"
	"github.com/julianstephens/ripple/internal/nutrition"
	"github.com/julianstephens/ripple/internal/profile"
	"github.com/julianstephens/ripple/internal/sleep"
	"github.com/julianstephens/ripple/internal/storage"
	"github.com/julianstephens/ripple/internal/utils"
)

type Options struct {
	// WeeksAhead is how many weeks of class events a sync materializes
	WeeksAhead int
	// Coach answers chat messages; nil means every message gets the fallback reply
	Coach coach.Completer
	// Backup snapshots durable state before a reset; nil skips the snapshot
	Backup func() (string, error)
	// Picker overrides the weekly challenge draw
	Picker func(n int) int
}

// App owns every store and is the only place cross-store rules live.
type App struct {
	provider storage.Provider
	clock    clockwork.Clock
	opts     Options

	Habits       *habits.Store
	Mood         *mood.Store
	Sleep        *sleep.Store
	Nutrition    *nutrition.Store
	Events       *events.Store
	Gamification *gamification.Store
	Chat         *chat.Store
	Profile      *profile.Store
}

func New(provider storage.Provider, clock clockwork.Clock, opts Options) *App {
	if opts.WeeksAhead <= 0 {
		opts.WeeksAhead = constants.DefaultWeeksAhead
	}
	var gopts []gamification.Option
	if opts.Picker != nil {
		gopts = append(gopts, gamification.WithPicker(opts.Picker))
	}
	return &App{
		provider:     provider,
		clock:        clock,
		opts:         opts,
		Habits:       habits.NewStore(provider, clock),
		Mood:         mood.NewStore(provider, clock),
		Sleep:        sleep.NewStore(provider, clock),
		Nutrition:    nutrition.NewStore(provider, clock),
		Events:       events.NewStore(provider, clock),
		Gamification: gamification.NewStore(provider, clock, gopts...),
		Chat:         chat.NewStore(provider, clock),
		Profile:      profile.NewStore(provider, clock),
	}
}

type loader interface{ Load() error }

func (a *App) stores() []loader {
	return []loader{a.Profile, a.Habits, a.Mood, a.Sleep, a.Nutrition, a.Events, a.Gamification, a.Chat}
}

// Load reads every store's state from the provider once.
func (a *App) Load() error {
	for _, s := range a.stores() {
		if err := s.Load(); err != nil {
			return err
		}
	}
	logger.Debug("stores loaded", "provider", a.provider.GetConfigPath())
	return nil
}

func (a *App) Clock() clockwork.Clock {
	return a.clock
}

func (a *App) Today() string {
	return utils.Today(a.clock)
}

// RequireOnboarded fails with ErrNotOnboarded until onboarding has completed.
func (a *App) RequireOnboarded() error {
	if !a.Profile.Onboarded() {
		return rerrors.ErrNotOnboarded
	}
	return nil
}

// Onboard saves the profile, seeds the chosen prebuilt habits, draws the
// first weekly challenge, generates class events and marks onboarding done.
func (a *App) Onboard(p models.UserProfile, habitNames []string) error {
	if _, err := a.Profile.SetUser(p); err != nil {
		return err
	}
	for _, name := range habitNames {
		if _, _, err := a.Habits.AddPrebuilt(name); err != nil {
			return err
		}
	}
	if _, err := a.Gamification.GenerateWeeklyChallenge(); err != nil {
		return err
	}
	if _, err := a.SyncClasses(); err != nil {
		return err
	}
	if err := a.Profile.CompleteOnboarding(); err != nil {
		return err
	}
	logger.Info("onboarding completed", "habits", len(habitNames))
	return nil
}

// SyncClasses regenerates class events from the profile's schedule.
func (a *App) SyncClasses() (int, error) {
	return a.Events.SyncClassesFromSchedule(a.Profile.Classes(), a.opts.WeeksAhead)
}

// CoachContext snapshots today's state for the coach.
func (a *App) CoachContext() coach.Context {
	return coach.BuildContext(coach.Sources{
		Profile: a.Profile,
		Mood:    a.Mood,
		Sleep:   a.Sleep,
		Events:  a.Events,
		Meals:   a.Nutrition,
		Energy:  a.Chat,
	}, a.clock)
}

// AskCoach records text in the current session (starting one when needed),
// asks the coach and records the reply. A failed request still records the
// fallback reply; the returned error is only about persistence.
func (a *App) AskCoach(ctx context.Context, text string) (models.ChatMessage, error) {
	session, ok := a.Chat.CurrentSession()
	if !ok {
		mood := 0
		if e, found := a.Mood.TodayEntry(); found {
			mood = e.MoodScore
		}
		var err error
		if session, err = a.Chat.CreateSession(mood); err != nil {
			return models.ChatMessage{}, err
		}
	}
	if _, err := a.Chat.AddMessage(session.ID, models.ChatMessage{Role: models.RoleUser, Content: text}); err != nil {
		return models.ChatMessage{}, err
	}

	reply := constants.CoachFallbackMessage
	if a.opts.Coach != nil {
		current, _ := a.Chat.CurrentSession()
		reply, _ = coach.Reply(ctx, a.opts.Coach, current.Messages, a.CoachContext())
	} else {
		logger.Warn("coach not configured")
	}
	return a.Chat.AddMessage(session.ID, models.ChatMessage{Role: models.RoleAssistant, Content: reply})
}

// Reset snapshots durable state, clears every key and reloads the stores,
// leaving the app in its pre-onboarding state.
func (a *App) Reset() error {
	if a.opts.Backup != nil {
		path, err := a.opts.Backup()
		if err != nil {
			return fmt.Errorf("failed to back up before reset: %w", err)
		}
		logger.Info("backup taken before reset", "path", path)
	}
	if err := a.provider.Clear(); err != nil {
		return fmt.Errorf("failed to clear storage: %w", err)
	}
	if err := a.Load(); err != nil {
		return err
	}
	logger.Info("all data reset")
	return nil
}

// joinErrs keeps every persistence failure from a multi-store operation.
func joinErrs(errs ...error) error {
	return errors.Join(errs...)
}
