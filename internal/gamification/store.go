package gamification

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/jonboulle/clockwork"

	"github.com/julianstephens/ripple/internal/constants"
	"github.com/julianstephens/ripple/internal/logger"
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/storage"
	"github.com/julianstephens/ripple/internal/utils"
)

// historyLimit caps the award ledger kept in state.
const historyLimit = 100

// Store tracks points, levels, the weekly challenge, achievements and the
// overall all-habits streak.
type Store struct {
	provider storage.Provider
	clock    clockwork.Clock
	pick     func(n int) int
	state    models.GamificationState
}

type Option func(*Store)

// WithPicker replaces the random catalog draw, for deterministic tests.
func WithPicker(pick func(n int) int) Option {
	return func(s *Store) { s.pick = pick }
}

func NewStore(provider storage.Provider, clock clockwork.Clock, opts ...Option) *Store {
	s := &Store{
		provider: provider,
		clock:    clock,
		pick:     rand.IntN,
		state:    initialState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func initialState() models.GamificationState {
	return models.GamificationState{
		Level:                 1,
		ExperienceToNextLevel: ExperienceToNextLevel(0),
	}
}

func (s *Store) Load() error {
	s.state = initialState()
	if _, err := s.provider.Get(constants.KeyGamification, &s.state); err != nil {
		return fmt.Errorf("failed to load gamification state: %w", err)
	}
	return nil
}

func (s *Store) persist(op, id string) error {
	logger.Debug("gamification store mutation", "op", op, "id", id)
	if err := s.provider.Put(constants.KeyGamification, s.state); err != nil {
		logger.Warn("failed to persist gamification state", "op", op, "error", err)
		return fmt.Errorf("failed to save gamification state: %w", err)
	}
	return nil
}

// AddPoints credits amount to the lifetime and weekly totals and recomputes the level.
func (s *Store) AddPoints(amount int, reason string) error {
	s.award(amount, reason)
	return s.persist("add-points", reason)
}

func (s *Store) award(amount int, reason string) {
	before := s.state.Level
	s.state.TotalPoints += amount
	s.state.WeeklyPoints += amount
	s.state.Level = Level(s.state.TotalPoints)
	s.state.ExperienceToNextLevel = ExperienceToNextLevel(s.state.TotalPoints)

	s.state.History = append(s.state.History, models.PointAward{
		Amount:    amount,
		Reason:    reason,
		AwardedAt: s.clock.Now(),
	})
	if n := len(s.state.History); n > historyLimit {
		s.state.History = s.state.History[n-historyLimit:]
	}

	logger.Info("points awarded", "amount", amount, "reason", reason, "total", s.state.TotalPoints)
	if s.state.Level > before {
		logger.Info("level up", "level", s.state.Level)
	}
}

// UnlockAchievement records id once. The bool reports a first unlock.
func (s *Store) UnlockAchievement(id string) (bool, error) {
	if s.HasAchievement(id) {
		return false, nil
	}
	s.state.UnlockedAchievements = append(s.state.UnlockedAchievements, id)
	return true, s.persist("unlock", id)
}

func (s *Store) HasAchievement(id string) bool {
	return slices.Contains(s.state.UnlockedAchievements, id)
}

// UpdateWeeklyChallenge adds progress to the active challenge. The reward is
// paid only by the update that moves the value from below the target to at
// or above it; the returned int is the points paid by this call.
func (s *Store) UpdateWeeklyChallenge(progress int) (int, error) {
	c := s.state.WeeklyChallenge
	if c == nil {
		return 0, nil
	}
	wasComplete := c.IsComplete()
	c.CurrentValue += progress

	awarded := 0
	if !wasComplete && c.IsComplete() {
		awarded = c.Reward
		s.award(c.Reward, "weekly challenge: "+c.Title)
	}
	return awarded, s.persist("challenge-progress", c.ID)
}

// GenerateWeeklyChallenge replaces the current challenge with a random
// catalog entry expiring at the end of this Sunday-to-Saturday week.
func (s *Store) GenerateWeeklyChallenge() (models.WeeklyChallenge, error) {
	tpl := WeeklyChallenges[s.pick(len(WeeklyChallenges))]
	c := models.WeeklyChallenge{
		ID:          tpl.ID,
		Title:       tpl.Title,
		Description: tpl.Description,
		TargetValue: tpl.TargetValue,
		Reward:      tpl.Reward,
		ExpiresAt:   utils.StartOfWeek(s.clock.Now()).AddDate(0, 0, 7),
	}
	s.state.WeeklyChallenge = &c
	return c, s.persist("generate-challenge", c.ID)
}

// ChallengeExpired is true when there is no challenge or its expiry has passed.
func (s *Store) ChallengeExpired() bool {
	c := s.state.WeeklyChallenge
	return c == nil || !s.clock.Now().Before(c.ExpiresAt)
}

// UpdateOverallStreak extends the all-habits streak on true and resets it on false.
func (s *Store) UpdateOverallStreak(allHabitsCompleted bool) error {
	s.applyStreak(allHabitsCompleted)
	return s.persist("overall-streak", "")
}

func (s *Store) applyStreak(allHabitsCompleted bool) {
	if !allHabitsCompleted {
		s.state.CurrentOverallStreak = 0
		return
	}
	s.state.CurrentOverallStreak++
	s.state.LongestOverallStreak = max(s.state.LongestOverallStreak, s.state.CurrentOverallStreak)
}

// RecordDay feeds one day's all-habits result into the overall streak.
// Days at or before the last recorded one are ignored, so closing the same
// day twice counts once. The bool reports whether the day was applied.
func (s *Store) RecordDay(date string, allHabitsCompleted bool) (bool, error) {
	if s.state.LastStreakCheck != "" && date <= s.state.LastStreakCheck {
		return false, nil
	}
	s.applyStreak(allHabitsCompleted)
	s.state.LastStreakCheck = date
	return true, s.persist("record-day", date)
}

func (s *Store) ResetWeeklyPoints() error {
	s.state.WeeklyPoints = 0
	return s.persist("reset-weekly", "")
}

func (s *Store) Progress() models.LevelProgress {
	return Progress(s.state.TotalPoints)
}

// State returns a copy of the current state.
func (s *Store) State() models.GamificationState {
	st := s.state
	st.UnlockedAchievements = slices.Clone(s.state.UnlockedAchievements)
	st.History = slices.Clone(s.state.History)
	if c := s.state.WeeklyChallenge; c != nil {
		cc := *c
		st.WeeklyChallenge = &cc
	}
	return st
}

// LastStreakCheck is the most recent day fed to RecordDay.
func (s *Store) LastStreakCheck() string {
	return s.state.LastStreakCheck
}

