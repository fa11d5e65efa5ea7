package profile

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/julianstephens/ripple/internal/constants"
	"github.com/julianstephens/ripple/internal/logger"
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/storage"
)

// ClassColors are handed out in order to classes added without a color.
var ClassColors = []string{"#3b82f6", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6", "#ec4899"}

// Default returns an empty profile with the starting preferences.
func Default() models.UserProfile {
	return models.UserProfile{
		YearInSchool:      models.YearFreshman,
		PreferredBedtime:  "23:00",
		PreferredWakeTime: "07:00",
		Classes:           []models.ClassSchedule{},
		Goals:             []models.UserGoal{},
		EnergyPattern: models.EnergyPattern{
			MorningEnergy:        3,
			AfternoonEnergy:      3,
			EveningEnergy:        3,
			PeakProductivityTime: models.PeakMorning,
		},
		CurrentChallenges: []string{},
	}
}

// Store holds the single user profile, or nothing before onboarding starts.
// Every mutation other than SetUser is a no-op while there is no profile.
type Store struct {
	provider storage.Provider
	clock    clockwork.Clock
	user     *models.UserProfile
}

func NewStore(provider storage.Provider, clock clockwork.Clock) *Store {
	return &Store{provider: provider, clock: clock}
}

func (s *Store) Load() error {
	var u models.UserProfile
	found, err := s.provider.Get(constants.KeyUserProfile, &u)
	if err != nil {
		return fmt.Errorf("failed to load user profile: %w", err)
	}
	s.user = nil
	if found && u.ID != "" {
		s.user = &u
	}
	return nil
}

func (s *Store) persist(op, id string) error {
	logger.Debug("profile store mutation", "op", op, "id", id)
	var err error
	if s.user == nil {
		err = s.provider.Delete(constants.KeyUserProfile)
	} else {
		err = s.provider.Put(constants.KeyUserProfile, s.user)
	}
	if err != nil {
		logger.Warn("failed to persist user profile", "op", op, "error", err)
		return fmt.Errorf("failed to save user profile: %w", err)
	}
	return nil
}

// SetUser replaces the profile, filling in an id and timestamps when absent.
func (s *Store) SetUser(u models.UserProfile) (models.UserProfile, error) {
	now := s.clock.Now()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	for i := range u.Classes {
		s.fillClass(&u.Classes[i], i)
	}
	s.user = &u
	return u, s.persist("set", u.ID)
}

func (s *Store) UpdateUser(fn func(*models.UserProfile)) error {
	return s.mutate("update", func(u *models.UserProfile) {
		id, created := u.ID, u.CreatedAt
		fn(u)
		u.ID, u.CreatedAt = id, created
	})
}

func (s *Store) CompleteOnboarding() error {
	return s.mutate("complete-onboarding", func(u *models.UserProfile) {
		u.OnboardingCompleted = true
	})
}

// AddClass assigns an id and, when c has no color, the next palette color.
func (s *Store) AddClass(c models.ClassSchedule) (models.ClassSchedule, error) {
	if s.user == nil {
		return models.ClassSchedule{}, nil
	}
	c.ID = ""
	s.fillClass(&c, len(s.user.Classes))
	err := s.mutate("add-class", func(u *models.UserProfile) {
		u.Classes = append(u.Classes, c)
	})
	return c, err
}

func (s *Store) fillClass(c *models.ClassSchedule, position int) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Color == "" {
		c.Color = ClassColors[position%len(ClassColors)]
	}
}

func (s *Store) UpdateClass(id string, fn func(*models.ClassSchedule)) error {
	if s.user == nil || classIndex(s.user.Classes, id) < 0 {
		return nil
	}
	return s.mutate("update-class", func(u *models.UserProfile) {
		c := &u.Classes[classIndex(u.Classes, id)]
		fn(c)
		c.ID = id
	})
}

func (s *Store) RemoveClass(id string) error {
	if s.user == nil || classIndex(s.user.Classes, id) < 0 {
		return nil
	}
	return s.mutate("remove-class", func(u *models.UserProfile) {
		i := classIndex(u.Classes, id)
		u.Classes = append(u.Classes[:i], u.Classes[i+1:]...)
	})
}

func classIndex(classes []models.ClassSchedule, id string) int {
	for i := range classes {
		if classes[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) AddGoal(category models.GoalCategory, title string) (models.UserGoal, error) {
	if s.user == nil {
		return models.UserGoal{}, nil
	}
	g := models.UserGoal{ID: uuid.NewString(), Category: category, Title: title}
	err := s.mutate("add-goal", func(u *models.UserProfile) {
		u.Goals = append(u.Goals, g)
	})
	return g, err
}

func (s *Store) RemoveGoal(id string) error {
	if s.user == nil || goalIndex(s.user.Goals, id) < 0 {
		return nil
	}
	return s.mutate("remove-goal", func(u *models.UserProfile) {
		i := goalIndex(u.Goals, id)
		u.Goals = append(u.Goals[:i], u.Goals[i+1:]...)
	})
}

func (s *Store) ToggleGoalComplete(id string) error {
	if s.user == nil || goalIndex(s.user.Goals, id) < 0 {
		return nil
	}
	return s.mutate("toggle-goal", func(u *models.UserProfile) {
		g := &u.Goals[goalIndex(u.Goals, id)]
		g.Completed = !g.Completed
	})
}

func goalIndex(goals []models.UserGoal, id string) int {
	for i := range goals {
		if goals[i].ID == id {
			return i
		}
	}
	return -1
}

// Reset forgets the profile, returning to the pre-onboarding state.
func (s *Store) Reset() error {
	s.user = nil
	return s.persist("reset", "")
}

func (s *Store) mutate(op string, fn func(*models.UserProfile)) error {
	if s.user == nil {
		return nil
	}
	fn(s.user)
	s.user.UpdatedAt = s.clock.Now()
	return s.persist(op, s.user.ID)
}

// User returns a copy of the profile.
func (s *Store) User() (models.UserProfile, bool) {
	if s.user == nil {
		return models.UserProfile{}, false
	}
	u := *s.user
	u.Classes = append([]models.ClassSchedule(nil), s.user.Classes...)
	u.Goals = append([]models.UserGoal(nil), s.user.Goals...)
	u.CurrentChallenges = append([]string(nil), s.user.CurrentChallenges...)
	return u, true
}

func (s *Store) Classes() []models.ClassSchedule {
	if s.user == nil {
		return nil
	}
	return append([]models.ClassSchedule(nil), s.user.Classes...)
}

// Onboarded reports whether a profile exists and finished onboarding.
func (s *Store) Onboarded() bool {
	return s.user != nil && s.user.OnboardingCompleted
}
