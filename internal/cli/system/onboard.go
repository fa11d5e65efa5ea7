package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/ripple/internal/cli"
	"github.com/julianstephens/ripple/internal/habits"
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/tui"
	"github.com/julianstephens/ripple/internal/validation"
)

// OnboardCmd runs the first-run questionnaire. Passing --name skips the form.
type OnboardCmd struct {
	Name       string   `help:"Your name; skips the interactive form."`
	Major      string   `help:"Field of study."`
	Year       string   `help:"Year in school." enum:"freshman,sophomore,junior,senior,graduate" default:"freshman"`
	Bedtime    string   `help:"Usual bedtime (HH:MM)." default:"23:00"`
	Wake       string   `help:"Usual wake time (HH:MM)." default:"07:00"`
	Peak       string   `help:"Most productive time of day." enum:"early-morning,morning,afternoon,evening,night" default:"morning"`
	Challenges []string `help:"Current challenges (comma-separated)."`
	Habits     []string `help:"Prebuilt habits to start with (comma-separated)." default:"Drink Water,Exercise"`
}

func (c *OnboardCmd) Run(ctx *cli.Context) error {
	if ctx.App.Profile.Onboarded() {
		return errors.New("already onboarded; use 'ripple profile' to make changes or 'ripple reset' to start over")
	}

	fm := tui.NewOnboardingFormModel()
	if c.Name == "" {
		if err := tui.NewOnboardingForm(fm).Run(); err != nil {
			return fmt.Errorf("onboarding cancelled: %w", err)
		}
	} else {
		fm.Name = c.Name
		fm.Major = c.Major
		fm.Year = models.YearInSchool(c.Year)
		fm.Bedtime = c.Bedtime
		fm.WakeTime = c.Wake
		fm.Peak = models.PeakTime(c.Peak)
		fm.Challenges = c.Challenges
		fm.Habits = c.Habits
	}

	p := fm.Profile()
	if err := validation.Profile(p); err != nil {
		return err
	}
	for _, name := range fm.Habits {
		if _, ok := habits.PrebuiltByName(name); !ok {
			return fmt.Errorf("unknown prebuilt habit %q; see 'ripple habit prebuilt'", name)
		}
	}

	if err := ctx.App.Onboard(p, fm.Habits); err != nil {
		return err
	}
	ch := ctx.App.Gamification.State().WeeklyChallenge
	fmt.Printf("✓ Welcome, %s! Tracking %d habit(s).\n", p.Name, len(ctx.App.Habits.ActiveHabits()))
	if ch != nil {
		fmt.Printf("  This week's challenge: %s (%s)\n", ch.Title, ch.Description)
	}
	fmt.Println("  Add your classes with 'ripple class add', then open the dashboard with 'ripple'.")
	return nil
}
