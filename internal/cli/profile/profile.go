package profile

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ripple/internal/cli"
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/validation"
)

type ProfileCmd struct {
	Show ProfileShowCmd `cmd:"" default:"1" help:"Show your profile."`
	Set  ProfileSetCmd  `cmd:"" help:"Change profile fields."`
}

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *cli.Context) error {
	u, ok := ctx.App.Profile.User()
	if !ok {
		fmt.Println("No profile yet. Run 'ripple onboard'.")
		return nil
	}
	fmt.Printf("Name:       %s\n", u.Name)
	if u.Major != "" {
		fmt.Printf("Major:      %s (%s)\n", u.Major, u.YearInSchool)
	}
	fmt.Printf("Sleep:      %s - %s\n", u.PreferredBedtime, u.PreferredWakeTime)
	e := u.EnergyPattern
	fmt.Printf("Energy:     morning %d/5, afternoon %d/5, evening %d/5 (peak: %s)\n",
		e.MorningEnergy, e.AfternoonEnergy, e.EveningEnergy, e.PeakProductivityTime)
	if len(u.CurrentChallenges) > 0 {
		fmt.Printf("Challenges: %s\n", strings.Join(u.CurrentChallenges, ", "))
	}
	fmt.Printf("Classes:    %d\n", len(u.Classes))
	done := 0
	for _, g := range u.Goals {
		if g.Completed {
			done++
		}
	}
	fmt.Printf("Goals:      %d/%d complete\n", done, len(u.Goals))
	return nil
}

type ProfileSetCmd struct {
	Name       *string  `help:"Name."`
	Major      *string  `help:"Field of study."`
	Year       *string  `help:"Year in school." enum:"freshman,sophomore,junior,senior,graduate"`
	Bedtime    *string  `help:"Usual bedtime (HH:MM)."`
	Wake       *string  `help:"Usual wake time (HH:MM)."`
	Peak       *string  `help:"Most productive time." enum:"early-morning,morning,afternoon,evening,night"`
	Morning    *int     `help:"Morning energy (1-5)."`
	Afternoon  *int     `help:"Afternoon energy (1-5)."`
	Evening    *int     `help:"Evening energy (1-5)."`
	Challenges []string `help:"Replace current challenges (comma-separated)."`
}

func (c *ProfileSetCmd) Run(ctx *cli.Context) error {
	u, ok := ctx.App.Profile.User()
	if !ok {
		return fmt.Errorf("no profile yet; run 'ripple onboard' first")
	}
	apply := func(p *models.UserProfile) {
		if c.Name != nil {
			p.Name = strings.TrimSpace(*c.Name)
		}
		if c.Major != nil {
			p.Major = *c.Major
		}
		if c.Year != nil {
			p.YearInSchool = models.YearInSchool(*c.Year)
		}
		if c.Bedtime != nil {
			p.PreferredBedtime = *c.Bedtime
		}
		if c.Wake != nil {
			p.PreferredWakeTime = *c.Wake
		}
		if c.Peak != nil {
			p.EnergyPattern.PeakProductivityTime = models.PeakTime(*c.Peak)
		}
		if c.Morning != nil {
			p.EnergyPattern.MorningEnergy = *c.Morning
		}
		if c.Afternoon != nil {
			p.EnergyPattern.AfternoonEnergy = *c.Afternoon
		}
		if c.Evening != nil {
			p.EnergyPattern.EveningEnergy = *c.Evening
		}
		if c.Challenges != nil {
			p.CurrentChallenges = c.Challenges
		}
	}

	// Validate a copy before touching the store
	apply(&u)
	if err := validation.Profile(u); err != nil {
		return err
	}
	if err := ctx.App.Profile.UpdateUser(apply); err != nil {
		return err
	}
	fmt.Println("✓ Profile updated")
	return nil
}

type GoalCmd struct {
	Add    GoalAddCmd    `cmd:"" help:"Add a goal."`
	List   GoalListCmd   `cmd:"" help:"List goals."`
	Done   GoalDoneCmd   `cmd:"" help:"Toggle a goal's completion."`
	Remove GoalRemoveCmd `cmd:"" help:"Remove a goal."`
}

type GoalAddCmd struct {
	Title    string `arg:"" help:"What you want to achieve."`
	Category string `help:"Category." enum:"academic,health,social,career,personal" default:"personal"`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.App.RequireOnboarded(); err != nil {
		return err
	}
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return validation.Error{Field: "title", Message: "is required"}
	}
	g, err := ctx.App.Profile.AddGoal(models.GoalCategory(c.Category), title)
	if err != nil {
		return err
	}
	fmt.Printf("Added %s goal %s: %s\n", g.Category, cli.ShortID(g.ID), g.Title)
	return nil
}

type GoalListCmd struct{}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	u, _ := ctx.App.Profile.User()
	if len(u.Goals) == 0 {
		fmt.Println("No goals yet.")
		return nil
	}
	for _, g := range u.Goals {
		mark := "[ ]"
		if g.Completed {
			mark = "[✓]"
		}
		fmt.Printf("  %s %s  %-9s %s\n", mark, cli.ShortID(g.ID), g.Category, g.Title)
	}
	return nil
}

func findGoal(ctx *cli.Context, ref string) (models.UserGoal, error) {
	u, _ := ctx.App.Profile.User()
	ids := make([]string, len(u.Goals))
	for i, g := range u.Goals {
		ids[i] = g.ID
	}
	id, err := cli.MatchID(ref, ids)
	if err != nil {
		return models.UserGoal{}, err
	}
	for _, g := range u.Goals {
		if g.ID == id {
			return g, nil
		}
	}
	return models.UserGoal{}, fmt.Errorf("goal %q not found", ref)
}

type GoalDoneCmd struct {
	ID string `arg:"" help:"Goal id or unique prefix."`
}

func (c *GoalDoneCmd) Run(ctx *cli.Context) error {
	g, err := findGoal(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.App.Profile.ToggleGoalComplete(g.ID); err != nil {
		return err
	}
	if g.Completed {
		fmt.Printf("Reopened: %s\n", g.Title)
	} else {
		fmt.Printf("Completed: %s\n", g.Title)
	}
	return nil
}

type GoalRemoveCmd struct {
	ID string `arg:"" help:"Goal id or unique prefix."`
}

func (c *GoalRemoveCmd) Run(ctx *cli.Context) error {
	g, err := findGoal(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.App.Profile.RemoveGoal(g.ID); err != nil {
		return err
	}
	fmt.Printf("Removed goal: %s\n", g.Title)
	return nil
}
