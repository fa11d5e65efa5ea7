package profile

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/julianstephens/ripple/internal/cli"
	"github.com/julianstephens/ripple/internal/config"
	"github.com/julianstephens/ripple/internal/constants"
	profilestore "github.com/julianstephens/ripple/internal/profile"
)

func newOnboardedContext(t *testing.T) *cli.Context {
	t.Helper()
	cfg := config.Default(t.TempDir())
	cfg.Storage.Backend = constants.BackendMemory
	ctx, err := cli.NewContext(cfg, "", clockwork.NewFakeClockAt(time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local)), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := ctx.Open(); err != nil {
		t.Fatal(err)
	}
	p := profilestore.Default()
	p.Name = "Sam"
	if err := ctx.App.Onboard(p, nil); err != nil {
		t.Fatal(err)
	}
	return ctx
}

func TestProfileSet(t *testing.T) {
	ctx := newOnboardedContext(t)
	name, morning, bed := "Samira", 5, "22:30"
	if err := (&ProfileSetCmd{Name: &name, Morning: &morning, Bedtime: &bed}).Run(ctx); err != nil {
		t.Fatalf("set: %v", err)
	}
	u, _ := ctx.App.Profile.User()
	if u.Name != "Samira" || u.EnergyPattern.MorningEnergy != 5 || u.PreferredBedtime != "22:30" {
		t.Errorf("profile = %+v", u)
	}

	tooHigh, badTime := 9, "late"
	if err := (&ProfileSetCmd{Evening: &tooHigh}).Run(ctx); err == nil {
		t.Error("energy 9 should be rejected")
	}
	if err := (&ProfileSetCmd{Wake: &badTime}).Run(ctx); err == nil {
		t.Error("bad wake time should be rejected")
	}
	u, _ = ctx.App.Profile.User()
	if u.EnergyPattern.EveningEnergy != 3 {
		t.Errorf("rejected change leaked into the store: %+v", u.EnergyPattern)
	}
}

func TestGoals(t *testing.T) {
	ctx := newOnboardedContext(t)
	if err := (&GoalAddCmd{Title: "Run a 5k", Category: "health"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&GoalAddCmd{Title: "  ", Category: "health"}).Run(ctx); err == nil {
		t.Error("blank goal should be rejected")
	}
	u, _ := ctx.App.Profile.User()
	if len(u.Goals) != 1 {
		t.Fatalf("goals = %d, want 1", len(u.Goals))
	}
	id := u.Goals[0].ID

	if err := (&GoalDoneCmd{ID: id[:6]}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	u, _ = ctx.App.Profile.User()
	if !u.Goals[0].Completed {
		t.Error("goal not completed")
	}
	if err := (&GoalRemoveCmd{ID: id}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	u, _ = ctx.App.Profile.User()
	if len(u.Goals) != 0 {
		t.Error("goal not removed")
	}
}
