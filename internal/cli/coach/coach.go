package coach

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/julianstephens/ripple/internal/cli"
	"github.com/julianstephens/ripple/internal/models"
)

type CoachCmd struct {
	Ask     CoachAskCmd     `cmd:"" default:"withargs" help:"Ask the coach something."`
	History CoachHistoryCmd `cmd:"" help:"Show the current conversation."`
	New     CoachNewCmd     `cmd:"" help:"Start a fresh conversation."`
	Clear   CoachClearCmd   `cmd:"" help:"Clear the current conversation."`
	Energy  CoachEnergyCmd  `cmd:"" help:"Tell the coach how energetic you feel."`
}

type CoachAskCmd struct {
	Message []string `arg:"" help:"Your message."`
}

func (c *CoachAskCmd) Run(ctx *cli.Context) error {
	text := strings.TrimSpace(strings.Join(c.Message, " "))
	if text == "" {
		return errors.New("message is empty")
	}
	rctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if ctx.Config.Coach.Timeout > 0 {
		var cancel context.CancelFunc
		rctx, cancel = context.WithTimeout(rctx, ctx.Config.Coach.Timeout)
		defer cancel()
	}

	reply, err := ctx.App.AskCoach(rctx, text)
	if err != nil {
		return err
	}
	fmt.Println(reply.Content)
	return nil
}

type CoachHistoryCmd struct {
	Limit int `help:"Number of messages to show (0 for all)." default:"0"`
}

func (c *CoachHistoryCmd) Run(ctx *cli.Context) error {
	session, ok := ctx.App.Chat.CurrentSession()
	if !ok || len(session.Messages) == 0 {
		fmt.Println("No conversation yet. Try 'ripple coach ask'.")
		return nil
	}
	msgs := session.Messages
	if c.Limit > 0 {
		msgs = ctx.App.Chat.RecentMessages(c.Limit)
	}
	loc := ctx.Clock.Now().Location()
	for _, m := range msgs {
		who := "You"
		if m.Role == models.RoleAssistant {
			who = "Coach"
		}
		fmt.Printf("[%s] %s: %s\n", m.CreatedAt.In(loc).Format("Jan 2 15:04"), who, m.Content)
	}
	return nil
}

type CoachNewCmd struct{}

func (c *CoachNewCmd) Run(ctx *cli.Context) error {
	mood := 0
	if e, ok := ctx.App.Mood.TodayEntry(); ok {
		mood = e.MoodScore
	}
	s, err := ctx.App.Chat.CreateSession(mood)
	if err != nil {
		return err
	}
	fmt.Printf("Started conversation %s\n", cli.ShortID(s.ID))
	return nil
}

type CoachClearCmd struct{}

func (c *CoachClearCmd) Run(ctx *cli.Context) error {
	session, ok := ctx.App.Chat.CurrentSession()
	if !ok {
		fmt.Println("No conversation to clear.")
		return nil
	}
	if err := ctx.App.Chat.ClearSession(session.ID); err != nil {
		return err
	}
	fmt.Println("✓ Conversation cleared")
	return nil
}

type CoachEnergyCmd struct {
	Level string `arg:"" optional:"" help:"tired, normal or energized; omit to show the current level."`
}

func (c *CoachEnergyCmd) Run(ctx *cli.Context) error {
	if c.Level == "" {
		level := ctx.App.Chat.EnergyLevel()
		if level == "" {
			level = models.EnergyNormal
		}
		fmt.Printf("Energy: %s\n", level)
		return nil
	}
	level := models.EnergyState(strings.ToLower(c.Level))
	switch level {
	case models.EnergyTired, models.EnergyNormal, models.EnergyEnergized:
	default:
		return fmt.Errorf("invalid energy level %q (expected tired, normal or energized)", c.Level)
	}
	if err := ctx.App.Chat.SetEnergyLevel(level); err != nil {
		return err
	}
	fmt.Printf("✓ Energy set to %s\n", level)
	return nil
}
