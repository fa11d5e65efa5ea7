package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/ripple/internal/constants"
	"github.com/julianstephens/ripple/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateSchedule:
		content = docStyle.Render(m.viewSchedule())
	case StateStats:
		content = docStyle.Render(m.viewStats())
	case StateCoach:
		content = docStyle.Render(m.viewCoach())
	case StateAddHabit:
		content = docStyle.Render(m.form.View())
	}

	status := ""
	if m.status != "" {
		status = successStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	active := m.state
	if active == StateAddHabit {
		active = StateToday
	}
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	p := m.app.Gamification.Progress()
	tabs = append(tabs, mutedStyle.Render(fmt.Sprintf("  Lv %d · %d pts", p.Level, m.app.Gamification.State().TotalPoints)))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	return docStyle.Render(m.habits.View())
}

func formatEvent(e models.CalendarEvent) string {
	when := "all day"
	if !e.AllDay {
		when = e.Start.Format(constants.DisplayTimeFormat) + " – " + e.End.Format(constants.DisplayTimeFormat)
	}
	mark := "•"
	if e.Completed {
		mark = "✓"
	}
	return fmt.Sprintf("%s %-19s %s", mark, when, e.Title)
}

func (m Model) viewSchedule() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Today") + "\n")
	today := m.app.Events.TodayEvents()
	if len(today) == 0 {
		b.WriteString(mutedStyle.Render("Nothing scheduled.") + "\n")
	}
	for _, e := range today {
		b.WriteString(formatEvent(e) + "\n")
	}

	b.WriteString("\n" + headingStyle.Render("Upcoming") + "\n")
	upcoming := m.app.Events.UpcomingEvents(constants.DefaultUpcomingLimit)
	if len(upcoming) == 0 {
		b.WriteString(mutedStyle.Render("No upcoming events.") + "\n")
	}
	for _, e := range upcoming {
		b.WriteString(e.Start.Format("Mon Jan 2") + "  " + formatEvent(e) + "\n")
	}
	if !m.app.Events.ClassEventsGenerated() && len(m.app.Profile.Classes()) > 0 {
		b.WriteString("\n" + warningStyle.Render("Class events have not been generated; run `ripple class sync`."))
	}
	return b.String()
}

func (m Model) viewStats() string {
	g := m.app.Gamification.State()
	p := m.app.Gamification.Progress()

	progress := fmt.Sprintf("Level %d\n%d/%d XP (%.0f%%)\nWeekly points: %d\nOverall streak: %d (best %d)\nAchievements: %d",
		p.Level, p.CurrentXP, p.XPToNext, p.PercentComplete, g.WeeklyPoints,
		g.CurrentOverallStreak, g.LongestOverallStreak, len(g.UnlockedAchievements))
	if c := g.WeeklyChallenge; c != nil {
		progress += fmt.Sprintf("\n\n%s\n%s\n%d/%d · +%d", c.Title, mutedStyle.Render(c.Description), min(c.CurrentValue, c.TargetValue), c.TargetValue, c.Reward)
	}

	wellness := "Mood: not logged today"
	if e, ok := m.app.Mood.TodayEntry(); ok {
		wellness = fmt.Sprintf("Mood: %s %d/10 · stress %d/10", e.MoodEmoji, e.MoodScore, e.StressLevel)
	}
	wellness += fmt.Sprintf("\n7-day mood avg: %.1f · streak %d", m.app.Mood.AverageMood(7), m.app.Mood.MoodStreak())

	s := m.app.Sleep.SleepStats()
	wellness += fmt.Sprintf("\n\nSleep avg: %dh%02dm · quality %.1f\nDebt: %dm · trend %s",
		s.AverageSleepDuration/60, s.AverageSleepDuration%60, s.AverageQuality, s.SleepDebt, s.WeeklyTrend)

	n := m.app.Nutrition.WeeklyStats()
	wellness += fmt.Sprintf("\n\nMeals today: %d · avg %.1f/day\nWater avg: %.1f · consistency %d%%",
		len(m.app.Nutrition.TodayMeals()), n.AvgMealsPerDay, n.AvgWater, n.Consistency)
	if missing := m.app.Nutrition.MissingMeals(m.app.Today()); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, mt := range missing {
			names[i] = string(mt)
		}
		wellness += "\n" + warningStyle.Render("Missing: "+strings.Join(names, ", "))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(headingStyle.Render("Progress")+"\n"+progress),
		panelStyle.Render(headingStyle.Render("Wellness")+"\n"+wellness),
	)
}

func (m Model) viewCoach() string {
	prompt := m.input.View()
	if m.waiting {
		prompt = m.spinner.View() + " Coach is thinking…"
	}
	header := headingStyle.Render("Coach")
	if u, ok := m.app.Profile.User(); ok && u.Name != "" {
		header = headingStyle.Render("Coach · hi " + u.Name)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, m.chat.View(), prompt)
}
