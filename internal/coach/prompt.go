package coach

import (
	"fmt"
	"strings"
)

// SystemPrompt renders the coaching instructions with the user's context.
func SystemPrompt(c Context) string {
	var sb strings.Builder
	sb.WriteString("You are Ripple, an evidence-based wellbeing and productivity coach for college students.\n")
	sb.WriteString("Your advice draws on sleep research, cognitive science and behavioral psychology.\n\n")

	sb.WriteString("## Current user context\n")
	fmt.Fprintf(&sb, "- Name: %s\n", orDefault(c.Name, "Student"))
	fmt.Fprintf(&sb, "- Major: %s\n", orDefault(c.Major, "Not specified"))
	fmt.Fprintf(&sb, "- Year: %s\n", orDefault(string(c.YearInSchool), "Not specified"))
	fmt.Fprintf(&sb, "- Peak productivity time: %s\n", orDefault(string(c.PeakProductivityTime), "Not specified"))
	fmt.Fprintf(&sb, "- Current challenges: %s\n", orDefault(strings.Join(c.CurrentChallenges, ", "), "None specified"))
	if c.TodayMood > 0 {
		fmt.Fprintf(&sb, "- Today's mood score: %d/10\n", c.TodayMood)
	} else {
		sb.WriteString("- Today's mood score: Not logged\n")
	}
	if c.LastSleepHours > 0 {
		fmt.Fprintf(&sb, "- Last night's sleep: %g hours\n", c.LastSleepHours)
	} else {
		sb.WriteString("- Last night's sleep: Not logged\n")
	}
	fmt.Fprintf(&sb, "- Current energy level: %s\n", orDefault(string(c.CurrentEnergy), "normal"))

	events := make([]string, 0, len(c.TodayEvents))
	for _, e := range c.TodayEvents {
		events = append(events, e.Time+": "+e.Title)
	}
	fmt.Fprintf(&sb, "- Today's schedule: %s\n", orDefault(strings.Join(events, ", "), "No events"))
	fmt.Fprintf(&sb, "- Meals logged today: %d\n\n", c.MealsLoggedToday)

	sb.WriteString("## Guidelines\n")
	sb.WriteString("1. Keep answers to two to four sentences unless asked for more.\n")
	sb.WriteString("2. Consider circadian rhythm when suggesting study times.\n")
	sb.WriteString("3. Prefer sustainable habits over short-term hacks.\n")
	sb.WriteString("4. Acknowledge stress before giving advice.\n")
	return sb.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
