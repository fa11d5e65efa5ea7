package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/ripple/internal/app"
	"github.com/julianstephens/ripple/internal/logger"
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/tui/components/habitlist"
	"github.com/julianstephens/ripple/internal/validation"
)

const tabCount = 4

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.habits.SetSize(msg.Width-4, msg.Height-6)
		m.chat.Width = msg.Width - 4
		m.chat.Height = msg.Height - 9
		m.input.Width = msg.Width - 8
		m.chat.SetContent(m.renderTranscript())
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case coachReplyMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = "Failed to save chat: " + msg.err.Error()
		}
		m.refresh()
		return m, nil
	}

	if m.state == StateAddHabit {
		return m, m.updateAddHabit(msg)
	}
	if handled, cmd := m.handleHabitMessages(msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.state == StateCoach && m.input.Focused() {
			return m, m.updateCoachInput(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.switchTab((int(m.state) + 1) % tabCount)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.switchTab((int(m.state) - 1 + tabCount) % tabCount)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case m.state == StateCoach && key.Matches(msg, m.keys.Send):
			m.input.Focus()
			return m, nil
		case key.Matches(msg, m.keys.Refresh) && m.state != StateToday:
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.habits, cmd = m.habits.Update(msg)
	case StateCoach:
		m.chat, cmd = m.chat.Update(msg)
	}
	return m, cmd
}

func (m *Model) switchTab(i int) {
	m.state = SessionState(i)
	m.status = ""
	if m.state == StateCoach {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) updateCoachInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
		next := (int(m.state) + 1) % tabCount
		if key.Matches(msg, m.keys.ShiftTab) {
			next = (int(m.state) - 1 + tabCount) % tabCount
		}
		m.switchTab(next)
		return nil
	case key.Matches(msg, m.keys.Cancel):
		m.input.Blur()
		return nil
	case key.Matches(msg, m.keys.Send):
		text := strings.TrimSpace(m.input.Value())
		if text == "" || m.waiting {
			return nil
		}
		m.input.Reset()
		m.waiting = true
		m.status = ""
		return m.askCoach(text)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) handleHabitMessages(msg tea.Msg) (bool, tea.Cmd) {
	var (
		out app.Outcome
		err error
	)
	switch msg := msg.(type) {
	case habitlist.AddHabitMsg:
		m.habitForm = &HabitFormModel{}
		m.form = NewHabitForm(m.habitForm)
		m.state = StateAddHabit
		return true, m.form.Init()
	case habitlist.ToggleHabitMsg:
		_, out, err = m.app.ToggleHabit(msg.ID, "")
	case habitlist.IncrementHabitMsg:
		_, out, err = m.app.IncrementHabit(msg.ID, "")
	case habitlist.DecrementHabitMsg:
		_, out, err = m.app.DecrementHabit(msg.ID, "")
	default:
		return false, nil
	}

	m.status = describeOutcome(out)
	if err != nil {
		logger.Warn("habit update not saved", "error", err)
		m.status = "Saved for this session only: " + err.Error()
	}
	m.refresh()
	return true, nil
}

func describeOutcome(out app.Outcome) string {
	var parts []string
	if out.Points > 0 {
		parts = append(parts, fmt.Sprintf("+%d points", out.Points))
	}
	if out.ChallengeReward > 0 {
		parts = append(parts, fmt.Sprintf("weekly challenge complete! +%d", out.ChallengeReward))
	}
	for _, a := range out.Unlocked {
		parts = append(parts, "🏆 "+a.Title)
	}
	return strings.Join(parts, " · ")
}

func (m *Model) updateAddHabit(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateToday
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.saveHabitForm(); err != nil {
			m.status = err.Error()
		}
		m.state = StateToday
		m.refresh()
	case huh.StateAborted:
		m.state = StateToday
	}
	return cmd
}

func (m *Model) saveHabitForm() error {
	if m.habitForm.Prebuilt != "" {
		h, _, err := m.app.Habits.AddPrebuilt(m.habitForm.Prebuilt)
		m.status = "Added " + h.Name
		return err
	}
	h, err := m.habitForm.Habit()
	if err != nil {
		return err
	}
	if err := validation.Habit(h); err != nil {
		return err
	}
	saved, err := m.app.Habits.AddHabit(h)
	m.status = "Added " + saved.Name
	return err
}

func (m Model) renderTranscript() string {
	session, ok := m.app.Chat.CurrentSession()
	if !ok || len(session.Messages) == 0 {
		return mutedStyle.Render("No messages yet. Type below and press enter.")
	}
	var b strings.Builder
	for _, msg := range session.Messages {
		switch msg.Role {
		case models.RoleUser:
			b.WriteString(userStyle.Render("You") + "\n")
		case models.RoleAssistant:
			b.WriteString(assistantStyle.Render("Coach") + "\n")
		default:
			continue
		}
		b.WriteString(msg.Content + "\n\n")
	}
	return b.String()
}
