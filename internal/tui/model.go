package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/ripple/internal/app"
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/tui/components/habitlist"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateSchedule
	StateStats
	StateCoach
	StateAddHabit
)

var tabTitles = []string{"Today", "Schedule", "Stats", "Coach"}

// coachTimeout bounds a single coach request from the dashboard
const coachTimeout = 45 * time.Second

type coachReplyMsg struct {
	reply models.ChatMessage
	err   error
}

type Model struct {
	app       *app.App
	state     SessionState
	keys      KeyMap
	help      help.Model
	habits    habitlist.Model
	input     textinput.Model
	chat      viewport.Model
	spinner   spinner.Model
	form      *huh.Form
	habitForm *HabitFormModel
	waiting   bool
	status    string
	quitting  bool
	width     int
	height    int
}

func NewModel(a *app.App) Model {
	in := textinput.New()
	in.Placeholder = "Ask your coach anything…"
	in.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		app:     a,
		state:   StateToday,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		habits:  habitlist.New(nil, 0, 0),
		input:   in,
		chat:    viewport.New(0, 0),
		spinner: sp,
	}
	m.refresh()
	return m
}

// refresh rebuilds every view from the stores.
func (m *Model) refresh() {
	today := m.app.Today()
	var items []habitlist.Item
	for _, h := range m.app.Habits.ActiveHabits() {
		log, _ := m.app.Habits.LogFor(h.ID, today)
		items = append(items, habitlist.Item{Habit: h, Log: log, Streak: m.app.Habits.CurrentStreak(h.ID)})
	}
	m.habits.SetItems(items)
	m.chat.SetContent(m.renderTranscript())
	m.chat.GotoBottom()
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateCoach {
		keys = []key.Binding{m.keys.Tab, m.keys.Send, m.keys.Help}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	var actions []key.Binding
	switch m.state {
	case StateToday:
		hk := habitlist.DefaultKeyMap()
		actions = []key.Binding{hk.Toggle, hk.Increment, hk.Decrement, hk.Add}
	case StateCoach:
		actions = []key.Binding{m.keys.Send, m.keys.Cancel}
	}
	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) askCoach(text string) tea.Cmd {
	a := m.app
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), coachTimeout)
		defer cancel()
		reply, err := a.AskCoach(ctx, text)
		return coachReplyMsg{reply: reply, err: err}
	}
}
