package habitlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/ripple/internal/models"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

type IncrementHabitMsg struct {
	ID string
}

type DecrementHabitMsg struct {
	ID string
}

type Item struct {
	Habit  models.Habit
	Log    models.HabitLog
	Streak int
}

func (i Item) Title() string {
	mark := "○ "
	if i.Log.Completed {
		mark = "✓ "
	}
	return mark + i.Habit.Icon + " " + i.Habit.Name
}

func (i Item) Description() string {
	desc := fmt.Sprintf("+%d pts", i.Habit.PointsPerCompletion)
	if i.Habit.IsMultiStep() {
		desc = fmt.Sprintf("%d/%d · %s", i.Log.Count, i.Habit.TargetCount, desc)
	}
	if i.Streak > 0 {
		desc += fmt.Sprintf(" · 🔥 %d day streak", i.Streak)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add       key.Binding
	Toggle    key.Binding
	Increment key.Binding
	Decrement key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add habit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle done"),
		),
		Increment: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "count up"),
		),
		Decrement: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "count down"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(items []Item, width, height int) Model {
	l := list.New(toListItems(items), list.NewDefaultDelegate(), width, height)
	l.Title = "Today's habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Increment, keys.Decrement, keys.Add}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

func toListItems(items []Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

func (m *Model) SetItems(items []Item) {
	m.list.SetItems(toListItems(items))
}

func (m Model) Items() []Item {
	out := make([]Item, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		out = append(out, it.(Item))
	}
	return out
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Add) {
			return m, func() tea.Msg { return AddHabitMsg{} }
		}
		if i, ok := m.list.SelectedItem().(Item); ok {
			id := i.Habit.ID
			switch {
			case key.Matches(msg, m.keys.Toggle):
				// Multi-step habits complete by counting, so toggle counts up
				if i.Habit.IsMultiStep() {
					return m, func() tea.Msg { return IncrementHabitMsg{ID: id} }
				}
				return m, func() tea.Msg { return ToggleHabitMsg{ID: id} }
			case key.Matches(msg, m.keys.Increment):
				return m, func() tea.Msg { return IncrementHabitMsg{ID: id} }
			case key.Matches(msg, m.keys.Decrement):
				return m, func() tea.Msg { return DecrementHabitMsg{ID: id} }
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
