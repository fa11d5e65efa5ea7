package chat

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/julianstephens/ripple/internal/constants"
	"github.com/julianstephens/ripple/internal/logger"
	"github.com/julianstephens/ripple/internal/models"
	"github.com/julianstephens/ripple/internal/storage"
	"github.com/julianstephens/ripple/internal/utils"
)

type state struct {
	Sessions           []models.ChatSession `json:"sessions"`
	CurrentSessionID   string               `json:"current_session_id,omitempty"`
	CurrentEnergyLevel models.EnergyState   `json:"current_energy_level"`
}

// Store keeps coach conversations. Only the transcript is stored here;
// nothing a reply says is written to any other store.
type Store struct {
	provider storage.Provider
	clock    clockwork.Clock
	state    state
}

func NewStore(provider storage.Provider, clock clockwork.Clock) *Store {
	return &Store{
		provider: provider,
		clock:    clock,
		state:    state{CurrentEnergyLevel: models.EnergyNormal},
	}
}

func (s *Store) Load() error {
	s.state = state{CurrentEnergyLevel: models.EnergyNormal}
	if _, err := s.provider.Get(constants.KeyChatHistory, &s.state); err != nil {
		return fmt.Errorf("failed to load chat history: %w", err)
	}
	return nil
}

func (s *Store) persist(op, id string) error {
	logger.Debug("chat store mutation", "op", op, "id", id)
	if err := s.provider.Put(constants.KeyChatHistory, s.state); err != nil {
		logger.Warn("failed to persist chat history", "op", op, "error", err)
		return fmt.Errorf("failed to save chat history: %w", err)
	}
	return nil
}

// CreateSession starts a session, snapshots today's date, the current
// energy level and mood, and makes it current.
func (s *Store) CreateSession(currentMood int) (models.ChatSession, error) {
	now := s.clock.Now()
	session := models.ChatSession{
		ID:       uuid.NewString(),
		Messages: []models.ChatMessage{},
		Context: models.ChatContext{
			CurrentEnergyLevel: s.state.CurrentEnergyLevel,
			CurrentMood:        currentMood,
			TodayDate:          utils.FormatDate(now),
		},
		CreatedAt: now,
	}
	s.state.Sessions = append(s.state.Sessions, session)
	s.state.CurrentSessionID = session.ID
	return session, s.persist("create-session", session.ID)
}

// AddMessage appends to the session. Unknown sessions are ignored.
func (s *Store) AddMessage(sessionID string, msg models.ChatMessage) (models.ChatMessage, error) {
	i := s.index(sessionID)
	if i < 0 {
		return models.ChatMessage{}, nil
	}
	msg.ID = uuid.NewString()
	msg.CreatedAt = s.clock.Now()
	s.state.Sessions[i].Messages = append(s.state.Sessions[i].Messages, msg)
	return msg, s.persist("add-message", msg.ID)
}

func (s *Store) UpdateMessage(sessionID, messageID string, fn func(*models.ChatMessage)) error {
	i := s.index(sessionID)
	if i < 0 {
		return nil
	}
	msgs := s.state.Sessions[i].Messages
	for j := range msgs {
		if msgs[j].ID == messageID {
			fn(&msgs[j])
			msgs[j].ID = messageID
			return s.persist("update-message", messageID)
		}
	}
	return nil
}

// SetCurrentSession points at id; an empty id clears the pointer.
func (s *Store) SetCurrentSession(id string) error {
	s.state.CurrentSessionID = id
	return s.persist("set-current", id)
}

// SetEnergyLevel records the self-reported energy and copies it into the
// current session's context.
func (s *Store) SetEnergyLevel(level models.EnergyState) error {
	s.state.CurrentEnergyLevel = level
	if i := s.index(s.state.CurrentSessionID); i >= 0 {
		s.state.Sessions[i].Context.CurrentEnergyLevel = level
	}
	return s.persist("set-energy", string(level))
}

func (s *Store) EnergyLevel() models.EnergyState {
	return s.state.CurrentEnergyLevel
}

// ClearSession empties the transcript but keeps the session.
func (s *Store) ClearSession(id string) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	s.state.Sessions[i].Messages = []models.ChatMessage{}
	return s.persist("clear-session", id)
}

func (s *Store) DeleteSession(id string) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	s.state.Sessions = append(s.state.Sessions[:i], s.state.Sessions[i+1:]...)
	if s.state.CurrentSessionID == id {
		s.state.CurrentSessionID = ""
	}
	return s.persist("delete-session", id)
}

func (s *Store) index(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.state.Sessions {
		if s.state.Sessions[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) Sessions() []models.ChatSession {
	return append([]models.ChatSession(nil), s.state.Sessions...)
}

func (s *Store) CurrentSession() (models.ChatSession, bool) {
	if i := s.index(s.state.CurrentSessionID); i >= 0 {
		return s.state.Sessions[i], true
	}
	return models.ChatSession{}, false
}

// RecentMessages returns the last limit messages of the current session.
// A limit <= 0 uses the default of ten.
func (s *Store) RecentMessages(limit int) []models.ChatMessage {
	if limit <= 0 {
		limit = constants.DefaultRecentMessages
	}
	session, ok := s.CurrentSession()
	if !ok {
		return nil
	}
	msgs := session.Messages
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return append([]models.ChatMessage(nil), msgs...)
}
