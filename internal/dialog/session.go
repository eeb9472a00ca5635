package dialog

import (
	"time"

	"pizzabot/internal/domain"
)

// Session is the live state of one conversation. It is owned by a single
// turn at a time.
type Session struct {
	ConversationID string
	State          State
	Phone          string
	Name           string
	Draft          domain.OrderDraft
	LastActivity   time.Time

	// opening is the first ordering utterance, parsed once identity is known.
	opening string
	// pending holds indexes into Draft.Pizzas still waiting for toppings or
	// extras, in the order they were added.
	pending []int

	askedBeverages bool
	gotBeverages   bool
	askedExtras    bool
}

func NewSession(conversationID string, now time.Time) *Session {
	return &Session{
		ConversationID: conversationID,
		State:          StateGreeting,
		Draft:          domain.NewOrderDraft(),
		LastActivity:   now,
	}
}

// Reset starts the conversation over at GREETING, dropping identity and
// draft.
func (s *Session) Reset() {
	*s = Session{
		ConversationID: s.ConversationID,
		State:          StateGreeting,
		Draft:          domain.NewOrderDraft(),
		LastActivity:   s.LastActivity,
	}
}

func (s *Session) resetRound() {
	s.askedBeverages = false
	s.gotBeverages = false
	s.askedExtras = false
}

// SessionInfo is the externally visible part of a session.
type SessionInfo struct {
	ConversationID string    `json:"conversationId"`
	State          string    `json:"state"`
	Phone          string    `json:"phone,omitempty"`
	Name           string    `json:"name,omitempty"`
	LastActivity   time.Time `json:"lastActivity"`
}

func (s *Session) Info() SessionInfo {
	return SessionInfo{
		ConversationID: s.ConversationID,
		State:          s.State.String(),
		Phone:          s.Phone,
		Name:           s.Name,
		LastActivity:   s.LastActivity,
	}
}
