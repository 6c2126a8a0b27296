// Package session keeps the conversation log and the request/response gate
// that governs when new user input may be submitted.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/askh-dev/askh/providers/contracts"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the append-only conversation log. Messages are
// never edited or removed once appended.
type Message struct {
	ID      string
	Role    Role
	Content string
}

// State is the session's request/response gate.
type State int

const (
	// Idle means the session accepts new user input.
	Idle State = iota
	// AwaitingReply means one request is outstanding and further sends are
	// rejected, not queued.
	AwaitingReply
)

// FallbackNotice is appended as the assistant's message when the conversation
// service fails. Failures surface in-band so the session stays interactable.
const FallbackNotice = "Sorry, I couldn't reach the assistant right now. Please try again."

// Stats summarizes the conversation log.
type Stats struct {
	UserMessages      int
	AssistantMessages int
}

// Session is an ordered message log with at-most-one outstanding request.
type Session struct {
	ID      string
	service contracts.IConversationService

	mu       sync.Mutex
	state    State
	messages []Message
}

// NewSession creates an idle session backed by the given conversation service.
func NewSession(service contracts.IConversationService) *Session {
	return &Session{
		ID:      uuid.NewString(),
		service: service,
	}
}

// Send submits one user message and waits for the reply. It returns false
// without touching the log when text is blank or a request is already
// outstanding. Service failures are absorbed: the reply slot is filled with
// FallbackNotice and the session returns to Idle, never a stuck state.
func (s *Session) Send(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	s.mu.Lock()
	if s.state != Idle {
		s.mu.Unlock()
		return false
	}
	s.state = AwaitingReply
	s.messages = append(s.messages, Message{ID: uuid.NewString(), Role: RoleUser, Content: text})
	s.mu.Unlock()

	reply, err := s.service.Converse(ctx, text)
	if err != nil {
		reply = FallbackNotice
	}

	s.mu.Lock()
	s.messages = append(s.messages, Message{ID: uuid.NewString(), Role: RoleAssistant, Content: reply})
	s.state = Idle
	s.mu.Unlock()

	return true
}

// State reports whether the session is idle or awaiting a reply.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Messages returns a copy of the log in append order. Append order is the
// single source of truth for displayed order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	messages := make([]Message, len(s.messages))
	copy(messages, s.messages)
	return messages
}

// LastReply returns the most recent assistant message, if any.
func (s *Session) LastReply() (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Role == RoleAssistant {
			return s.messages[i], true
		}
	}
	return Message{}, false
}

// Stats counts messages per role.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	var stats Stats
	for _, message := range s.messages {
		if message.Role == RoleUser {
			stats.UserMessages++
		} else {
			stats.AssistantMessages++
		}
	}
	return stats
}

// Reset clears the conversation log. The session keeps its identity and
// returns to Idle.
func (s *Session) Reset() {
	s.mu.Lock()
	s.messages = nil
	s.state = Idle
	s.mu.Unlock()
}
