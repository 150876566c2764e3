// Package session holds the ordered message log threaded through tutor turns.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/igoryan-dao/ricochet-tutor/internal/protocol"
)

// ErrSystemMessage is returned when a caller tries to append a second system message.
var ErrSystemMessage = errors.New("session already has a system message")

// ErrUnseeded is returned by Append on a session not created with New.
var ErrUnseeded = errors.New("session has no system message")

// Session is an append-only conversation log. The first message is always the
// single system message it was created with.
//
// A Session is not safe for concurrent turns; callers serialize them.
type Session struct {
	id       string
	messages []protocol.Message
}

// New creates a session seeded with the system prompt.
func New(systemPrompt string) *Session {
	return &Session{
		id:       uuid.Must(uuid.NewV7()).String(),
		messages: []protocol.Message{protocol.SystemMessage(systemPrompt)},
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Append adds a user or assistant message to the end of the log.
func (s *Session) Append(msg protocol.Message) error {
	if len(s.messages) == 0 {
		return ErrUnseeded
	}
	switch msg.Role {
	case protocol.RoleUser, protocol.RoleAssistant:
		s.messages = append(s.messages, msg)
		return nil
	case protocol.RoleSystem:
		return ErrSystemMessage
	default:
		return fmt.Errorf("invalid role %q", msg.Role)
	}
}

// Messages returns a copy of the log in order.
func (s *Session) Messages() []protocol.Message {
	copied := make([]protocol.Message, len(s.messages))
	copy(copied, s.messages)
	return copied
}

// Len returns the number of messages, including the system message.
func (s *Session) Len() int {
	return len(s.messages)
}

// System returns the system message, or the zero Message for an unseeded session.
func (s *Session) System() protocol.Message {
	if len(s.messages) == 0 {
		return protocol.Message{}
	}
	return s.messages[0]
}

// Last returns the most recent message, or the zero Message for an unseeded session.
func (s *Session) Last() protocol.Message {
	if len(s.messages) == 0 {
		return protocol.Message{}
	}
	return s.messages[len(s.messages)-1]
}

// Truncate drops messages beyond the first n. The system message is always kept.
func (s *Session) Truncate(n int) {
	if n < 1 {
		n = 1
	}
	if n < len(s.messages) {
		s.messages = s.messages[:n:n]
	}
}
