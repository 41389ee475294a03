package session

import "fmt"

// ConversationState is the lifecycle state of a session.
type ConversationState string

const (
	StateActive      ConversationState = "active"
	StateInterrupted ConversationState = "interrupted"
	StatePaused      ConversationState = "paused"
	StateEnded       ConversationState = "ended"
)

// States lists every variant. The enum↔string mapping is explicit and
// tested for completeness in both directions.
func States() []ConversationState {
	return []ConversationState{StateActive, StateInterrupted, StatePaused, StateEnded}
}

// ParseState resolves a canonical state string.
func ParseState(raw string) (ConversationState, error) {
	switch ConversationState(raw) {
	case StateActive, StateInterrupted, StatePaused, StateEnded:
		return ConversationState(raw), nil
	}
	return "", fmt.Errorf("session: unknown conversation state %q", raw)
}

// String returns the canonical string form.
func (s ConversationState) String() string {
	return string(s)
}
