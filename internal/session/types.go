package session

import (
	"time"

	"github.com/poshanai/khana-ai-platform/internal/meal"
)

// TurnType classifies one conversation exchange.
type TurnType string

const (
	TurnTypeGeneral       TurnType = "general"
	TurnTypeMealLog       TurnType = "meal_log"
	TurnTypeClarification TurnType = "clarification"
)

// ConversationTurn is an immutable record of one exchange, appended to the
// per-session history.
type ConversationTurn struct {
	ID             string            `json:"id"`
	Timestamp      time.Time         `json:"timestamp"`
	UserInput      string            `json:"user_input"`
	SystemResponse string            `json:"system_response"`
	Type           TurnType          `json:"type"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// MealContext is the meal currently under discussion: the user's phrasing
// plus the resolved record once one exists.
type MealContext struct {
	Description string         `json:"description"`
	Meal        *meal.MealData `json:"meal,omitempty"`
}

// ConversationContext carries everything the assistant remembers inside a
// session. Mutated only by the Manager; callers must serialize turns for
// the same session id (single writer per session).
type ConversationContext struct {
	UserPreferences    map[string]string `json:"user_preferences,omitempty"`
	Goals              []string          `json:"goals,omitempty"`
	CurrentMealContext *MealContext      `json:"current_meal_context,omitempty"`
	RecentMeals        []meal.MealData   `json:"recent_meals,omitempty"` // bounded, most recent first
	ActiveTopics       []string          `json:"active_topics,omitempty"`
	State              ConversationState `json:"state"`
	InterruptionReason string            `json:"interruption_reason,omitempty"`
	InterruptedAt      *time.Time        `json:"interrupted_at,omitempty"`
}

// ConversationSession is one continuous voice-interaction lifetime.
type ConversationSession struct {
	SessionID   string              `json:"session_id"`
	UserID      string              `json:"user_id"`
	StartedAt   time.Time           `json:"started_at"`
	EndedAt     *time.Time          `json:"ended_at,omitempty"`
	LastUpdated time.Time           `json:"last_updated"`
	EvictAt     *time.Time          `json:"evict_at,omitempty"` // set on end; grace window for late resumption reads
	Context     ConversationContext `json:"context"`
	Turns       []ConversationTurn  `json:"turns"`
}

// Seed initializes a new session's context.
type Seed struct {
	UserPreferences map[string]string `json:"user_preferences,omitempty"`
	Goals           []string          `json:"goals,omitempty"`
	RecentMeals     []meal.MealData   `json:"recent_meals,omitempty"`
}

// Clone deep-copies a session so store reads never alias store-held state.
func (s *ConversationSession) Clone() *ConversationSession {
	if s == nil {
		return nil
	}
	out := *s
	if s.EndedAt != nil {
		t := *s.EndedAt
		out.EndedAt = &t
	}
	if s.EvictAt != nil {
		t := *s.EvictAt
		out.EvictAt = &t
	}
	out.Context = s.Context.clone()
	out.Turns = make([]ConversationTurn, len(s.Turns))
	for i, turn := range s.Turns {
		out.Turns[i] = turn.clone()
	}
	return &out
}

func (c ConversationContext) clone() ConversationContext {
	out := c
	if c.UserPreferences != nil {
		out.UserPreferences = make(map[string]string, len(c.UserPreferences))
		for k, v := range c.UserPreferences {
			out.UserPreferences[k] = v
		}
	}
	out.Goals = append([]string(nil), c.Goals...)
	out.ActiveTopics = append([]string(nil), c.ActiveTopics...)
	out.RecentMeals = append([]meal.MealData(nil), c.RecentMeals...)
	if c.CurrentMealContext != nil {
		mc := *c.CurrentMealContext
		out.CurrentMealContext = &mc
	}
	if c.InterruptedAt != nil {
		t := *c.InterruptedAt
		out.InterruptedAt = &t
	}
	return out
}

func (t ConversationTurn) clone() ConversationTurn {
	out := t
	if t.Metadata != nil {
		out.Metadata = make(map[string]string, len(t.Metadata))
		for k, v := range t.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}
