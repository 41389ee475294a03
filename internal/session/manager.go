package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/poshanai/khana-ai-platform/internal/meal"
	"github.com/poshanai/khana-ai-platform/pkg/logging"
)

var managerTracer = otel.Tracer("khana/session")

// ErrInvalidStateTransition indicates an operation that the current
// session state does not allow, e.g. resuming a session that is not
// interrupted.
var ErrInvalidStateTransition = errors.New("session: invalid state transition")

const (
	defaultIdleTimeout  = 2 * time.Hour
	defaultGraceWindow  = time.Hour
	defaultMaxMeals     = 10
	defaultMaxTopics    = 5
	shortInterruption   = 2 * time.Minute
	mediumInterruption  = 10 * time.Minute
	followUpTurnWindow  = 3
)

// topicKeywords are the nutrition topics tracked from user input.
var topicKeywords = []string{"protein", "calories", "weight", "diet", "exercise"}

// mealKeywords mark a turn as meal-related.
var mealKeywords = []string{"khaya", "khayi", "ate", "eat", "meal", "breakfast", "lunch", "dinner", "snack", "food", "khana", "piya", "drank"}

// followUpIndicators mark an input as continuing the previous exchange.
var followUpIndicators = []string{"what about", "aur", "bhi", "also", "more", "usme", "uska", "that", "it"}

// Manager owns per-session conversation state: the state machine, turn
// history, topic tracking, and resumption messages. Context merges are not
// commutative, so the manager serializes all writes for one session id
// behind a per-session lock; different sessions proceed in parallel.
type Manager struct {
	store  Store
	logger *logging.Logger
	tracer trace.Tracer
	now    func() time.Time

	idleTimeout time.Duration
	graceWindow time.Duration
	maxMeals    int
	maxTopics   int

	locks sync.Map // sessionID -> *sync.Mutex
}

// ManagerConfig configures the session manager.
type ManagerConfig struct {
	Store  Store
	Logger *logging.Logger
	// IdleTimeout force-ends sessions with no activity (default 2h).
	IdleTimeout time.Duration
	// GraceWindow keeps ended sessions readable before eviction (default 1h).
	GraceWindow time.Duration
	// MaxRecentMeals bounds the recent-meal ring (default 10).
	MaxRecentMeals int
	// MaxActiveTopics bounds the topic list (default 5).
	MaxActiveTopics int
	// Now overrides the clock (for tests).
	Now func() time.Time
}

// NewManager creates a session manager over the given store.
func NewManager(cfg ManagerConfig) *Manager {
	if cfg.Store == nil {
		panic("session: store cannot be nil")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	m := &Manager{
		store:       cfg.Store,
		logger:      logger,
		tracer:      managerTracer,
		now:         now,
		idleTimeout: cfg.IdleTimeout,
		graceWindow: cfg.GraceWindow,
		maxMeals:    cfg.MaxRecentMeals,
		maxTopics:   cfg.MaxActiveTopics,
	}
	if m.idleTimeout <= 0 {
		m.idleTimeout = defaultIdleTimeout
	}
	if m.graceWindow <= 0 {
		m.graceWindow = defaultGraceWindow
	}
	if m.maxMeals <= 0 {
		m.maxMeals = defaultMaxMeals
	}
	if m.maxTopics <= 0 {
		m.maxTopics = defaultMaxTopics
	}
	return m
}

func (m *Manager) lock(sessionID string) *sync.Mutex {
	mu, _ := m.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// StartSession allocates a session in the active state, seeding its
// context with the caller-supplied preferences, goals, and recent meals.
func (m *Manager) StartSession(ctx context.Context, userID string, seed Seed) (string, error) {
	ctx, span := m.tracer.Start(ctx, "session.start")
	defer span.End()

	now := m.now()
	sess := &ConversationSession{
		SessionID:   uuid.NewString(),
		UserID:      userID,
		StartedAt:   now,
		LastUpdated: now,
		Context: ConversationContext{
			UserPreferences: seed.UserPreferences,
			Goals:           seed.Goals,
			RecentMeals:     truncateMeals(seed.RecentMeals, m.maxMeals),
			State:           StateActive,
		},
	}
	if err := m.store.Put(ctx, sess); err != nil {
		span.RecordError(err)
		return "", err
	}

	span.SetAttributes(attribute.String("session.id", sess.SessionID))
	m.logger.Info("session started", "session_id", sess.SessionID, "user_id", userID)
	return sess.SessionID, nil
}

// GetSession returns a copy of the session, including ended sessions still
// inside their grace window.
func (m *Manager) GetSession(ctx context.Context, sessionID string) (*ConversationSession, error) {
	return m.store.Get(ctx, sessionID)
}

// AddConversationTurn appends a turn to the session history and merges its
// signals into the context: nutrition topics from the user input go to the
// front of the bounded topic list, and meal-related turns refresh the
// current meal context.
func (m *Manager) AddConversationTurn(ctx context.Context, sessionID string, turn ConversationTurn) error {
	ctx, span := m.tracer.Start(ctx, "session.add_turn")
	defer span.End()

	mu := m.lock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	sess, err := m.store.Get(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if turn.ID == "" {
		turn.ID = uuid.NewString()
	}
	if turn.Timestamp.IsZero() {
		turn.Timestamp = m.now()
	}
	sess.Turns = append(sess.Turns, turn)

	input := strings.ToLower(turn.UserInput)
	for _, topic := range extractTopics(input) {
		sess.Context.ActiveTopics = prependUnique(sess.Context.ActiveTopics, topic, m.maxTopics)
	}
	if isMealRelated(input) {
		if sess.Context.CurrentMealContext == nil {
			sess.Context.CurrentMealContext = &MealContext{}
		}
		sess.Context.CurrentMealContext.Description = turn.UserInput
	}

	sess.LastUpdated = m.now()
	return m.store.Put(ctx, sess)
}

// HandleInterruption marks the session interrupted with a reason and
// timestamp. Unknown session ids are a deliberate no-op: interruptions can
// race session teardown at the voice boundary.
func (m *Manager) HandleInterruption(ctx context.Context, sessionID, reason string) {
	ctx, span := m.tracer.Start(ctx, "session.interrupt")
	defer span.End()

	mu := m.lock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	sess, err := m.store.Get(ctx, sessionID)
	if err != nil {
		m.logger.Debug("interruption for unknown session ignored", "session_id", sessionID)
		return
	}

	now := m.now()
	sess.Context.State = StateInterrupted
	sess.Context.InterruptionReason = reason
	sess.Context.InterruptedAt = &now
	sess.LastUpdated = now

	if err := m.store.Put(ctx, sess); err != nil {
		span.RecordError(err)
		m.logger.Error("failed to persist interruption", "session_id", sessionID, "error", err)
		return
	}
	m.logger.Info("session interrupted", "session_id", sessionID, "reason", reason)
}

// ResumeConversation transitions interrupted → active and returns a
// resumption message picked by how long the interruption lasted.
func (m *Manager) ResumeConversation(ctx context.Context, sessionID string) (string, error) {
	ctx, span := m.tracer.Start(ctx, "session.resume")
	defer span.End()

	mu := m.lock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	sess, err := m.store.Get(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	if sess.Context.State != StateInterrupted {
		return "", fmt.Errorf("%w: resume requires interrupted state, session is %s", ErrInvalidStateTransition, sess.Context.State)
	}

	now := m.now()
	var elapsed time.Duration
	if sess.Context.InterruptedAt != nil {
		elapsed = now.Sub(*sess.Context.InterruptedAt)
	}
	message := m.resumptionMessage(sess, elapsed)

	sess.Context.State = StateActive
	sess.Context.InterruptionReason = ""
	sess.Context.InterruptedAt = nil
	sess.LastUpdated = now

	if err := m.store.Put(ctx, sess); err != nil {
		span.RecordError(err)
		return "", err
	}
	span.SetAttributes(attribute.String("session.resume_bucket", bucketName(elapsed)))
	return message, nil
}

// resumptionMessage picks the tone by interruption length: a short
// acknowledgement under two minutes, a more formal re-engagement up to ten
// minutes, and a full greeting reset beyond that. Context data is retained
// in every case.
func (m *Manager) resumptionMessage(sess *ConversationSession, elapsed time.Duration) string {
	mealRef := ""
	if mc := sess.Context.CurrentMealContext; mc != nil && mc.Description != "" {
		mealRef = mc.Description
	}

	switch {
	case elapsed < shortInterruption:
		if mealRef != "" {
			return fmt.Sprintf("Haan, toh hum aapke meal ki baat kar rahe the: %q. Aage boliye.", mealRef)
		}
		return "Haan, boliye, main sun raha hoon."
	case elapsed <= mediumInterruption:
		if mealRef != "" {
			return fmt.Sprintf("Welcome back! Hum aapka meal log kar rahe the (%q). Kya wahi continue karein?", mealRef)
		}
		return "Welcome back! Kahan the hum? Aap apna khana batana chahte the."
	default:
		return "Namaste! Main aapka nutrition assistant hoon. Aaj aapne kya khaya, mujhe batayiye."
	}
}

func bucketName(elapsed time.Duration) string {
	switch {
	case elapsed < shortInterruption:
		return "short"
	case elapsed <= mediumInterruption:
		return "medium"
	default:
		return "long"
	}
}

// AddMealToContext sets the current meal and pushes it onto the bounded
// recent-meal ring, most recent first.
func (m *Manager) AddMealToContext(ctx context.Context, sessionID string, mealData meal.MealData) error {
	ctx, span := m.tracer.Start(ctx, "session.add_meal")
	defer span.End()

	mu := m.lock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	sess, err := m.store.Get(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		return err
	}

	mealCopy := mealData
	sess.Context.CurrentMealContext = &MealContext{
		Description: mealData.SourceUtterance,
		Meal:        &mealCopy,
	}
	sess.Context.RecentMeals = truncateMeals(append([]meal.MealData{mealData}, sess.Context.RecentMeals...), m.maxMeals)
	sess.LastUpdated = m.now()

	return m.store.Put(ctx, sess)
}

// GenerateContextualResponse augments a base response using conversation
// context. Exactly one augmentation applies, in fixed precedence order:
// follow-up continuity, then current meal context, then stored
// preferences.
func (m *Manager) GenerateContextualResponse(ctx context.Context, sessionID, userInput, baseResponse string) (string, error) {
	ctx, span := m.tracer.Start(ctx, "session.contextual_response")
	defer span.End()

	sess, err := m.store.Get(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	input := strings.ToLower(userInput)

	if m.looksLikeFollowUp(input, sess.Turns) {
		return baseResponse + " (Pichhli baat se jodte hue.)", nil
	}
	if isMealRelated(input) && sess.Context.CurrentMealContext != nil && sess.Context.CurrentMealContext.Description != "" {
		return fmt.Sprintf("%s Aapke abhi wale meal (%q) ko dhyan mein rakha hai.", baseResponse, sess.Context.CurrentMealContext.Description), nil
	}
	if len(sess.Context.UserPreferences) > 0 {
		if sess.Context.UserPreferences["vegetarian"] == "true" {
			return baseResponse + " Aap vegetarian hain, toh main vegetarian options bhi suggest kar sakta hoon.", nil
		}
		return baseResponse + " Aapki preferences ka dhyan rakha hai.", nil
	}
	return baseResponse, nil
}

// looksLikeFollowUp reports whether the input continues the recent
// exchange: either a follow-up indicator word, or a nutrition topic shared
// with one of the last few turns.
func (m *Manager) looksLikeFollowUp(input string, turns []ConversationTurn) bool {
	if len(turns) == 0 {
		return false
	}
	for _, indicator := range followUpIndicators {
		if containsWord(input, indicator) {
			return true
		}
	}
	inputTopics := extractTopics(input)
	if len(inputTopics) == 0 {
		return false
	}
	start := len(turns) - followUpTurnWindow
	if start < 0 {
		start = 0
	}
	for _, turn := range turns[start:] {
		prevTopics := extractTopics(strings.ToLower(turn.UserInput))
		for _, a := range inputTopics {
			for _, b := range prevTopics {
				if a == b {
					return true
				}
			}
		}
	}
	return false
}

// EndSession moves the session to the terminal ended state and schedules
// eviction after the grace window, so late resumption attempts can still
// read final state.
func (m *Manager) EndSession(ctx context.Context, sessionID string) error {
	ctx, span := m.tracer.Start(ctx, "session.end")
	defer span.End()

	mu := m.lock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	sess, err := m.store.Get(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		return err
	}

	now := m.now()
	evictAt := now.Add(m.graceWindow)
	sess.Context.State = StateEnded
	sess.EndedAt = &now
	sess.EvictAt = &evictAt
	sess.LastUpdated = now

	if err := m.store.Put(ctx, sess); err != nil {
		span.RecordError(err)
		return err
	}
	m.logger.Info("session ended", "session_id", sessionID)
	return nil
}

// CleanupExpiredSessions force-ends sessions idle beyond the timeout and
// evicts ended sessions past their grace window. It takes the same
// per-session lock as turn processing, so a sweep never races an in-flight
// turn. Returns how many sessions were ended or evicted.
func (m *Manager) CleanupExpiredSessions(ctx context.Context) (int, error) {
	ctx, span := m.tracer.Start(ctx, "session.cleanup")
	defer span.End()

	ids, err := m.store.ListIDs(ctx)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	swept := 0
	now := m.now()
	for _, id := range ids {
		mu := m.lock(id)
		mu.Lock()

		sess, err := m.store.Get(ctx, id)
		if err != nil {
			mu.Unlock()
			continue
		}

		switch {
		case sess.Context.State == StateEnded:
			if sess.EvictAt != nil && now.After(*sess.EvictAt) {
				if err := m.store.Delete(ctx, id); err == nil {
					m.locks.Delete(id)
					swept++
				}
			}
		default:
			last := sess.LastUpdated
			if last.IsZero() {
				last = sess.StartedAt
			}
			if now.Sub(last) > m.idleTimeout {
				evictAt := now.Add(m.graceWindow)
				sess.Context.State = StateEnded
				sess.EndedAt = &now
				sess.EvictAt = &evictAt
				sess.LastUpdated = now
				if err := m.store.Put(ctx, sess); err == nil {
					swept++
					m.logger.Info("idle session force-ended", "session_id", id)
				}
			}
		}
		mu.Unlock()
	}

	span.SetAttributes(attribute.Int("session.swept", swept))
	return swept, nil
}

func extractTopics(input string) []string {
	var out []string
	for _, kw := range topicKeywords {
		if strings.Contains(input, kw) {
			out = append(out, kw)
		}
	}
	return out
}

func isMealRelated(input string) bool {
	for _, kw := range mealKeywords {
		if strings.Contains(input, kw) {
			return true
		}
	}
	return false
}

func containsWord(input, word string) bool {
	if strings.Contains(word, " ") {
		return strings.Contains(input, word)
	}
	for _, tok := range strings.Fields(input) {
		if strings.Trim(tok, ".,!?") == word {
			return true
		}
	}
	return false
}

func prependUnique(list []string, value string, max int) []string {
	out := []string{value}
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	if len(out) > max {
		out = out[:max]
	}
	return out
}

func truncateMeals(meals []meal.MealData, max int) []meal.MealData {
	if len(meals) <= max {
		return meals
	}
	return meals[:max]
}
