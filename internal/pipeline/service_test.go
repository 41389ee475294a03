package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poshanai/khana-ai-platform/internal/extraction"
	"github.com/poshanai/khana-ai-platform/internal/hinglish"
	"github.com/poshanai/khana-ai-platform/internal/meal"
	"github.com/poshanai/khana-ai-platform/internal/nutrition"
	"github.com/poshanai/khana-ai-platform/internal/session"
)

func newTestService(t *testing.T) (*Service, *session.Manager) {
	t.Helper()
	translator := hinglish.NewTranslator()
	now := func() time.Time {
		return time.Date(2026, 8, 24, 8, 30, 0, 0, time.UTC) // breakfast hours
	}
	mgr := session.NewManager(session.ManagerConfig{
		Store: session.NewMemoryStore(),
		Now:   now,
	})
	svc := NewService(ServiceConfig{
		Translator: translator,
		Extractor:  extraction.NewExtractor(translator, nil),
		Resolver:   extraction.NewResolver(translator),
		Assembler: meal.NewAssembler(meal.AssemblerConfig{
			Lookup: nutrition.NewStaticLookup(),
			Now:    now,
		}),
		Sessions: mgr,
	})
	return svc, mgr
}

func TestProcessUtteranceLogsBreakfast(t *testing.T) {
	svc, mgr := newTestService(t)
	ctx := context.Background()

	sessionID, err := mgr.StartSession(ctx, "user-1", session.Seed{})
	require.NoError(t, err)

	resp, err := svc.ProcessUtterance(ctx, Request{
		SessionID: sessionID,
		UserID:    "user-1",
		Utterance: "Maine breakfast mein 2 roti aur one glass milk liya",
	})
	require.NoError(t, err)
	require.Equal(t, OutcomeMealLogged, resp.Outcome)
	require.NotNil(t, resp.Meal)
	assert.Empty(t, resp.Clarifications)

	m := resp.Meal
	assert.Equal(t, meal.MealTypeBreakfast, m.MealType)
	require.Len(t, m.Items, 2)
	assert.Equal(t, "roti", m.Items[0].Name)
	assert.InDelta(t, 60.0, m.Items[0].Portion.Quantity, 0.001) // 2 roti x 30g
	assert.Equal(t, "milk", m.Items[1].Name)
	assert.InDelta(t, 250.0, m.Items[1].Portion.Quantity, 0.001) // 1 glass
	assert.Greater(t, m.Summary.TotalCalories, 0.0)
	assert.InDelta(t, 0.9, resp.Confidence, 0.001)

	sess, err := mgr.GetSession(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, sess.Context.CurrentMealContext)
	require.NotNil(t, sess.Context.CurrentMealContext.Meal)
	require.Len(t, sess.Context.RecentMeals, 1)
	require.Len(t, sess.Turns, 1)
	assert.Equal(t, session.TurnTypeMealLog, sess.Turns[0].Type)
}

func TestProcessUtteranceAsksForClarification(t *testing.T) {
	svc, mgr := newTestService(t)
	ctx := context.Background()

	sessionID, err := mgr.StartSession(ctx, "user-1", session.Seed{})
	require.NoError(t, err)

	resp, err := svc.ProcessUtterance(ctx, Request{
		SessionID: sessionID,
		UserID:    "user-1",
		Utterance: "maine dal khaya",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeClarification, resp.Outcome)
	assert.Nil(t, resp.Meal)
	require.Len(t, resp.Clarifications, 1)
	assert.Equal(t, "dal", resp.Clarifications[0].Term)
	assert.Len(t, resp.Clarifications[0].Options, 5)
	assert.Equal(t, resp.Clarifications[0].Question, resp.Message)

	// Nothing is logged until the user answers.
	sess, err := mgr.GetSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Nil(t, sess.Context.CurrentMealContext.Meal)
	assert.Empty(t, sess.Context.RecentMeals)
	require.Len(t, sess.Turns, 1)
	assert.Equal(t, session.TurnTypeClarification, sess.Turns[0].Type)
}

func TestProcessUtteranceNotUnderstood(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.ProcessUtterance(context.Background(), Request{
		UserID:    "user-1",
		Utterance: "maine kuch khaya tha",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotUnderstood, resp.Outcome)
	assert.Nil(t, resp.Meal)
	assert.Empty(t, resp.Clarifications)
	assert.Zero(t, resp.Confidence)
	assert.NotEmpty(t, resp.Message)
}

func TestProcessUtteranceStateless(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.ProcessUtterance(context.Background(), Request{
		UserID:    "user-1",
		Utterance: "ek katori jeera rice khaya",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeMealLogged, resp.Outcome)
	require.NotNil(t, resp.Meal)
	require.Len(t, resp.Meal.Items, 1)
	assert.Equal(t, "jeera rice", resp.Meal.Items[0].Name)
}

func TestProcessUtteranceSurvivesStaleSession(t *testing.T) {
	svc, _ := newTestService(t)

	// A session id that no longer exists must not fail the turn.
	resp, err := svc.ProcessUtterance(context.Background(), Request{
		SessionID: "expired-session",
		UserID:    "user-1",
		Utterance: "maine 2 roti khayi",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeMealLogged, resp.Outcome)
}
