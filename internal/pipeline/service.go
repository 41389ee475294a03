package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/poshanai/khana-ai-platform/internal/extraction"
	"github.com/poshanai/khana-ai-platform/internal/hinglish"
	"github.com/poshanai/khana-ai-platform/internal/meal"
	"github.com/poshanai/khana-ai-platform/internal/observability/metrics"
	"github.com/poshanai/khana-ai-platform/internal/session"
	"github.com/poshanai/khana-ai-platform/pkg/logging"
)

var serviceTracer = otel.Tracer("khana/pipeline")

// Outcome classifies what an utterance produced.
type Outcome string

const (
	OutcomeMealLogged    Outcome = "meal_logged"
	OutcomeClarification Outcome = "clarification"
	OutcomeNotUnderstood Outcome = "not_understood"
)

// Request is one transcript utterance to process. SessionID is optional;
// without it the turn is processed statelessly.
type Request struct {
	SessionID string `json:"session_id,omitempty"`
	UserID    string `json:"user_id"`
	Utterance string `json:"utterance"`
}

// Response is the result of processing one utterance. Exactly one of Meal
// or Clarifications is populated, matching the outcome.
type Response struct {
	Outcome        Outcome                    `json:"outcome"`
	Message        string                     `json:"message"`
	Meal           *meal.MealData             `json:"meal,omitempty"`
	Clarifications []extraction.Clarification `json:"clarifications,omitempty"`
	Confidence     float64                    `json:"confidence"`
}

// Service runs the full utterance pipeline: normalize, translate, extract,
// clarify or assemble, then record the turn into the session.
type Service struct {
	translator *hinglish.Translator
	extractor  *extraction.Extractor
	resolver   *extraction.Resolver
	assembler  *meal.Assembler
	sessions   *session.Manager
	metrics    *metrics.PipelineMetrics
	logger     *logging.Logger
	tracer     trace.Tracer
}

// ServiceConfig configures the utterance service. Sessions and Metrics are
// optional; everything else is required.
type ServiceConfig struct {
	Translator *hinglish.Translator
	Extractor  *extraction.Extractor
	Resolver   *extraction.Resolver
	Assembler  *meal.Assembler
	Sessions   *session.Manager
	Metrics    *metrics.PipelineMetrics
	Logger     *logging.Logger
}

// NewService creates the utterance pipeline service.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Translator == nil {
		panic("pipeline: translator cannot be nil")
	}
	if cfg.Extractor == nil {
		panic("pipeline: extractor cannot be nil")
	}
	if cfg.Resolver == nil {
		panic("pipeline: resolver cannot be nil")
	}
	if cfg.Assembler == nil {
		panic("pipeline: assembler cannot be nil")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		translator: cfg.Translator,
		extractor:  cfg.Extractor,
		resolver:   cfg.Resolver,
		assembler:  cfg.Assembler,
		sessions:   cfg.Sessions,
		metrics:    cfg.Metrics,
		logger:     logger,
		tracer:     serviceTracer,
	}
}

// ProcessUtterance runs one utterance through the pipeline. Any ambiguity
// halts the turn with clarification questions; nothing is logged until the
// user answers. A turn where no item resolves comes back as not
// understood, still a valid response.
func (s *Service) ProcessUtterance(ctx context.Context, req Request) (*Response, error) {
	ctx, span := s.tracer.Start(ctx, "pipeline.process_utterance")
	defer span.End()
	start := time.Now()

	normalized := hinglish.Normalize(req.Utterance)
	translated := s.translator.Translate(normalized)
	span.SetAttributes(attribute.String("pipeline.translated", translated))

	result := s.extractor.Extract(ctx, translated)
	s.metrics.ObserveItemsExtracted(len(result.Items))

	if len(result.Ambiguities) > 0 {
		clarifications := s.resolver.Clarify(result.Ambiguities)
		resp := &Response{
			Outcome:        OutcomeClarification,
			Message:        clarifications[0].Question,
			Clarifications: clarifications,
			Confidence:     result.Confidence,
		}
		s.recordTurn(ctx, req, resp.Message, session.TurnTypeClarification)
		s.finish(span, OutcomeClarification, start)
		return resp, nil
	}

	mealData, err := s.assembler.Assemble(ctx, req.Utterance, req.UserID, result.Items)
	if err != nil {
		if errors.Is(err, meal.ErrNotUnderstood) {
			resp := &Response{
				Outcome:    OutcomeNotUnderstood,
				Message:    "Maaf kijiye, main samajh nahi paya. Kya aap bata sakte hain ki aapne kya khaya?",
				Confidence: result.Confidence,
			}
			s.recordTurn(ctx, req, resp.Message, session.TurnTypeGeneral)
			s.finish(span, OutcomeNotUnderstood, start)
			return resp, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("pipeline: failed to assemble meal: %w", err)
	}

	message := s.mealMessage(ctx, req, mealData)
	resp := &Response{
		Outcome:    OutcomeMealLogged,
		Message:    message,
		Meal:       mealData,
		Confidence: mealData.ConfidenceScore,
	}
	s.recordMeal(ctx, req, mealData, message)
	s.finish(span, OutcomeMealLogged, start)
	return resp, nil
}

func (s *Service) finish(span trace.Span, outcome Outcome, start time.Time) {
	span.SetAttributes(attribute.String("pipeline.outcome", string(outcome)))
	s.metrics.ObserveUtterance(string(outcome), time.Since(start).Seconds())
}

// mealMessage builds the confirmation, augmented with session context when
// one is attached.
func (s *Service) mealMessage(ctx context.Context, req Request, m *meal.MealData) string {
	base := fmt.Sprintf("Log kar liya! %s mein %d item, lagbhag %.0f calories.",
		m.MealType, len(m.Items), m.Summary.TotalCalories)
	if s.sessions == nil || req.SessionID == "" {
		return base
	}
	augmented, err := s.sessions.GenerateContextualResponse(ctx, req.SessionID, req.Utterance, base)
	if err != nil {
		return base
	}
	return augmented
}

// recordTurn appends the exchange to the session history. Session recording
// is best-effort; a storage hiccup must not fail the user-visible turn.
func (s *Service) recordTurn(ctx context.Context, req Request, response string, turnType session.TurnType) {
	if s.sessions == nil || req.SessionID == "" {
		return
	}
	err := s.sessions.AddConversationTurn(ctx, req.SessionID, session.ConversationTurn{
		UserInput:      req.Utterance,
		SystemResponse: response,
		Type:           turnType,
	})
	if err != nil {
		s.logger.Warn("failed to record conversation turn", "session_id", req.SessionID, "error", err)
	}
}

func (s *Service) recordMeal(ctx context.Context, req Request, m *meal.MealData, response string) {
	if s.sessions == nil || req.SessionID == "" {
		return
	}
	if err := s.sessions.AddMealToContext(ctx, req.SessionID, *m); err != nil {
		s.logger.Warn("failed to record meal in session", "session_id", req.SessionID, "error", err)
	}
	s.recordTurn(ctx, req, response, session.TurnTypeMealLog)
}
