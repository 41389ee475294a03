package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/poshanai/khana-ai-platform/pkg/logging"
)

// Handler provides HTTP endpoints for session lifecycle management.
type Handler struct {
	manager *Manager
	logger  *logging.Logger
}

// NewHandler creates a new session HTTP handler.
func NewHandler(manager *Manager, logger *logging.Logger) *Handler {
	if manager == nil {
		panic("session: manager cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		manager: manager,
		logger:  logger,
	}
}

// Routes returns a chi router with session routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.StartSession)
	r.Get("/{sessionID}", h.GetSession)
	r.Post("/{sessionID}/interrupt", h.Interrupt)
	r.Post("/{sessionID}/resume", h.Resume)
	r.Post("/{sessionID}/end", h.End)
	return r
}

// StartSessionRequest is the request body for starting a session.
type StartSessionRequest struct {
	UserID          string            `json:"user_id"`
	UserPreferences map[string]string `json:"user_preferences,omitempty"`
	Goals           []string          `json:"goals,omitempty"`
}

// StartSession creates a new active session for a user.
// POST /v1/sessions
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid JSON body"}`, http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		http.Error(w, `{"error": "user_id required"}`, http.StatusBadRequest)
		return
	}

	id, err := h.manager.StartSession(r.Context(), req.UserID, Seed{
		UserPreferences: req.UserPreferences,
		Goals:           req.Goals,
	})
	if err != nil {
		h.logger.Error("failed to start session", "user_id", req.UserID, "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"session_id": id})
}

// GetSession returns the full session record.
// GET /v1/sessions/{sessionID}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	sess, err := h.manager.GetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, `{"error": "session not found"}`, http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load session", "session_id", sessionID, "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(sess); err != nil {
		h.logger.Error("failed to encode session", "session_id", sessionID, "error", err)
	}
}

// InterruptRequest is the request body for interrupting a session.
type InterruptRequest struct {
	Reason string `json:"reason"`
}

// Interrupt marks a session interrupted. Unknown ids return 204 too; the
// manager treats them as a no-op.
// POST /v1/sessions/{sessionID}/interrupt
func (h *Handler) Interrupt(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req InterruptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid JSON body"}`, http.StatusBadRequest)
		return
	}

	h.manager.HandleInterruption(r.Context(), sessionID, req.Reason)
	w.WriteHeader(http.StatusNoContent)
}

// Resume transitions an interrupted session back to active and returns
// the resumption message.
// POST /v1/sessions/{sessionID}/resume
func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	message, err := h.manager.ResumeConversation(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			http.Error(w, `{"error": "session not found"}`, http.StatusNotFound)
		case errors.Is(err, ErrInvalidStateTransition):
			http.Error(w, `{"error": "session is not interrupted"}`, http.StatusConflict)
		default:
			h.logger.Error("failed to resume session", "session_id", sessionID, "error", err)
			http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// End moves a session to the terminal ended state.
// POST /v1/sessions/{sessionID}/end
func (h *Handler) End(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.manager.EndSession(r.Context(), sessionID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, `{"error": "session not found"}`, http.StatusNotFound)
			return
		}
		h.logger.Error("failed to end session", "session_id", sessionID, "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
