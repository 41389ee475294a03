package voice

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/poshanai/khana-ai-platform/internal/meal"
	"github.com/poshanai/khana-ai-platform/internal/pipeline"
	"github.com/poshanai/khana-ai-platform/internal/session"
	"github.com/poshanai/khana-ai-platform/pkg/logging"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// InboundFrame is what the speech service sends over the socket.
type InboundFrame struct {
	Type   string `json:"type"` // "transcript", "interrupt", "resume", "end", "ping"
	Text   string `json:"text,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// OutboundFrame is what the gateway pushes back.
type OutboundFrame struct {
	Type           string                     `json:"type"` // "session", "response", "resumed", "pong", "error"
	SessionID      string                     `json:"session_id,omitempty"`
	Outcome        pipeline.Outcome           `json:"outcome,omitempty"`
	Message        string                     `json:"message,omitempty"`
	Meal           *meal.MealData             `json:"meal,omitempty"`
	Clarifications []extractionClarifications `json:"clarifications,omitempty"`
}

type extractionClarifications struct {
	Term     string   `json:"term"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// Gateway bridges transcript frames from the speech service to the
// utterance pipeline. Speech-to-text itself happens upstream; the gateway
// only sees final transcripts.
type Gateway struct {
	service  *pipeline.Service
	sessions *session.Manager
	logger   *logging.Logger

	mu      sync.RWMutex
	conns   map[string]*websocket.Conn // sessionID -> active connection
	writeMu sync.Mutex                 // gorilla permits one concurrent writer
}

// NewGateway creates a transcript gateway.
func NewGateway(service *pipeline.Service, sessions *session.Manager, logger *logging.Logger) *Gateway {
	if service == nil {
		panic("voice: pipeline service cannot be nil")
	}
	if sessions == nil {
		panic("voice: session manager cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Gateway{
		service:  service,
		sessions: sessions,
		logger:   logger,
		conns:    make(map[string]*websocket.Conn),
	}
}

// HandleWebSocket upgrades the connection and serves transcript frames.
// Query params: user (required), session (optional, resumes an existing
// session when present).
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user")
	if userID == "" {
		http.Error(w, "user parameter required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("voice: websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID, err = g.sessions.StartSession(ctx, userID, session.Seed{})
		if err != nil {
			g.send(conn, OutboundFrame{Type: "error", Message: "failed to start session"})
			return
		}
	}

	g.register(sessionID, conn)
	defer g.unregister(sessionID, conn)

	g.send(conn, OutboundFrame{Type: "session", SessionID: sessionID})
	g.logger.Info("voice: connection opened", "session_id", sessionID, "user_id", userID)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.logger.Debug("voice: connection closed", "session_id", sessionID, "error", err)
			}
			// A dropped socket is an interruption, not an end.
			g.sessions.HandleInterruption(ctx, sessionID, "connection lost")
			return
		}

		var frame InboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			g.send(conn, OutboundFrame{Type: "error", SessionID: sessionID, Message: "invalid frame"})
			continue
		}

		switch frame.Type {
		case "ping":
			g.send(conn, OutboundFrame{Type: "pong", SessionID: sessionID})
		case "transcript":
			g.handleTranscript(ctx, conn, sessionID, userID, frame.Text)
		case "interrupt":
			g.sessions.HandleInterruption(ctx, sessionID, frame.Reason)
		case "resume":
			g.handleResume(ctx, conn, sessionID)
		case "end":
			if err := g.sessions.EndSession(ctx, sessionID); err != nil {
				g.logger.Warn("voice: failed to end session", "session_id", sessionID, "error", err)
			}
			return
		default:
			g.send(conn, OutboundFrame{Type: "error", SessionID: sessionID, Message: "unknown frame type: " + frame.Type})
		}
	}
}

func (g *Gateway) handleTranscript(ctx context.Context, conn *websocket.Conn, sessionID, userID, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	resp, err := g.service.ProcessUtterance(ctx, pipeline.Request{
		SessionID: sessionID,
		UserID:    userID,
		Utterance: text,
	})
	if err != nil {
		g.logger.Error("voice: failed to process transcript", "session_id", sessionID, "error", err)
		g.send(conn, OutboundFrame{Type: "error", SessionID: sessionID, Message: "Kuch gadbad ho gayi, dobara boliye."})
		return
	}

	out := OutboundFrame{
		Type:      "response",
		SessionID: sessionID,
		Outcome:   resp.Outcome,
		Message:   resp.Message,
	}
	if resp.Meal != nil {
		out.Meal = resp.Meal
	}
	for _, c := range resp.Clarifications {
		out.Clarifications = append(out.Clarifications, extractionClarifications{
			Term:     c.Term,
			Question: c.Question,
			Options:  c.Options,
		})
	}
	g.send(conn, out)
}

func (g *Gateway) handleResume(ctx context.Context, conn *websocket.Conn, sessionID string) {
	message, err := g.sessions.ResumeConversation(ctx, sessionID)
	if err != nil {
		g.send(conn, OutboundFrame{Type: "error", SessionID: sessionID, Message: "session is not interrupted"})
		return
	}
	g.send(conn, OutboundFrame{Type: "resumed", SessionID: sessionID, Message: message})
}

func (g *Gateway) register(sessionID string, conn *websocket.Conn) {
	g.mu.Lock()
	g.conns[sessionID] = conn
	g.mu.Unlock()
}

func (g *Gateway) unregister(sessionID string, conn *websocket.Conn) {
	g.mu.Lock()
	if g.conns[sessionID] == conn {
		delete(g.conns, sessionID)
	}
	g.mu.Unlock()
}

// SendToSession pushes a frame to an active connection, if one exists.
func (g *Gateway) SendToSession(sessionID string, frame OutboundFrame) {
	g.mu.RLock()
	conn, ok := g.conns[sessionID]
	g.mu.RUnlock()
	if !ok {
		return
	}
	g.send(conn, frame)
}

func (g *Gateway) send(conn *websocket.Conn, frame OutboundFrame) {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()
	if err := conn.WriteJSON(frame); err != nil {
		g.logger.Debug("voice: failed to write frame", "error", err)
	}
}
