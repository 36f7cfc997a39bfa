package webchat

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/frontdeskai/webchat-service/internal/chat"
	"github.com/frontdeskai/webchat-service/internal/observability/metrics"
	"github.com/frontdeskai/webchat-service/pkg/logging"
)

// Inbound message types accepted over the WebSocket.
const (
	inboundOpen          = "open"
	inboundClose         = "close"
	inboundMessage       = "message"
	inboundAction        = "action"
	inboundDismissBubble = "dismiss_bubble"
	inboundPing          = "ping"
)

// InboundMessage is what the widget sends.
type InboundMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id,omitempty"`
	Text      string `json:"text,omitempty"`
	Action    string `json:"action,omitempty"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type      string   `json:"type"` // "session", "message", "typing", "bubble", "pong", "error"
	SessionID string   `json:"session_id,omitempty"`
	ID        string   `json:"id,omitempty"`
	Sender    string   `json:"sender,omitempty"`
	Text      string   `json:"text,omitempty"`
	Options   []string `json:"options,omitempty"`
	Typing    bool     `json:"typing,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
}

func outboundFromEvent(sessionID string, e chat.Event) OutboundMessage {
	switch e.Type {
	case chat.EventMessage:
		return OutboundMessage{
			Type:      "message",
			SessionID: sessionID,
			ID:        e.Message.ID,
			Sender:    string(e.Message.Sender),
			Text:      e.Message.Content,
			Options:   e.Options,
			Timestamp: e.Message.CreatedAt.Format(time.RFC3339),
		}
	case chat.EventTyping:
		return OutboundMessage{Type: "typing", SessionID: sessionID, Typing: e.Typing}
	default:
		return OutboundMessage{Type: "bubble", SessionID: sessionID, Text: chat.BubbleText}
	}
}

// Config wires the handler's collaborators.
type Config struct {
	Logger      *logging.Logger
	Transcript  *chat.TranscriptStore
	Submitter   chat.LeadSubmitter
	Metrics     *metrics.ChatMetrics
	TypingDelay time.Duration
	BubbleDelay time.Duration
	// HistoryLimit caps history replay; <= 0 means everything stored.
	HistoryLimit int64
}

// Handler manages widget sessions and their connections. Sessions live for
// the process lifetime; reconnecting with the same session ID resumes the
// same controller and conversation state.
type Handler struct {
	logger       *logging.Logger
	transcript   *chat.TranscriptStore
	submitter    chat.LeadSubmitter
	metrics      *metrics.ChatMetrics
	typingDelay  time.Duration
	bubbleDelay  time.Duration
	historyLimit int64

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewHandler creates a web chat handler.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		logger:       logger,
		transcript:   cfg.Transcript,
		submitter:    cfg.Submitter,
		metrics:      cfg.Metrics,
		typingDelay:  cfg.TypingDelay,
		bubbleDelay:  cfg.BubbleDelay,
		historyLimit: cfg.HistoryLimit,
		sessions:     make(map[string]*session),
	}
}

// generateSessionID creates a random session identifier.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}

// getOrCreateSession resolves a session, creating a controller for new IDs.
func (h *Handler) getOrCreateSession(id string) (*session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.sessions[id]; ok {
		return s, false
	}
	s := newSession(id, h)
	h.sessions[id] = s
	return s, true
}

// HandleWebSocket upgrades to WebSocket and handles real-time messaging.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = generateSessionID()
	}

	s, created := h.getOrCreateSession(sessionID)
	s.attachConn(conn)
	defer s.detachConn(conn)

	h.metrics.SessionOpened()
	defer h.metrics.SessionClosed()

	_ = websocket.JSON.Send(conn, OutboundMessage{Type: "session", SessionID: sessionID})

	// Replay persisted history on reconnect.
	if !created {
		for _, msg := range h.history(r, sessionID, s) {
			_ = websocket.JSON.Send(conn, OutboundMessage{
				Type:      "message",
				SessionID: sessionID,
				ID:        msg.ID,
				Sender:    string(msg.Sender),
				Text:      msg.Content,
				Timestamp: msg.CreatedAt.Format(time.RFC3339),
			})
		}
	}

	h.logger.Info("webchat: connection opened", "session_id", sessionID, "new_session", created)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("webchat: connection closed", "session_id", sessionID, "error", err)
			// The visible widget is gone: cancel pending typing timers.
			s.controller.Close()
			return
		}
		h.handleInbound(s, conn, msg)
	}
}

func (h *Handler) handleInbound(s *session, conn *websocket.Conn, msg InboundMessage) {
	switch msg.Type {
	case inboundPing:
		_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong", SessionID: s.id})
	case inboundOpen:
		s.controller.Open()
	case inboundClose:
		s.controller.Close()
	case inboundDismissBubble:
		s.controller.DismissBubble()
	case inboundMessage:
		if strings.TrimSpace(msg.Text) == "" {
			return
		}
		s.markInbound()
		s.controller.SubmitUserInput(msg.Text)
	case inboundAction:
		if msg.Action == "" {
			return
		}
		s.markInbound()
		s.controller.SelectQuickAction(msg.Action)
	default:
		_ = websocket.JSON.Send(conn, OutboundMessage{Type: "error", SessionID: s.id, Text: "unknown message type"})
	}
}

func (h *Handler) history(r *http.Request, sessionID string, s *session) []chat.Message {
	if h.transcript != nil {
		if msgs, err := h.transcript.List(r.Context(), sessionID, h.historyLimit); err == nil && len(msgs) > 0 {
			return msgs
		}
	}
	return s.controller.Messages()
}

// messageResponse is the synchronous HTTP fallback reply shape.
type messageResponse struct {
	SessionID string           `json:"session_id"`
	State     string           `json:"state"`
	Reply     *OutboundMessage `json:"reply,omitempty"`
}

// HandleMessage is the HTTP fallback for clients without WebSocket support:
// the bot reply is returned in the response body.
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req InboundMessage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}
	h.fallback(w, req.SessionID, func(s *session) {
		s.controller.SubmitUserInput(req.Text)
	})
}

// HandleAction is the HTTP fallback for quick-action buttons.
func (h *Handler) HandleAction(w http.ResponseWriter, r *http.Request) {
	var req InboundMessage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Action == "" {
		http.Error(w, "action is required", http.StatusBadRequest)
		return
	}
	h.fallback(w, req.SessionID, func(s *session) {
		s.controller.SelectQuickAction(req.Action)
	})
}

// fallback runs one controller operation for an HTTP client and waits for
// the resulting bot message.
func (h *Handler) fallback(w http.ResponseWriter, sessionID string, op func(*session)) {
	if sessionID == "" {
		sessionID = generateSessionID()
	}
	s, _ := h.getOrCreateSession(sessionID)

	// HTTP clients have no separate open signal; opening is idempotent and
	// ensures the welcome message exists before the first input.
	s.controller.Open()

	sink, remove := s.addSink()
	defer remove()

	s.markInbound()
	op(s)

	reply := h.awaitBotMessage(sink)

	resp := messageResponse{
		SessionID: sessionID,
		State:     string(s.controller.State()),
	}
	if reply != nil {
		out := outboundFromEvent(sessionID, *reply)
		resp.Reply = &out
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *Handler) awaitBotMessage(sink chan chat.Event) *chat.Event {
	timeout := time.NewTimer(h.typingDelay + 3*time.Second)
	defer timeout.Stop()
	for {
		select {
		case e := <-sink:
			if e.Type == chat.EventMessage && e.Message.Sender == chat.SenderBot {
				return &e
			}
		case <-timeout.C:
			return nil
		}
	}
}

// HandleHistory returns chat history for a session.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	var msgs []chat.Message
	if h.transcript != nil {
		var err error
		msgs, err = h.transcript.List(r.Context(), sessionID, h.historyLimit)
		if err != nil {
			h.logger.Error("webchat: failed to load history", "error", err, "session_id", sessionID)
			http.Error(w, "failed to load history", http.StatusInternalServerError)
			return
		}
	} else {
		h.mu.RLock()
		s, ok := h.sessions[sessionID]
		h.mu.RUnlock()
		if ok {
			msgs = s.controller.Messages()
		}
	}

	out := make([]OutboundMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, OutboundMessage{
			Type:      "message",
			ID:        m.ID,
			Sender:    string(m.Sender),
			Text:      m.Content,
			Timestamp: m.CreatedAt.Format(time.RFC3339),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"session_id": sessionID, "messages": out})
}

// Shutdown disposes every live session, cancelling outstanding timers.
func (h *Handler) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.sessions {
		s.controller.Dispose()
	}
	h.sessions = make(map[string]*session)
}
