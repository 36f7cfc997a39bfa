package webchat

import (
	"context"
	"sync"
	"time"

	"golang.org/x/net/websocket"

	"github.com/frontdeskai/webchat-service/internal/chat"
)

// session binds one widget controller to its delivery channels: an optional
// live WebSocket plus any number of transient sinks (used by the HTTP
// fallback to wait for a reply). All controller events flow through
// dispatch.
type session struct {
	id         string
	handler    *Handler
	controller *chat.Controller

	mu          sync.Mutex
	conn        *websocket.Conn
	sinks       map[chan chat.Event]struct{}
	lastInbound time.Time
}

func newSession(id string, h *Handler) *session {
	s := &session{
		id:      id,
		handler: h,
		sinks:   make(map[chan chat.Event]struct{}),
	}
	s.controller = chat.NewController(chat.Options{
		Submitter:   h.submitter,
		Logger:      h.logger,
		TypingDelay: h.typingDelay,
		BubbleDelay: h.bubbleDelay,
		Listener:    s.dispatch,
	})
	s.controller.Mount()
	return s
}

// attachConn replaces the session's live WebSocket.
func (s *session) attachConn(conn *websocket.Conn) {
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
}

// detachConn drops the WebSocket if it is still the given one.
func (s *session) detachConn(conn *websocket.Conn) {
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	s.mu.Unlock()
}

// addSink registers a transient event receiver; the returned func removes it.
func (s *session) addSink() (chan chat.Event, func()) {
	ch := make(chan chat.Event, 16)
	s.mu.Lock()
	s.sinks[ch] = struct{}{}
	s.mu.Unlock()
	return ch, func() {
		s.mu.Lock()
		delete(s.sinks, ch)
		s.mu.Unlock()
	}
}

// markInbound records the submit time for reply-latency measurement.
func (s *session) markInbound() {
	s.mu.Lock()
	s.lastInbound = time.Now()
	s.mu.Unlock()
}

// dispatch fans a controller event out to the transcript store, metrics,
// the live WebSocket, and any waiting sinks.
func (s *session) dispatch(e chat.Event) {
	if e.Type == chat.EventMessage {
		if err := s.handler.transcript.Append(context.Background(), s.id, e.Message); err != nil {
			s.handler.logger.Error("webchat: transcript append failed", "error", err, "session_id", s.id)
		}
		s.handler.metrics.ObserveMessage(string(e.Message.Sender))
		if e.Message.Sender == chat.SenderBot {
			s.mu.Lock()
			if !s.lastInbound.IsZero() {
				s.handler.metrics.ObserveReplyLatency(time.Since(s.lastInbound).Seconds())
				s.lastInbound = time.Time{}
			}
			s.mu.Unlock()
		}
	}

	s.mu.Lock()
	conn := s.conn
	sinks := make([]chan chat.Event, 0, len(s.sinks))
	for ch := range s.sinks {
		sinks = append(sinks, ch)
	}
	s.mu.Unlock()

	if conn != nil {
		_ = websocket.JSON.Send(conn, outboundFromEvent(s.id, e))
	}
	for _, ch := range sinks {
		select {
		case ch <- e:
		default: // slow sink, drop rather than block the controller
		}
	}
}
