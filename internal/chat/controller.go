package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/frontdeskai/webchat-service/pkg/logging"
)

// Quick action identifiers understood by SelectQuickAction. Business
// category buttons pass the category label itself.
const (
	ActionStartTrial = "start_trial"
	ActionLearnMore  = "learn_more"
)

// BubbleText is the one-time delayed prompt shown before the widget is
// opened.
const BubbleText = `Hi! Have a question about FrontDesk AI? I'm here, and I can set up your free trial in under a minute.`

const submitTimeout = 10 * time.Second

// LeadSubmitter sends a completed record to the lead-capture backend.
type LeadSubmitter interface {
	SubmitLead(ctx context.Context, lead LeadRecord) error
}

// EventType tags controller events pushed to the UI layer.
type EventType string

const (
	EventMessage EventType = "message"
	EventTyping  EventType = "typing"
	EventBubble  EventType = "bubble"
)

// Event is a UI-facing notification: a new message, a typing-indicator
// toggle, or the bubble prompt.
type Event struct {
	Type    EventType
	Message Message
	Options []string
	Typing  bool
}

// Options configures a Controller.
type Options struct {
	Classifier  *Classifier
	Submitter   LeadSubmitter
	Logger      *logging.Logger
	TypingDelay time.Duration
	BubbleDelay time.Duration
	// Listener receives UI events. Called without the controller lock held;
	// it may call back into the controller.
	Listener func(Event)
}

// Controller orchestrates one widget session: the message log, the
// lead-collection state machine, visibility state, and the presentational
// timers. All bot replies pass through a cancellable typing delay; closing
// the widget cancels everything pending so nothing appends after close.
type Controller struct {
	mu      sync.Mutex
	log     *MessageLog
	machine *StateMachine
	leads   LeadSubmitter
	logger  *logging.Logger

	typingDelay time.Duration
	bubbleDelay time.Duration
	listener    func(Event)

	open            bool
	disposed        bool
	bubbleDismissed bool
	bubbleShown     bool
	bubbleTimer     *time.Timer

	pending map[*time.Timer]struct{}

	// submitGen invalidates in-flight lead submissions when the widget
	// closes or collection restarts.
	submitGen int
}

// NewController builds a controller for a fresh session.
func NewController(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	listener := opts.Listener
	if listener == nil {
		listener = func(Event) {}
	}
	return &Controller{
		log:         NewMessageLog(),
		machine:     NewStateMachine(opts.Classifier),
		leads:       opts.Submitter,
		logger:      logger,
		typingDelay: opts.TypingDelay,
		bubbleDelay: opts.BubbleDelay,
		listener:    listener,
		pending:     make(map[*time.Timer]struct{}),
	}
}

// Mount arms the one-time bubble prompt timer. The bubble fires only if the
// widget has not been opened or dismissed by then.
func (c *Controller) Mount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed || c.bubbleTimer != nil || c.bubbleDelay <= 0 {
		return
	}
	c.bubbleTimer = time.AfterFunc(c.bubbleDelay, c.fireBubble)
}

func (c *Controller) fireBubble() {
	c.mu.Lock()
	if c.disposed || c.open || c.bubbleDismissed || c.bubbleShown {
		c.mu.Unlock()
		return
	}
	c.bubbleShown = true
	c.mu.Unlock()
	c.listener(Event{Type: EventBubble})
}

// DismissBubble permanently hides the bubble prompt for this session.
func (c *Controller) DismissBubble() {
	c.mu.Lock()
	c.bubbleDismissed = true
	if c.bubbleTimer != nil {
		c.bubbleTimer.Stop()
	}
	c.mu.Unlock()
}

// Open makes the widget visible. On the first open with an empty log the
// welcome message is appended immediately (no typing delay).
func (c *Controller) Open() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.open = true
	if c.bubbleTimer != nil {
		c.bubbleTimer.Stop()
	}
	var welcome *Event
	if c.log.Len() == 0 {
		reply := c.machine.WelcomeReply()
		msg := c.log.Append(NewMessage(SenderBot, reply.Text))
		welcome = &Event{Type: EventMessage, Message: msg, Options: reply.Options}
	}
	c.mu.Unlock()
	if welcome != nil {
		c.listener(*welcome)
	}
}

// Close hides the widget and cancels all pending bot-reply timers, so no
// message appends happen after close. In-flight lead submissions become
// stale and their results are discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	c.open = false
	c.submitGen++
	c.cancelPendingLocked()
	c.mu.Unlock()
}

// Dispose tears the session down: cancels every timer and rejects all
// further input. Safe to call more than once.
func (c *Controller) Dispose() {
	c.mu.Lock()
	c.disposed = true
	c.open = false
	c.submitGen++
	if c.bubbleTimer != nil {
		c.bubbleTimer.Stop()
	}
	c.cancelPendingLocked()
	c.mu.Unlock()
}

func (c *Controller) cancelPendingLocked() {
	for t := range c.pending {
		t.Stop()
		delete(c.pending, t)
	}
}

// IsOpen reports widget visibility.
func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// State returns the conversation state.
func (c *Controller) State() ConversationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.State()
}

// Lead returns the record collected so far.
func (c *Controller) Lead() LeadRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Lead()
}

// Messages returns the ordered transcript.
func (c *Controller) Messages() []Message {
	return c.log.All()
}

// SubmitUserInput logs the user's text and schedules the state machine's
// reply behind the typing delay. Blank input is ignored entirely.
func (c *Controller) SubmitUserInput(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	userMsg := c.log.Append(NewMessage(SenderUser, text))
	reply := c.machine.Submit(text)
	c.mu.Unlock()

	c.listener(Event{Type: EventMessage, Message: userMsg})
	c.scheduleReply(reply)
}

// SelectQuickAction handles the discrete buttons: start trial, learn more,
// and the business-category choices. No text classification is involved.
func (c *Controller) SelectQuickAction(action string) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}

	var reply Reply
	var submit bool
	switch action {
	case ActionStartTrial:
		// Restarting collection invalidates any in-flight submission.
		c.submitGen++
		reply = c.machine.StartTrial()
	case ActionLearnMore:
		reply = c.machine.LearnMore()
	default:
		wasCollecting := c.machine.State() == StateCollectingBusiness
		reply = c.machine.SelectBusinessCategory(action)
		submit = wasCollecting && c.machine.State() == StateComplete
	}
	lead := c.machine.Lead()
	c.mu.Unlock()

	c.scheduleReply(reply)
	if submit {
		c.submitLead(lead)
	}
}

// scheduleReply appends the bot reply after the typing delay. A zero delay
// delivers inline, which the HTTP fallback and tests rely on.
func (c *Controller) scheduleReply(reply Reply) {
	if reply.Text == "" {
		return
	}
	c.listener(Event{Type: EventTyping, Typing: true})

	if c.typingDelay <= 0 {
		c.deliverReply(reply)
		return
	}

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	var timer *time.Timer
	timer = time.AfterFunc(c.typingDelay, func() {
		c.mu.Lock()
		if _, live := c.pending[timer]; !live {
			c.mu.Unlock()
			return
		}
		delete(c.pending, timer)
		c.mu.Unlock()
		c.deliverReply(reply)
	})
	c.pending[timer] = struct{}{}
	c.mu.Unlock()
}

func (c *Controller) deliverReply(reply Reply) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	msg := c.log.Append(NewMessage(SenderBot, reply.Text))
	c.mu.Unlock()

	c.listener(Event{Type: EventTyping, Typing: false})
	c.listener(Event{Type: EventMessage, Message: msg, Options: reply.Options})
}

// submitLead pushes the finished record to the backend. The result is
// discarded if the widget closed or collection restarted in the meantime;
// on failure the machine rolls back so the user can retry the category
// button.
func (c *Controller) submitLead(lead LeadRecord) {
	if c.leads == nil {
		return
	}
	c.mu.Lock()
	gen := c.submitGen
	c.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		err := c.leads.SubmitLead(ctx, lead)

		c.mu.Lock()
		if c.disposed || gen != c.submitGen {
			c.mu.Unlock()
			return // stale: widget closed or collection restarted
		}
		if err == nil {
			c.mu.Unlock()
			c.logger.Info("chat: lead submitted", "business_category", lead.BusinessCategory)
			return
		}
		reply := c.machine.FailSubmission()
		c.mu.Unlock()

		c.logger.Error("chat: lead submission failed", "error", err)
		c.scheduleReply(reply)
	}()
}
