package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeSubmitter records submissions and can be told to fail or to block
// until released.
type fakeSubmitter struct {
	mu    sync.Mutex
	leads []LeadRecord
	err   error
	gate  chan struct{}
}

func (f *fakeSubmitter) SubmitLead(_ context.Context, lead LeadRecord) error {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.leads = append(f.leads, lead)
	return nil
}

func (f *fakeSubmitter) submitted() []LeadRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]LeadRecord, len(f.leads))
	copy(out, f.leads)
	return out
}

func (f *fakeSubmitter) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

// eventRecorder captures controller events for assertions.
type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *eventRecorder) record(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *eventRecorder) all() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *eventRecorder) count(typ EventType) int {
	n := 0
	for _, e := range r.all() {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func newTestController(t *testing.T, opts Options) (*Controller, *eventRecorder) {
	t.Helper()
	rec := &eventRecorder{}
	opts.Listener = rec.record
	c := NewController(opts)
	t.Cleanup(c.Dispose)
	return c, rec
}

func TestFirstOpenAppendsWelcome(t *testing.T) {
	c, rec := newTestController(t, Options{})

	c.Open()
	msgs := c.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, SenderBot, msgs[0].Sender)
	require.Equal(t, 1, rec.count(EventMessage))

	// Reopening does not duplicate the welcome.
	c.Close()
	c.Open()
	require.Len(t, c.Messages(), 1)
}

func TestEndToEndTrialSignup(t *testing.T) {
	sub := &fakeSubmitter{}
	c, _ := newTestController(t, Options{Submitter: sub})

	c.Open()
	c.SelectQuickAction(ActionStartTrial)
	c.SubmitUserInput("Jane")
	c.SubmitUserInput("jane@example.com")
	c.SubmitUserInput("555-1234")
	c.SelectQuickAction("Law Firm")

	require.Equal(t, StateComplete, c.State())
	require.Equal(t, LeadRecord{
		Name:             "Jane",
		Email:            "jane@example.com",
		Phone:            "555-1234",
		BusinessCategory: "Law Firm",
	}, c.Lead())

	require.Eventually(t, func() bool {
		return len(sub.submitted()) == 1
	}, time.Second, 5*time.Millisecond, "lead should reach the backend")
	require.Equal(t, "Law Firm", sub.submitted()[0].BusinessCategory)

	// welcome + ask name + 3 user inputs + 3 prompts + completion = 9
	require.Len(t, c.Messages(), 9)
}

func TestEndToEndInterruption(t *testing.T) {
	c, _ := newTestController(t, Options{})

	c.Open()
	c.SelectQuickAction(ActionStartTrial)
	c.SubmitUserInput("Jane")
	c.SubmitUserInput("What is your pricing?")

	require.Equal(t, StateFreeform, c.State())
	require.Empty(t, c.Lead().Email)

	msgs := c.Messages()
	require.Equal(t, AnswerText(AnswerPricing), msgs[len(msgs)-1].Content)
}

func TestBlankInputIgnored(t *testing.T) {
	c, _ := newTestController(t, Options{})
	c.Open()
	before := len(c.Messages())

	c.SubmitUserInput("")
	c.SubmitUserInput("   ")
	require.Len(t, c.Messages(), before)
}

func TestCloseCancelsPendingReply(t *testing.T) {
	c, _ := newTestController(t, Options{TypingDelay: 30 * time.Millisecond})

	c.Open()
	c.SubmitUserInput("What is your pricing?")
	// user message is visible, bot reply still pending
	require.Len(t, c.Messages(), 2)

	c.Close()
	time.Sleep(80 * time.Millisecond)
	require.Len(t, c.Messages(), 2, "no appends after close")

	// Reopen must not replay stale typing state.
	c.Open()
	time.Sleep(80 * time.Millisecond)
	require.Len(t, c.Messages(), 2)
}

func TestDelayedReplyArrives(t *testing.T) {
	c, rec := newTestController(t, Options{TypingDelay: 10 * time.Millisecond})

	c.Open()
	c.SubmitUserInput("What is your pricing?")

	require.Eventually(t, func() bool {
		return len(c.Messages()) == 3
	}, time.Second, 2*time.Millisecond)

	// typing on, then off once the reply lands
	require.GreaterOrEqual(t, rec.count(EventTyping), 2)
	msgs := c.Messages()
	require.Equal(t, AnswerText(AnswerPricing), msgs[2].Content)
}

func TestBubblePrompt(t *testing.T) {
	c, rec := newTestController(t, Options{BubbleDelay: 15 * time.Millisecond})

	c.Mount()
	require.Eventually(t, func() bool {
		return rec.count(EventBubble) == 1
	}, time.Second, 2*time.Millisecond)
}

func TestBubbleSuppressedByOpen(t *testing.T) {
	c, rec := newTestController(t, Options{BubbleDelay: 30 * time.Millisecond})

	c.Mount()
	c.Open()
	time.Sleep(80 * time.Millisecond)
	require.Zero(t, rec.count(EventBubble))
}

func TestBubbleDismissalIsPermanent(t *testing.T) {
	c, rec := newTestController(t, Options{BubbleDelay: 30 * time.Millisecond})

	c.Mount()
	c.DismissBubble()
	time.Sleep(80 * time.Millisecond)
	require.Zero(t, rec.count(EventBubble))
}

func TestSubmitFailureRollsBackAndRetries(t *testing.T) {
	sub := &fakeSubmitter{}
	sub.setErr(errors.New("backend down"))
	c, _ := newTestController(t, Options{Submitter: sub})

	c.Open()
	c.SelectQuickAction(ActionStartTrial)
	c.SubmitUserInput("Jane")
	c.SubmitUserInput("jane@example.com")
	c.SubmitUserInput("555-1234")
	c.SelectQuickAction("Law Firm")

	require.Eventually(t, func() bool {
		return c.State() == StateCollectingBusiness
	}, time.Second, 5*time.Millisecond, "failed submission should roll back")

	msgs := c.Messages()
	require.Contains(t, msgs[len(msgs)-1].Content, "went wrong")

	sub.setErr(nil)
	c.SelectQuickAction("Law Firm")
	require.Equal(t, StateComplete, c.State())
	require.Eventually(t, func() bool {
		return len(sub.submitted()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestStaleSubmissionDiscardedAfterClose(t *testing.T) {
	gate := make(chan struct{})
	sub := &fakeSubmitter{gate: gate}
	sub.setErr(errors.New("slow failure"))
	c, _ := newTestController(t, Options{Submitter: sub})

	c.Open()
	c.SelectQuickAction(ActionStartTrial)
	c.SubmitUserInput("Jane")
	c.SubmitUserInput("jane@example.com")
	c.SubmitUserInput("555-1234")
	c.SelectQuickAction("Law Firm")

	// Widget closes while the submission is still in flight.
	c.Close()
	close(gate)

	// The failure lands after close: no rollback, no apology append.
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, StateComplete, c.State())
	for _, m := range c.Messages() {
		require.NotContains(t, m.Content, "went wrong")
	}
}

func TestDisposeStopsEverything(t *testing.T) {
	c, _ := newTestController(t, Options{TypingDelay: 20 * time.Millisecond})

	c.Open()
	c.SubmitUserInput("What is your pricing?")
	c.Dispose()
	time.Sleep(60 * time.Millisecond)
	require.Len(t, c.Messages(), 2)

	c.SubmitUserInput("hello?")
	require.Len(t, c.Messages(), 2, "disposed controller must reject input")
}
