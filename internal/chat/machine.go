package chat

import "strings"

// Bot prompts emitted by the state machine. Kept as package constants so the
// transition logic and the copy can be tested independently.
const (
	promptWelcome = `Hi there! I'm the FrontDesk AI assistant. I can answer questions about our AI receptionist, or get you set up with a free trial.

What would you like to do?`

	promptAskName = `Great choice! Let's get your free trial started. It only takes a minute.

First, what's your name?`

	promptAskEmail = `Nice to meet you, %NAME%! What's the best email address for you?`

	promptEmailRetry = `Hmm, that doesn't look like an email address. Could you double-check it? (It should contain an @.)`

	promptAskPhone = `Got it. And what's a good phone number? This is the number your AI receptionist will forward urgent calls to.`

	promptAskBusiness = `Almost done! What kind of business do you run? Pick the closest match below.`

	promptComplete = `You're all set, %NAME%! Check your inbox at %EMAIL%, your trial setup link is on its way.

Feel free to keep asking me questions in the meantime.`

	promptLearnMore = `Happy to help! Ask me anything about pricing, features, setup, or security and I'll give you a straight answer.

Whenever you're ready, just say "start trial".`

	promptCategoryRetry = `Please pick one of the business types below so I can finish setting up your trial.`

	promptSubmitFailed = `I'm sorry, something went wrong saving your details on our end. Please pick your business type again and I'll retry.`
)

// Reply is the state machine's output for one input: the bot message to
// append plus any quick-reply buttons to render under it.
type Reply struct {
	Text    string
	Options []string
}

// welcomeOptions are the quick actions offered alongside the welcome prompt.
var welcomeOptions = []string{"Start free trial", "Learn more"}

// StateMachine drives the sequential collection of a LeadRecord and detects
// question interruptions. It owns no timers and performs no I/O; the
// Controller layers those on top. Not safe for concurrent use; each widget
// session owns exactly one instance.
type StateMachine struct {
	state      ConversationState
	lead       LeadRecord
	classifier *Classifier
}

// NewStateMachine creates a machine in the welcome state.
func NewStateMachine(classifier *Classifier) *StateMachine {
	if classifier == nil {
		classifier = NewClassifier()
	}
	return &StateMachine{state: StateWelcome, classifier: classifier}
}

// State returns the current conversation state.
func (m *StateMachine) State() ConversationState {
	return m.state
}

// Lead returns a copy of the record collected so far.
func (m *StateMachine) Lead() LeadRecord {
	return m.lead
}

// WelcomeReply is the bot's opening message, appended on first open.
func (m *StateMachine) WelcomeReply() Reply {
	return Reply{Text: promptWelcome, Options: welcomeOptions}
}

// StartTrial handles the "start trial" quick action. Collection always
// restarts at the name step with a fresh record, even from freeform after a
// partial fill. Restarting does not resume.
func (m *StateMachine) StartTrial() Reply {
	m.lead = LeadRecord{}
	m.state = StateCollectingName
	return Reply{Text: promptAskName}
}

// LearnMore handles the "learn more" quick action.
func (m *StateMachine) LearnMore() Reply {
	m.state = StateFreeform
	return Reply{Text: promptLearnMore}
}

// Submit processes one free-text input and returns the bot's reply. From any
// collecting state, input classified as a question reroutes to freeform: the
// question is answered, the pending field stays unset, and collection does
// not advance.
func (m *StateMachine) Submit(text string) Reply {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return m.reprompt()
	}

	switch m.state {
	case StateWelcome:
		// Free text before any quick action is treated as freeform Q&A.
		m.state = StateFreeform
		return Reply{Text: m.classifier.Answer(trimmed)}

	case StateCollectingName:
		if m.classifier.IsQuestion(trimmed) {
			return m.interrupt(trimmed)
		}
		m.lead.Name = trimmed
		m.state = StateCollectingEmail
		return Reply{Text: strings.ReplaceAll(promptAskEmail, "%NAME%", m.lead.Name)}

	case StateCollectingEmail:
		if m.classifier.IsQuestion(trimmed) {
			return m.interrupt(trimmed)
		}
		if !validEmail(trimmed) {
			return Reply{Text: promptEmailRetry}
		}
		m.lead.Email = trimmed
		m.state = StateCollectingPhone
		return Reply{Text: promptAskPhone}

	case StateCollectingPhone:
		if m.classifier.IsQuestion(trimmed) {
			return m.interrupt(trimmed)
		}
		m.lead.Phone = trimmed
		m.state = StateCollectingBusiness
		return Reply{Text: promptAskBusiness, Options: BusinessCategories}

	case StateCollectingBusiness:
		// This step expects a button press; free text gets the question
		// treatment or a nudge back to the buttons.
		if m.classifier.IsQuestion(trimmed) {
			return m.interrupt(trimmed)
		}
		return Reply{Text: promptCategoryRetry, Options: BusinessCategories}

	case StateComplete:
		// Terminal for the record: input is still answered, nothing advances.
		return Reply{Text: m.classifier.Answer(trimmed)}

	default: // StateFreeform
		return Reply{Text: m.classifier.Answer(trimmed)}
	}
}

// SelectBusinessCategory handles the discrete category buttons and finishes
// collection. Invalid categories re-prompt without advancing.
func (m *StateMachine) SelectBusinessCategory(category string) Reply {
	if m.state != StateCollectingBusiness {
		return m.reprompt()
	}
	if !ValidBusinessCategory(category) {
		return Reply{Text: promptCategoryRetry, Options: BusinessCategories}
	}
	m.lead.BusinessCategory = category
	m.state = StateComplete
	return Reply{Text: m.completionText()}
}

// FailSubmission keeps the machine retryable after a backend lead-capture
// failure: the category is cleared and the state rolls back to
// collecting_business so the user can press a button again.
func (m *StateMachine) FailSubmission() Reply {
	m.lead.BusinessCategory = ""
	m.state = StateCollectingBusiness
	return Reply{Text: promptSubmitFailed, Options: BusinessCategories}
}

func (m *StateMachine) completionText() string {
	text := strings.ReplaceAll(promptComplete, "%NAME%", m.lead.Name)
	return strings.ReplaceAll(text, "%EMAIL%", m.lead.Email)
}

// interrupt answers a mid-collection question and parks the conversation in
// freeform. The interrupted field is left unset.
func (m *StateMachine) interrupt(text string) Reply {
	m.state = StateFreeform
	return Reply{Text: m.classifier.Answer(text)}
}

// reprompt re-issues the prompt for the current state without mutating
// anything.
func (m *StateMachine) reprompt() Reply {
	switch m.state {
	case StateWelcome:
		return m.WelcomeReply()
	case StateCollectingName:
		return Reply{Text: promptAskName}
	case StateCollectingEmail:
		return Reply{Text: promptEmailRetry}
	case StateCollectingPhone:
		return Reply{Text: promptAskPhone}
	case StateCollectingBusiness:
		return Reply{Text: promptAskBusiness, Options: BusinessCategories}
	default:
		return Reply{Text: AnswerText(AnswerMisc)}
	}
}
