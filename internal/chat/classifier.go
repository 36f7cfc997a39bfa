package chat

import "strings"

// answerRules is the ordered dispatch table for free-text classification.
// Each rule lists substring alternatives; a rule matches when the lower-cased
// input contains any of them. The first matching rule wins, so rule order is
// a behavioral contract: an input mentioning both "price" and "trial"
// resolves to pricing because pricing is listed first. Reorder with care.
var answerRules = []struct {
	keywords []string
	answer   AnswerID
}{
	{[]string{"who are you", "about you", "about your company", "your company", "who is frontdesk", "what is frontdesk", "who made"}, AnswerCompanyInfo},
	{[]string{"price", "pricing", "cost", "how much", "subscription", "fee", "expensive", "cheap", "afford"}, AnswerPricing},
	{[]string{"trial", "try it", "try for free", "free"}, AnswerTrial},
	{[]string{"how does it work", "how it works", "how do i start", "get started", "getting started", "setup", "set up", "set it up", "onboard", "install"}, AnswerHowItWorks},
	{[]string{"feature", "what can", "what does it do", "capabilit", "take message", "book appointment"}, AnswerFeatures},
	{[]string{"calendar", "calendly", "outlook", "google cal", "integrat", "crm", "sync", "schedul", "booking", "appointment"}, AnswerIntegrations},
	{[]string{"custom", "personali", "my own", "script", "greeting", "my brand", "tailor"}, AnswerCustomization},
	{[]string{"simultaneous", "concurrent", "at once", "at the same time", "multiple calls", "call volume", "busy times", "high volume"}, AnswerCapacity},
	{[]string{"transfer", "forward", "record", "transcript", "transcription", "missed call", "voicemail message"}, AnswerCallHandling},
	{[]string{"language", "spanish", "bilingual", "voice", "accent", "sound like", "sound robotic", "robotic"}, AnswerLanguages},
	{[]string{"hipaa", "security", "secure", "privacy", "private", "compliance", "compliant", "gdpr", "encrypt", "my data"}, AnswerSecurity},
	{[]string{"industry", "industries", "law firm", "lawyer", "attorney", "medical", "dental", "dentist", "doctor", "hvac", "plumb", "electrician", "real estate", "salon", "spa", "restaurant", "contractor"}, AnswerIndustries},
	{[]string{"support", "help me", "contact", "talk to someone", "talk to a human", "speak to", "real person", "customer service"}, AnswerSupport},
	{[]string{" vs ", "versus", "compare", "competitor", "difference between", "better than", "answering service", "voicemail", "instead of"}, AnswerComparisons},
	{[]string{"demo", "demonstration", "see it in action", "hear it", "example call", "sample call"}, AnswerDemo},
	{[]string{"thank", "thanks", "bye", "goodbye", "hello", "hi there", "hey", "okay", "cool", "great"}, AnswerMisc},
}

// questionIndicators is the substring list for IsQuestion. Order is
// irrelevant here; the check is a plain OR.
var questionIndicators = []string{
	"?",
	"what", "how ", "why", "when ", "where ", "who ", "which ",
	"can you", "can i", "could you", "do you", "does ", "is there",
	"is it", "are you", "are there", "will it", "will you",
	"tell me", "explain",
	// domain keywords that signal a question even without interrogative form
	"price", "pricing", "cost", "trial", "feature", "integrat",
	"hipaa", "secure", "compliance", "demo", "support",
}

// Classifier maps free-text widget input to canned answer categories.
// Classification is deterministic: no state, no randomness, same input
// always yields the same answer.
type Classifier struct{}

// NewClassifier creates a classifier over the fixed rule set.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify returns the answer ID for the first rule matching the input.
// Unmatched input always falls through to AnswerDefault; Classify never
// fails.
func (c *Classifier) Classify(text string) AnswerID {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return AnswerDefault
	}
	for _, rule := range answerRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.answer
			}
		}
	}
	return AnswerDefault
}

// IsQuestion reports whether the input reads like a question rather than an
// answer to a data-collection prompt. Used mid-collection to reroute the
// conversation to freeform Q&A instead of storing the text as a field value.
func (c *Classifier) IsQuestion(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return false
	}
	for _, indicator := range questionIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// Answer is a convenience combining Classify and AnswerText.
func (c *Classifier) Answer(text string) string {
	return AnswerText(c.Classify(text))
}
