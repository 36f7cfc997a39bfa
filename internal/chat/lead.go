package chat

import "strings"

// ConversationState names the lead-collection FSM states.
type ConversationState string

const (
	StateWelcome            ConversationState = "welcome"
	StateCollectingName     ConversationState = "collecting_name"
	StateCollectingEmail    ConversationState = "collecting_email"
	StateCollectingPhone    ConversationState = "collecting_phone"
	StateCollectingBusiness ConversationState = "collecting_business"
	StateComplete           ConversationState = "complete"
	StateFreeform           ConversationState = "freeform"
)

// LeadRecord holds the contact details collected by the widget. Fields are
// populated strictly in order: name, email, phone, business category.
type LeadRecord struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	BusinessCategory string `json:"business_category"`
}

// Complete reports whether every field has been collected.
func (r LeadRecord) Complete() bool {
	return r.Name != "" && r.Email != "" && r.Phone != "" && r.BusinessCategory != ""
}

// BusinessCategories is the fixed list offered as quick-reply buttons in the
// collecting_business step.
var BusinessCategories = []string{
	"Law Firm",
	"Medical Practice",
	"Dental Office",
	"Home Services",
	"Real Estate",
	"Salon & Spa",
	"Restaurant",
	"Other",
}

// ValidBusinessCategory reports whether cat is one of the offered buttons.
func ValidBusinessCategory(cat string) bool {
	for _, c := range BusinessCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// validEmail applies the minimal syntactic gate used by the email step.
func validEmail(text string) bool {
	return strings.Contains(text, "@")
}
