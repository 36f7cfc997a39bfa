package leads

import (
	"strings"
	"time"
)

// SourceChatWidget marks leads captured by the embedded chat widget.
const SourceChatWidget = "chat_widget"

// Lead represents a captured prospect.
type Lead struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	BusinessCategory string    `json:"business_category"`
	Source           string    `json:"source"`
	CreatedAt        time.Time `json:"created_at"`
}

// CreateLeadRequest represents the request body for creating a lead
type CreateLeadRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	BusinessCategory string `json:"business_category"`
	Source           string `json:"source"`
}

// Validate validates the create lead request
func (r *CreateLeadRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if r.Email == "" && r.Phone == "" {
		return ErrMissingContact
	}
	if r.Email != "" && !strings.Contains(r.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}
