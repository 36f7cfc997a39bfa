package leads

import (
	"context"

	"github.com/frontdeskai/webchat-service/internal/chat"
	"github.com/frontdeskai/webchat-service/pkg/logging"
)

// ChatSubmitter adapts the leads Repository to the chat controller's
// LeadSubmitter interface. Records arriving here always carry the
// chat_widget source.
type ChatSubmitter struct {
	repo   Repository
	logger *logging.Logger
}

// NewChatSubmitter creates the adapter.
func NewChatSubmitter(repo Repository, logger *logging.Logger) *ChatSubmitter {
	if logger == nil {
		logger = logging.Default()
	}
	return &ChatSubmitter{repo: repo, logger: logger}
}

// SubmitLead persists a record completed by the widget's collection flow.
func (s *ChatSubmitter) SubmitLead(ctx context.Context, lead chat.LeadRecord) error {
	created, err := s.repo.Create(ctx, &CreateLeadRequest{
		Name:             lead.Name,
		Email:            lead.Email,
		Phone:            lead.Phone,
		BusinessCategory: lead.BusinessCategory,
		Source:           SourceChatWidget,
	})
	if err != nil {
		return err
	}
	s.logger.Info("leads: chat widget lead captured", "id", created.ID, "business_category", created.BusinessCategory)
	return nil
}
