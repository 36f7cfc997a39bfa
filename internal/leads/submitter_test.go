package leads

import (
	"context"
	"testing"

	"github.com/frontdeskai/webchat-service/internal/chat"
	"github.com/frontdeskai/webchat-service/pkg/logging"
)

func TestChatSubmitter(t *testing.T) {
	repo := NewInMemoryRepository()
	sub := NewChatSubmitter(repo, logging.Default())

	err := sub.SubmitLead(context.Background(), chat.LeadRecord{
		Name:             "Jane",
		Email:            "jane@example.com",
		Phone:            "555-1234",
		BusinessCategory: "Law Firm",
	})
	if err != nil {
		t.Fatal(err)
	}

	var stored *Lead
	for _, l := range repo.leads {
		stored = l
	}
	if stored == nil {
		t.Fatal("lead not stored")
	}
	if stored.Source != SourceChatWidget {
		t.Errorf("source = %q, want %q", stored.Source, SourceChatWidget)
	}
	if stored.BusinessCategory != "Law Firm" {
		t.Errorf("business_category = %q", stored.BusinessCategory)
	}
}

func TestChatSubmitterPropagatesValidation(t *testing.T) {
	sub := NewChatSubmitter(NewInMemoryRepository(), logging.Default())

	err := sub.SubmitLead(context.Background(), chat.LeadRecord{Email: "a@b.com"})
	if err != ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}
