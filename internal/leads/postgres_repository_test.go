package leads

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

func TestPostgresCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO leads").
		WithArgs(pgxmock.AnyArg(), "Jane", "jane@example.com", "555-1234", "Law Firm", SourceChatWidget).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	repo := NewPostgresRepository(mock)
	lead, err := repo.Create(context.Background(), &CreateLeadRequest{
		Name:             "Jane",
		Email:            "jane@example.com",
		Phone:            "555-1234",
		BusinessCategory: "Law Firm",
		Source:           SourceChatWidget,
	})
	if err != nil {
		t.Fatal(err)
	}
	if lead.ID == "" {
		t.Error("expected generated id")
	}
	if !lead.CreatedAt.Equal(now) {
		t.Errorf("created_at = %s, want %s", lead.CreatedAt, now)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPostgresCreateValidates(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	if _, err := repo.Create(context.Background(), &CreateLeadRequest{Email: "a@b.com"}); err != ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	// No query should have been issued.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPostgresGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM leads").
		WithArgs("lead-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "email", "phone", "business_category", "source", "created_at",
		}).AddRow("lead-1", "Jane", "jane@example.com", "555-1234", "Law Firm", SourceChatWidget, now))

	repo := NewPostgresRepository(mock)
	lead, err := repo.GetByID(context.Background(), "lead-1")
	if err != nil {
		t.Fatal(err)
	}
	if lead.Name != "Jane" || lead.BusinessCategory != "Law Firm" {
		t.Errorf("unexpected lead %+v", lead)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPostgresGetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM leads").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "email", "phone", "business_category", "source", "created_at",
		}))

	repo := NewPostgresRepository(mock)
	if _, err := repo.GetByID(context.Background(), "missing"); err != ErrLeadNotFound {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
}
