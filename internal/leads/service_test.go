package leads

import (
	"context"
	"errors"
	"testing"

	"claims-backend/internal/crm/hubspot"
)

type stubCRM struct {
	contacts []hubspot.Contact
	err      error
}

func (s *stubCRM) UpsertContact(ctx context.Context, contact hubspot.Contact) error {
	s.contacts = append(s.contacts, contact)
	return s.err
}

func TestCaptureStoresAndSyncs(t *testing.T) {
	repo := NewMemoryRepo()
	crm := &stubCRM{}
	svc := &Service{Repo: repo, CRM: crm}

	lead, err := svc.Capture(context.Background(), CaptureInput{
		Email:   "  Jane@Example.com ",
		Name:    "Jane Roe",
		Company: "Springfield Clinic",
		Source:  "pricing-page",
	})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if lead.Email != "jane@example.com" {
		t.Fatalf("expected normalized email, got %q", lead.Email)
	}
	if len(crm.contacts) != 1 || crm.contacts[0].Email != "jane@example.com" {
		t.Fatalf("expected CRM upsert, got %+v", crm.contacts)
	}
	if lead.CRMSyncedAt == nil {
		t.Fatal("expected crmSyncedAt to be set")
	}

	stored, ok := repo.Get(lead.ID)
	if !ok {
		t.Fatal("lead not stored")
	}
	if stored.CRMSyncedAt == nil {
		t.Fatal("expected stored crmSyncedAt")
	}
}

func TestCaptureCRMFailureIsSilent(t *testing.T) {
	repo := NewMemoryRepo()
	crm := &stubCRM{err: errors.New("hubspot down")}
	svc := &Service{Repo: repo, CRM: crm}

	lead, err := svc.Capture(context.Background(), CaptureInput{Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("CRM failure must not surface: %v", err)
	}
	if lead.CRMSyncedAt != nil {
		t.Fatal("expected no crmSyncedAt on sync failure")
	}
	if _, ok := repo.Get(lead.ID); !ok {
		t.Fatal("lead must still be stored when CRM sync fails")
	}
}

func TestCaptureWithoutCRM(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	lead, err := svc.Capture(context.Background(), CaptureInput{Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("Capture without CRM: %v", err)
	}
	if lead.CRMSyncedAt != nil {
		t.Fatal("expected no crmSyncedAt without CRM")
	}
}

func TestCaptureValidatesEmail(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	for _, email := range []string{"", "   ", "not-an-email"} {
		if _, err := svc.Capture(context.Background(), CaptureInput{Email: email}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("email %q: expected ErrInvalidInput, got %v", email, err)
		}
	}
}
