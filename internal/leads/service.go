package leads

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"claims-backend/internal/crm/hubspot"
	"claims-backend/internal/shared/metrics"
	"claims-backend/internal/shared/telemetry"
)

// ErrInvalidInput indicates an unusable lead submission.
var ErrInvalidInput = fmt.Errorf("invalid lead input")

// ContactSyncer pushes a captured lead into the CRM.
type ContactSyncer interface {
	UpsertContact(ctx context.Context, contact hubspot.Contact) error
}

// CaptureInput carries the fields accepted from the contact form.
type CaptureInput struct {
	Email   string
	Name    string
	Company string
	Phone   string
	Message string
	Source  string
}

// Service stores leads and syncs them to the CRM when one is configured.
type Service struct {
	Repo Repo
	CRM  ContactSyncer
}

// Capture validates and stores a lead, then attempts a best-effort CRM
// sync. CRM failures are logged and never surfaced to the submitter.
func (s *Service) Capture(ctx context.Context, in CaptureInput) (Lead, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return Lead{}, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}

	lead := Lead{
		ID:        uuid.NewString(),
		Email:     in.Email,
		Name:      strings.TrimSpace(in.Name),
		Company:   strings.TrimSpace(in.Company),
		Phone:     strings.TrimSpace(in.Phone),
		Message:   strings.TrimSpace(in.Message),
		Source:    strings.TrimSpace(in.Source),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, lead); err != nil {
		return Lead{}, err
	}
	metrics.IncLeadCaptured()

	if s.CRM != nil {
		err := s.CRM.UpsertContact(ctx, hubspot.Contact{
			Email:   lead.Email,
			Name:    lead.Name,
			Company: lead.Company,
			Phone:   lead.Phone,
			Message: lead.Message,
		})
		if err != nil {
			metrics.IncLeadCRMSyncFailed()
			telemetry.Warn("lead CRM sync failed", map[string]any{
				"lead_id": lead.ID,
				"error":   err.Error(),
			})
		} else {
			syncedAt := time.Now().UTC()
			lead.CRMSyncedAt = &syncedAt
			if err := s.Repo.MarkCRMSynced(ctx, lead.ID, syncedAt); err != nil {
				telemetry.Warn("failed to record CRM sync time", map[string]any{
					"lead_id": lead.ID,
					"error":   err.Error(),
				})
			}
		}
	}

	return lead, nil
}
