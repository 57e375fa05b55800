package claims

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"claims-backend/internal/risk"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreateMarshalsCodes(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	claim := Claim{
		ID:             "claim-1",
		UserID:         "user-1",
		ClaimNumber:    "CLM-1001",
		PatientName:    "Jane Roe",
		PayerName:      "Acme Health",
		PlanType:       "Medicare",
		DiagnosisCodes: []string{"E11.9"},
		ProcedureCodes: []string{"99213"},
		BilledAmount:   450,
		Status:         StatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	mock.ExpectExec("INSERT INTO claims").
		WithArgs(
			claim.ID,
			claim.UserID,
			claim.ClaimNumber,
			claim.PatientName,
			claim.PayerName,
			claim.ProviderName,
			nil, // provider_npi empty maps to NULL
			claim.FacilityName,
			claim.PlanType,
			[]byte(`["E11.9"]`),
			[]byte(`["99213"]`),
			claim.BilledAmount,
			nil,
			claim.Status,
			claim.Notes,
			claim.CreatedAt,
			claim.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), claim); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDScansAssessment(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	assessment := risk.Assessment{Score: 70, Level: risk.LevelHigh, AnalyzedAt: now}
	assessmentPayload, err := json.Marshal(assessment)
	if err != nil {
		t.Fatalf("marshal assessment: %v", err)
	}

	columns := []string{
		"id", "user_id", "claim_number", "patient_name", "payer_name", "provider_name", "provider_npi",
		"facility_name", "plan_type", "diagnosis_codes", "procedure_codes", "billed_amount", "service_date",
		"status", "notes", "denial_reason", "denial_code", "denial_date", "risk_assessment", "risk_assessed_at",
		"created_at", "updated_at",
	}
	rows := sqlmock.NewRows(columns).AddRow(
		"claim-1", "user-1", "CLM-1001", "Jane Roe", "Acme Health", "Dr. Smith", "1234567890",
		"", "Medicare", []byte(`["E11.9"]`), []byte(`["99213"]`), 450.0, nil,
		StatusDenied, "", "Missing prior authorization", "CO-197", nil, assessmentPayload, now,
		now, now,
	)

	mock.ExpectQuery("SELECT (.+) FROM claims").
		WithArgs("claim-1", "user-1").
		WillReturnRows(rows)

	claim, err := repo.GetByID(context.Background(), "user-1", "claim-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if claim.ProviderNPI != "1234567890" {
		t.Fatalf("unexpected provider npi %q", claim.ProviderNPI)
	}
	if len(claim.DiagnosisCodes) != 1 || claim.DiagnosisCodes[0] != "E11.9" {
		t.Fatalf("unexpected diagnosis codes %v", claim.DiagnosisCodes)
	}
	if claim.RiskAssessment == nil || claim.RiskAssessment.Score != 70 {
		t.Fatalf("expected scanned assessment, got %+v", claim.RiskAssessment)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM claims").
		WithArgs("missing", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "user-1", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpdateDenialNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE claims").
		WithArgs("reason", "CO-197", nil, StatusDenied, "missing", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateDenial(context.Background(), "user-1", "missing", "reason", "CO-197", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpdateRiskAssessment(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	assessment := risk.Assessment{Score: 45, Level: risk.LevelMedium, AnalyzedAt: now}

	mock.ExpectExec("UPDATE claims").
		WithArgs(sqlmock.AnyArg(), assessment.AnalyzedAt, "claim-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateRiskAssessment(context.Background(), "user-1", "claim-1", assessment); err != nil {
		t.Fatalf("UpdateRiskAssessment: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
