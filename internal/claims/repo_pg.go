package claims

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"claims-backend/internal/risk"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const claimColumns = `
id, user_id, claim_number, patient_name, payer_name, provider_name, provider_npi,
facility_name, plan_type, diagnosis_codes, procedure_codes, billed_amount, service_date,
status, notes, denial_reason, denial_code, denial_date, risk_assessment, risk_assessed_at,
created_at, updated_at`

// Create inserts a new claim.
func (r *PGRepo) Create(ctx context.Context, claim Claim) error {
	const query = `
INSERT INTO claims (
	id, user_id, claim_number, patient_name, payer_name, provider_name, provider_npi,
	facility_name, plan_type, diagnosis_codes, procedure_codes, billed_amount, service_date,
	status, notes, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	diagPayload, err := marshalJSONB(claim.DiagnosisCodes)
	if err != nil {
		return err
	}
	procPayload, err := marshalJSONB(claim.ProcedureCodes)
	if err != nil {
		return err
	}
	var npi any
	if claim.ProviderNPI != "" {
		npi = claim.ProviderNPI
	}
	_, err = r.DB.ExecContext(ctx, query,
		claim.ID,
		claim.UserID,
		claim.ClaimNumber,
		claim.PatientName,
		claim.PayerName,
		claim.ProviderName,
		npi,
		claim.FacilityName,
		claim.PlanType,
		diagPayload,
		procPayload,
		claim.BilledAmount,
		claim.ServiceDate,
		claim.Status,
		claim.Notes,
		claim.CreatedAt,
		claim.UpdatedAt,
	)
	return err
}

// GetByID returns a claim by ID scoped to the owning user.
func (r *PGRepo) GetByID(ctx context.Context, userID, claimID string) (Claim, error) {
	query := `SELECT ` + claimColumns + `
FROM claims
WHERE id = $1 AND user_id = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, claimID, userID)
	claim, err := scanClaim(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Claim{}, ErrNotFound
		}
		return Claim{}, err
	}
	return claim, nil
}

// ListByUser returns claims for a user ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Claim, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + claimColumns + `
FROM claims
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Claim{}
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, claim)
	}
	return out, rows.Err()
}

// UpdateDenial records denial details and moves the claim to denied.
func (r *PGRepo) UpdateDenial(ctx context.Context, userID, claimID, reason, code string, denialDate *time.Time) error {
	const query = `
UPDATE claims
SET denial_reason = $1,
    denial_code = $2,
    denial_date = $3,
    status = $4,
    updated_at = now()
WHERE id = $5 AND user_id = $6`
	res, err := r.DB.ExecContext(ctx, query, reason, code, denialDate, StatusDenied, claimID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateRiskAssessment stores the latest assessment on the claim.
func (r *PGRepo) UpdateRiskAssessment(ctx context.Context, userID, claimID string, assessment risk.Assessment) error {
	const query = `
UPDATE claims
SET risk_assessment = $1,
    risk_assessed_at = $2,
    updated_at = now()
WHERE id = $3 AND user_id = $4`
	payload, err := marshalJSONB(assessment)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query, payload, assessment.AnalyzedAt, claimID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus moves the claim to the given status.
func (r *PGRepo) UpdateStatus(ctx context.Context, userID, claimID, status string) error {
	const query = `
UPDATE claims
SET status = $1,
    updated_at = now()
WHERE id = $2 AND user_id = $3`
	res, err := r.DB.ExecContext(ctx, query, status, claimID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClaim(row rowScanner) (Claim, error) {
	var c Claim
	var npi sql.NullString
	var diagPayload []byte
	var procPayload []byte
	var serviceDate sql.NullTime
	var denialDate sql.NullTime
	var assessmentPayload sql.NullString
	var assessedAt sql.NullTime
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.ClaimNumber,
		&c.PatientName,
		&c.PayerName,
		&c.ProviderName,
		&npi,
		&c.FacilityName,
		&c.PlanType,
		&diagPayload,
		&procPayload,
		&c.BilledAmount,
		&serviceDate,
		&c.Status,
		&c.Notes,
		&c.DenialReason,
		&c.DenialCode,
		&denialDate,
		&assessmentPayload,
		&assessedAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return Claim{}, err
	}
	if npi.Valid {
		c.ProviderNPI = npi.String
	}
	if len(diagPayload) > 0 {
		if err := json.Unmarshal(diagPayload, &c.DiagnosisCodes); err != nil {
			c.DiagnosisCodes = nil
		}
	}
	if len(procPayload) > 0 {
		if err := json.Unmarshal(procPayload, &c.ProcedureCodes); err != nil {
			c.ProcedureCodes = nil
		}
	}
	if serviceDate.Valid {
		c.ServiceDate = &serviceDate.Time
	}
	if denialDate.Valid {
		c.DenialDate = &denialDate.Time
	}
	if assessmentPayload.Valid {
		var assessment risk.Assessment
		if err := json.Unmarshal([]byte(assessmentPayload.String), &assessment); err == nil {
			c.RiskAssessment = &assessment
		}
	}
	if assessedAt.Valid {
		c.RiskAssessedAt = &assessedAt.Time
	}
	return c, nil
}

func marshalJSONB(value any) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	return json.Marshal(value)
}
