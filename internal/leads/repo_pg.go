package leads

import (
	"context"
	"database/sql"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a lead.
func (r *PGRepo) Create(ctx context.Context, lead Lead) error {
	const query = `
INSERT INTO leads (id, email, name, company, phone, message, source, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Email,
		lead.Name,
		lead.Company,
		lead.Phone,
		lead.Message,
		lead.Source,
		lead.CreatedAt,
	)
	return err
}

// MarkCRMSynced records a successful CRM sync.
func (r *PGRepo) MarkCRMSynced(ctx context.Context, leadID string, at time.Time) error {
	const query = `UPDATE leads SET crm_synced_at = $1 WHERE id = $2`
	_, err := r.DB.ExecContext(ctx, query, at, leadID)
	return err
}
