package appeals

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a generated letter.
func (r *PGRepo) Create(ctx context.Context, userID string, letter Letter) error {
	const query = `
INSERT INTO appeal_letters (id, claim_id, user_id, letter, letter_type, model, generated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		letter.ID,
		letter.ClaimID,
		userID,
		letter.Letter,
		letter.Type,
		letter.Model,
		letter.GeneratedAt,
	)
	return err
}

// ListByClaim returns letters for a claim, newest first.
func (r *PGRepo) ListByClaim(ctx context.Context, userID, claimID string) ([]Letter, error) {
	const query = `
SELECT id, claim_id, letter, letter_type, model, generated_at
FROM appeal_letters
WHERE claim_id = $1 AND user_id = $2
ORDER BY generated_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, claimID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Letter{}
	for rows.Next() {
		var letter Letter
		var model sql.NullString
		if err := rows.Scan(&letter.ID, &letter.ClaimID, &letter.Letter, &letter.Type, &model, &letter.GeneratedAt); err != nil {
			return nil, err
		}
		if model.Valid {
			letter.Model = model.String
		}
		out = append(out, letter)
	}
	return out, rows.Err()
}
