package emailcode

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new email code repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert stores a code for the user. The unique constraint on user_id makes
// a reissue replace the prior outstanding code.
func (r *PostgresRepository) Upsert(ctx context.Context, userID uuid.UUID, code string) (EmailCode, error) {
	query := `
		INSERT INTO email_codes (user_id, code)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET code = EXCLUDED.code,
		    created_at = NOW() AT TIME ZONE 'UTC'
		RETURNING id, user_id, code, created_at
	`

	var ec EmailCode
	err := r.db.QueryRow(ctx, query, userID, code).Scan(
		&ec.ID,
		&ec.UserID,
		&ec.Code,
		&ec.CreatedAt,
	)
	if err != nil {
		return EmailCode{}, err
	}

	return ec, nil
}

// Redeem deletes the code in a single statement so concurrent redemptions of
// the same code are serialized by the database: only one delete returns a row.
func (r *PostgresRepository) Redeem(ctx context.Context, code string) (uuid.UUID, error) {
	query := `
		DELETE FROM email_codes
		WHERE code = $1
		RETURNING user_id
	`

	var userID uuid.UUID
	err := r.db.QueryRow(ctx, query, code).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrCodeInvalid
		}
		return uuid.Nil, err
	}

	return userID, nil
}
