package sqlite

import (
	"context"
	"time"

	"github.com/opsgarden/admind/internal/admin/domain"
)

type refreshTokensRepo struct {
	q querier
}

func (r *refreshTokensRepo) CreateRefreshRecord(ctx context.Context, rec domain.RefreshRecord) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.TokenHash, rec.ExpiresAt.UTC(), time.Now().UTC())
	return err
}

func (r *refreshTokensRepo) GetRefreshRecordByHash(
	ctx context.Context,
	hash string,
) (domain.RefreshRecord, error) {
	var rec domain.RefreshRecord
	err := r.q.QueryRowContext(ctx,
		`SELECT id, user_id, token_hash, expires_at, created_at
		 FROM refresh_tokens WHERE token_hash = ?`, hash).
		Scan(&rec.ID, &rec.UserID, &rec.TokenHash, &rec.ExpiresAt, &rec.CreatedAt)
	if err != nil {
		return domain.RefreshRecord{}, mapNotFound(err)
	}
	return rec, nil
}

func (r *refreshTokensRepo) DeleteRefreshRecord(ctx context.Context, hash string) error {
	// Deliberately not reporting missing rows: eviction must be idempotent.
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE token_hash = ?`, hash)
	return err
}

func (r *refreshTokensRepo) DeleteUserRefreshRecords(ctx context.Context, userID string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE user_id = ?`, userID)
	return err
}

func (r *refreshTokensRepo) DeleteExpiredRefreshRecords(ctx context.Context, now time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at <= ?`, now.UTC())
	return err
}

func (r *refreshTokensRepo) ListActiveRefreshRecords(
	ctx context.Context,
	now time.Time,
) ([]domain.RefreshRecord, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, user_id, token_hash, expires_at, created_at
		 FROM refresh_tokens WHERE expires_at > ?`, now.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []domain.RefreshRecord
	for rows.Next() {
		var rec domain.RefreshRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.TokenHash, &rec.ExpiresAt, &rec.CreatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
