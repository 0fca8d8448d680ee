package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/arminveh/cinema-box-office/internal/model"
)

// TokenRepo provides access to the refresh_tokens table.  Only token
// hashes are stored; lookups always take the hash, never the raw
// token.
type TokenRepo struct {
	db *sql.DB
}

// NewTokenRepo constructs a TokenRepo with the given DB handle.
func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{db: db} }

// Create stores a refresh token hash for a user.
func (r *TokenRepo) Create(ctx context.Context, t *model.RefreshToken) error {
	const q = `INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.UserID, t.TokenHash, t.ExpiresAt.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// FindActiveByHash returns the unexpired, unrevoked token matching the
// hash, or ErrTokenNotFound.
func (r *TokenRepo) FindActiveByHash(ctx context.Context, hash string) (*model.RefreshToken, error) {
	const q = `SELECT id, user_id, token_hash, expires_at, revoked_at, created_at
	           FROM refresh_tokens
	           WHERE token_hash = ? AND revoked_at IS NULL AND expires_at > UTC_TIMESTAMP()`
	var t model.RefreshToken
	err := r.db.QueryRowContext(ctx, q, hash).
		Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.RevokedAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Revoke marks a token as revoked.  Revoking an already revoked or
// unknown token reports ErrTokenNotFound.
func (r *TokenRepo) Revoke(ctx context.Context, hash string) error {
	const q = `UPDATE refresh_tokens SET revoked_at = UTC_TIMESTAMP() WHERE token_hash = ? AND revoked_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, hash)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTokenNotFound
	}
	return nil
}
