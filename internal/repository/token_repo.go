package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"medtrack/internal/database"
	"medtrack/internal/models"
)

// TokenRepository handles database operations for refresh tokens
type TokenRepository struct {
	db *database.DB
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *database.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// CreateRefreshToken stores a refresh token hash for a user
func (r *TokenRepository) CreateRefreshToken(userID, tokenHash string, expiresAt time.Time) (*models.RefreshToken, error) {
	token := &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, revoked, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, token.ID, token.UserID, token.TokenHash,
		token.ExpiresAt, token.Revoked, token.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return token, nil
}

// GetRefreshTokenByHash retrieves a refresh token by its stored hash
func (r *TokenRepository) GetRefreshTokenByHash(tokenHash string) (*models.RefreshToken, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, revoked, created_at
		FROM refresh_tokens WHERE token_hash = ?
	`
	token := &models.RefreshToken{}
	err := r.db.QueryRow(query, tokenHash).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.Revoked,
		&token.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	return token, nil
}

// RevokeRefreshToken marks a single refresh token as revoked
func (r *TokenRepository) RevokeRefreshToken(id string) error {
	query := "UPDATE refresh_tokens SET revoked = ? WHERE id = ?"
	if _, err := r.db.Exec(query, true, id); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// RevokeAllForUser marks all of a user's refresh tokens as revoked
func (r *TokenRepository) RevokeAllForUser(userID string) error {
	query := "UPDATE refresh_tokens SET revoked = ? WHERE user_id = ? AND revoked = ?"
	if _, err := r.db.Exec(query, true, userID, false); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return nil
}

// DeleteExpired removes refresh tokens that expired or were revoked
func (r *TokenRepository) DeleteExpired() error {
	query := "DELETE FROM refresh_tokens WHERE expires_at < ? OR revoked = ?"
	if _, err := r.db.Exec(query, time.Now(), true); err != nil {
		return fmt.Errorf("failed to delete expired refresh tokens: %w", err)
	}
	return nil
}
