package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"medtrack/internal/database"
	"medtrack/internal/models"
)

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateCaretaker inserts a new caretaker account
func (r *UserRepository) CreateCaretaker(email, passwordHash, displayName string) (*models.User, error) {
	user := &models.User{
		ID:           uuid.New().String(),
		Role:         models.RoleCaretaker,
		DisplayName:  displayName,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	query := `
		INSERT INTO users (id, role, display_name, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, user.ID, user.Role, user.DisplayName, user.Email,
		user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create caretaker: %w", err)
	}

	return user, nil
}

// CreateOAuthCaretaker inserts a caretaker account backed by an OAuth identity
func (r *UserRepository) CreateOAuthCaretaker(provider, subject, email, displayName string) (*models.User, error) {
	user := &models.User{
		ID:            uuid.New().String(),
		Role:          models.RoleCaretaker,
		DisplayName:   displayName,
		Email:         email,
		OAuthProvider: provider,
		OAuthSubject:  subject,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	query := `
		INSERT INTO users (id, role, display_name, email, oauth_provider, oauth_subject, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, user.ID, user.Role, user.DisplayName, user.Email,
		user.OAuthProvider, user.OAuthSubject, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth caretaker: %w", err)
	}

	return user, nil
}

// CreateElder inserts a new anonymous elder account
func (r *UserRepository) CreateElder(id, displayName string) (*models.User, error) {
	user := &models.User{
		ID:          id,
		Role:        models.RoleElder,
		DisplayName: displayName,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	query := `
		INSERT INTO users (id, role, display_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, user.ID, user.Role, user.DisplayName, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create elder: %w", err)
	}

	return user, nil
}

// LinkOAuth attaches an OAuth identity to an existing account
func (r *UserRepository) LinkOAuth(userID, provider, subject string) error {
	query := `UPDATE users SET oauth_provider = ?, oauth_subject = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.Exec(query, provider, subject, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to link oauth identity: %w", err)
	}
	return nil
}

const userColumns = `id, role, display_name, COALESCE(email, ''), COALESCE(password_hash, ''),
	COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Role,
		&user.DisplayName,
		&user.Email,
		&user.PasswordHash,
		&user.OAuthProvider,
		&user.OAuthSubject,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by id
func (r *UserRepository) GetUserByID(id string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"
	return scanUser(r.db.QueryRow(query, id))
}

// GetUserByEmail retrieves a user by email address
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = ?"
	return scanUser(r.db.QueryRow(query, email))
}

// GetUserByOAuth retrieves a user by OAuth provider and subject
func (r *UserRepository) GetUserByOAuth(provider, subject string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE oauth_provider = ? AND oauth_subject = ?"
	return scanUser(r.db.QueryRow(query, provider, subject))
}

// GetLinkedElderIDs returns the elder ids a caretaker is linked to,
// most recently linked first
func (r *UserRepository) GetLinkedElderIDs(caretakerID string) ([]string, error) {
	query := `
		SELECT elder_id FROM elder_caretakers
		WHERE caretaker_id = ?
		ORDER BY linked_at DESC
	`
	rows, err := r.db.Query(query, caretakerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query linked elders: %w", err)
	}
	defer rows.Close()

	var elderIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan elder id: %w", err)
		}
		elderIDs = append(elderIDs, id)
	}

	return elderIDs, rows.Err()
}
