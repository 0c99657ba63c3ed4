package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/EscoLessgo/word-craft-arena/internal/database"
	"github.com/EscoLessgo/word-craft-arena/internal/models"
)

const userColumns = "id, uid, email, password_hash, name, COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), created_at, updated_at"

// UserRepository handles database operations for users, sessions and
// password reset tokens
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.UID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.OAuthProvider,
		&user.OAuthSubject,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// CreateUser inserts a new user into the database
func (r *UserRepository) CreateUser(uid, email, passwordHash, name string) (*models.User, error) {
	query := `
		INSERT INTO users (uid, email, password_hash, name)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, uid, email, passwordHash, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &models.User{
		ID:           id,
		UID:          uid,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

// GetUserByEmail retrieves a user by email address
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = ?"
	return scanUser(r.db.QueryRow(query, email))
}

// GetUserByID retrieves a user by row ID
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"
	return scanUser(r.db.QueryRow(query, id))
}

// GetUserByUID retrieves a user by public UID
func (r *UserRepository) GetUserByUID(uid string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE uid = ?"
	return scanUser(r.db.QueryRow(query, uid))
}

// GetUserByOAuth retrieves a user by OAuth provider and subject
func (r *UserRepository) GetUserByOAuth(provider, subject string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE oauth_provider = ? AND oauth_subject = ?"
	return scanUser(r.db.QueryRow(query, provider, subject))
}

// LinkOAuthProvider links an existing user to an OAuth provider
func (r *UserRepository) LinkOAuthProvider(userID int64, provider, subject string) error {
	query := `
		UPDATE users
		SET oauth_provider = ?, oauth_subject = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		AND (oauth_provider IS NULL OR oauth_provider = '')
	`
	result, err := r.db.Exec(query, provider, subject, userID)
	if err != nil {
		return fmt.Errorf("failed to link oauth provider: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read link result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("oauth provider already linked")
	}

	return nil
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(userID int64, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// CreateSession creates a new session for a user
func (r *UserRepository) CreateSession(sessionID string, userID int64, expiresAt time.Time) (*models.Session, error) {
	query := `
		INSERT INTO sessions (id, user_id, expires_at)
		VALUES (?, ?, ?)
	`
	_, err := r.db.Exec(query, sessionID, userID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &models.Session{
		ID:        sessionID,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}, nil
}

// GetSession retrieves a session by ID
func (r *UserRepository) GetSession(sessionID string) (*models.Session, error) {
	query := `
		SELECT id, user_id, expires_at, created_at
		FROM sessions
		WHERE id = ?
	`
	session := &models.Session{}
	err := r.db.QueryRow(query, sessionID).Scan(
		&session.ID,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// DeleteSession removes a session from the database
func (r *UserRepository) DeleteSession(sessionID string) error {
	query := "DELETE FROM sessions WHERE id = ?"
	_, err := r.db.Exec(query, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes all expired sessions
func (r *UserRepository) DeleteExpiredSessions() error {
	query := "DELETE FROM sessions WHERE expires_at < ?"
	_, err := r.db.Exec(query, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}

// CreatePasswordResetToken stores a reset token for a user
func (r *UserRepository) CreatePasswordResetToken(token string, userID int64, expiresAt time.Time) error {
	query := `
		INSERT INTO password_reset_tokens (token, user_id, expires_at)
		VALUES (?, ?, ?)
	`
	_, err := r.db.Exec(query, token, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}
	return nil
}

// GetPasswordResetToken retrieves a reset token
func (r *UserRepository) GetPasswordResetToken(token string) (*models.PasswordResetToken, error) {
	query := `
		SELECT token, user_id, expires_at, created_at, used
		FROM password_reset_tokens
		WHERE token = ?
	`
	t := &models.PasswordResetToken{}
	err := r.db.QueryRow(query, token).Scan(
		&t.Token,
		&t.UserID,
		&t.ExpiresAt,
		&t.CreatedAt,
		&t.Used,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}

	return t, nil
}

// MarkResetTokenUsed marks a reset token as consumed
func (r *UserRepository) MarkResetTokenUsed(token string) error {
	query := "UPDATE password_reset_tokens SET used = ? WHERE token = ?"
	_, err := r.db.Exec(query, true, token)
	if err != nil {
		return fmt.Errorf("failed to mark reset token used: %w", err)
	}
	return nil
}
