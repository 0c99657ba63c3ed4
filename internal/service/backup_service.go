package service

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/EscoLessgo/word-craft-arena/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version    string           `json:"version"`
	ExportedAt time.Time        `json:"exported_at"`
	Users      []UserBackup     `json:"users"`
	Documents  []DocumentBackup `json:"documents"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID            int64     `json:"id"`
	UID           string    `json:"uid"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	Name          string    `json:"name"`
	OAuthProvider string    `json:"oauth_provider"`
	OAuthSubject  string    `json:"oauth_subject"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DocumentBackup represents one document-store row, with the JSON payload
// kept raw so a round trip does not reorder or renumber anything.
type DocumentBackup struct {
	Path       string          `json:"path"`
	Collection string          `json:"collection"`
	Data       json.RawMessage `json:"data"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportDocuments(backup); err != nil {
		return fmt.Errorf("failed to export documents: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	log.Printf("Export complete: %d users, %d documents", len(backup.Users), len(backup.Documents))
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, uid, email, password_hash, name,
		       COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''),
		       created_at, updated_at
		FROM users ORDER BY id
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.UID, &u.Email, &u.PasswordHash, &u.Name,
			&u.OAuthProvider, &u.OAuthSubject, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportDocuments(backup *BackupData) error {
	rows, err := s.db.Query("SELECT path, collection, data, updated_at FROM documents ORDER BY path")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var d DocumentBackup
		var raw string
		if err := rows.Scan(&d.Path, &d.Collection, &raw, &d.UpdatedAt); err != nil {
			return err
		}
		d.Data = json.RawMessage(raw)
		backup.Documents = append(backup.Documents, d)
	}
	return rows.Err()
}

// Import restores a backup file into the database. Existing rows with the
// same keys are left in place; the import only fills gaps, so it is safe to
// run against a non-empty database.
func (s *BackupService) Import(inputPath string) error {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	var backup BackupData
	if err := json.Unmarshal(raw, &backup); err != nil {
		return fmt.Errorf("failed to parse backup file: %w", err)
	}

	log.Printf("Importing backup from %s (%d users, %d documents)",
		backup.ExportedAt.Format(time.RFC3339), len(backup.Users), len(backup.Documents))

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	imported := 0
	for _, u := range backup.Users {
		var count int
		if err := tx.QueryRow("SELECT COUNT(*) FROM users WHERE uid = ?", u.UID).Scan(&count); err != nil {
			return fmt.Errorf("failed to check user %s: %w", u.UID, err)
		}
		if count > 0 {
			continue
		}
		_, err := tx.Exec(`
			INSERT INTO users (uid, email, password_hash, name, oauth_provider, oauth_subject, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, u.UID, u.Email, u.PasswordHash, u.Name, u.OAuthProvider, u.OAuthSubject, u.CreatedAt, u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import user %s: %w", u.Email, err)
		}
		imported++
	}

	for _, d := range backup.Documents {
		var count int
		if err := tx.QueryRow("SELECT COUNT(*) FROM documents WHERE path = ?", d.Path).Scan(&count); err != nil {
			return fmt.Errorf("failed to check document %s: %w", d.Path, err)
		}
		if count > 0 {
			continue
		}
		_, err := tx.Exec(
			"INSERT INTO documents (path, collection, data, updated_at) VALUES (?, ?, ?, ?)",
			d.Path, d.Collection, string(d.Data), d.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import document %s: %w", d.Path, err)
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	log.Printf("Import complete: %d new rows", imported)
	return nil
}
