// filepath: internal/repository/session_repo.go
package repository

import (
	"database/sql"
	"time"

	"woodbank/internal/shared"
)

// StoreSession persists the hash of a refresh token with its expiry.
func (s *Repository) StoreSession(userID int64, tokenHash string, expiry time.Time) error {
	query := "INSERT INTO sessions (token_hash, user_id, expires_at) VALUES (?, ?, ?)"
	_, err := s.DB.Exec(query, tokenHash, userID, expiry)
	return err
}

// ValidateSession returns the user id for a stored, unexpired session hash.
func (s *Repository) ValidateSession(tokenHash string) (int64, error) {
	var userID int64
	var expiresAt time.Time
	query := "SELECT user_id, expires_at FROM sessions WHERE token_hash = ?"
	if err := s.DB.QueryRow(query, tokenHash).Scan(&userID, &expiresAt); err != nil {
		if err == sql.ErrNoRows {
			return 0, shared.ErrSessionNotFound
		}
		return 0, err
	}
	if time.Now().After(expiresAt) {
		// Expired sessions are removed lazily on the next validation.
		s.DB.Exec("DELETE FROM sessions WHERE token_hash = ?", tokenHash)
		return 0, shared.ErrSessionNotFound
	}
	return userID, nil
}

// DeleteSession removes one session by token hash.
func (s *Repository) DeleteSession(tokenHash string) error {
	_, err := s.DB.Exec("DELETE FROM sessions WHERE token_hash = ?", tokenHash)
	return err
}

// DeleteAllSessionsForUser removes every session belonging to a user.
func (s *Repository) DeleteAllSessionsForUser(userID int64) error {
	_, err := s.DB.Exec("DELETE FROM sessions WHERE user_id = ?", userID)
	return err
}
