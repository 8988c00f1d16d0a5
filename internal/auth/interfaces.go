// filepath: internal/auth/interfaces.go
package auth

import (
	"time"

	"woodbank/internal/models"
)

// UserStore is the slice of the repository the token service needs for
// credential checks and claim resolution.
type UserStore interface {
	VerifyCredentials(username, password string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)
}

// SessionStore persists refresh-session hashes.
type SessionStore interface {
	StoreSession(userID int64, tokenHash string, expiry time.Time) error
	ValidateSession(tokenHash string) (int64, error)
	DeleteSession(tokenHash string) error
	DeleteAllSessionsForUser(userID int64) error
}

// TokenService defines the contract for login session operations.
type TokenService interface {
	Login(username, password string) (accessToken string, refreshToken string, err error)
	ValidateAccessToken(tokenString string) (*models.User, error)
	ValidateRefreshToken(tokenString string) (*models.User, error)
	Logout(refreshToken string) error
}
