// filepath: internal/auth/tokenservice.go
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"woodbank/internal/config"
	"woodbank/internal/models"
	"woodbank/internal/shared"

	"github.com/golang-jwt/jwt/v5"
)

// accessClaims defines the custom claims for our short-lived access token.
type accessClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// refreshClaims defines the claims for our long-lived, stateful refresh token.
type refreshClaims struct {
	jwt.RegisteredClaims
}

// Compile-time check to ensure tokenService implements the TokenService interface.
var _ TokenService = (*tokenService)(nil)

// tokenService implements the TokenService interface.
type tokenService struct {
	cfg      *config.Config
	users    UserStore
	sessions SessionStore
}

// NewTokenService creates a new instance of the tokenService.
func NewTokenService(cfg *config.Config, users UserStore, sessions SessionStore) TokenService {
	return &tokenService{cfg: cfg, users: users, sessions: sessions}
}

// hashToken securely hashes a token string (using SHA-256) for database storage.
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// Login verifies credentials and issues a signed token pair. Roles without
// login access (clients, unrecognized roles) are refused before any token is
// minted; this is the single enforcement point for "clients have no
// credentials".
func (s *tokenService) Login(username, password string) (string, string, error) {
	user, err := s.users.VerifyCredentials(username, password)
	if err != nil {
		return "", "", err
	}
	if !CanLogin(user.Role) {
		return "", "", shared.ErrRoleCannotLogin
	}

	// 1. Create Access Token (short-lived, stateless)
	accessExpiry := time.Now().Add(time.Minute * time.Duration(s.cfg.Session.AccessDurationMin))
	accessClaims := &accessClaims{
		Username: user.Username,
		Role:     string(Normalize(user.Role)),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(accessExpiry),
			Issuer:    "woodbank",
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}
	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	signedAccessToken, err := accessToken.SignedString([]byte(s.cfg.SessionSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}

	// 2. Create Refresh Token (long-lived, stateful)
	refreshExpiry := time.Now().Add(time.Hour * time.Duration(s.cfg.Session.RefreshDurationHours))
	// Use a random ID (jti) for the token to ensure uniqueness
	jtiBytes := make([]byte, 16)
	if _, err := rand.Read(jtiBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate token id: %w", err)
	}
	jti := hex.EncodeToString(jtiBytes)

	refreshClaims := &refreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(refreshExpiry),
			Issuer:    "woodbank",
			Subject:   fmt.Sprintf("%d", user.ID),
			ID:        jti,
		},
	}
	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	signedRefreshToken, err := refreshToken.SignedString([]byte(s.cfg.SessionSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	// 3. Store the hash of the refresh token in the database
	tokenHash := hashToken(signedRefreshToken)
	if err := s.sessions.StoreSession(user.ID, tokenHash, refreshExpiry); err != nil {
		return "", "", fmt.Errorf("failed to store session: %w", err)
	}

	return signedAccessToken, signedRefreshToken, nil
}

// ValidateAccessToken checks an access token (stateless).
// It verifies the signature and expiry, then returns the associated user.
func (s *tokenService) ValidateAccessToken(tokenString string) (*models.User, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SessionSecret), nil
	})

	if err != nil {
		return nil, err // Handles expired tokens as well
	}
	if !token.Valid {
		return nil, errors.New("invalid access token")
	}

	// Token is valid, fetch the user from the claims
	user, err := s.users.GetUserByUsername(claims.Username)
	if err != nil {
		return nil, errors.New("user not found for token")
	}
	return user, nil
}

// ValidateRefreshToken checks a refresh token (stateful).
// It verifies the signature AND checks the database to ensure it hasn't been revoked.
func (s *tokenService) ValidateRefreshToken(tokenString string) (*models.User, error) {
	// 1. Check signature and basic claims (stateless check)
	claims := &refreshClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SessionSecret), nil
	})
	if err != nil {
		return nil, err // Handles expired tokens
	}
	if !token.Valid {
		return nil, errors.New("invalid refresh token signature or claims")
	}

	// 2. Hash the token and check the session store (stateful check)
	tokenHash := hashToken(tokenString)
	userID, err := s.sessions.ValidateSession(tokenHash)
	if err != nil {
		return nil, fmt.Errorf("session not found (revoked or expired): %w", err)
	}

	// 3. Fetch the user associated with the valid session
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, errors.New("user not found for valid session")
	}
	return user, nil
}

// Logout invalidates a refresh token by deleting its session hash.
func (s *tokenService) Logout(refreshToken string) error {
	tokenHash := hashToken(refreshToken)
	return s.sessions.DeleteSession(tokenHash)
}
