// filepath: internal/repository/user_repo.go
package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"woodbank/internal/auth"
	"woodbank/internal/models"
	"woodbank/internal/shared"

	"golang.org/x/crypto/bcrypt"
)

// UserCreateArgs is a struct used for creating users in the database layer.
// It is separate from models.User to include the plaintext password for creation.
type UserCreateArgs struct {
	Username    string
	Password    string
	Role        string
	DisplayName string
	Email       string
}

// GetUserByUsername retrieves a user by their username, using a cache for performance.
func (s *Repository) GetUserByUsername(username string) (*models.User, error) {
	cacheKey := fmt.Sprintf("user_by_name_%s", username)
	if user, found := s.Cache.Get(cacheKey); found {
		return user.(*models.User), nil
	}

	s.Logger.Debugf("GetUserByUsername: CACHE MISS for '%s'. Querying DB.", username)
	query := "SELECT id, username, password_hash, role, display_name, email FROM users WHERE username = ?"
	row := s.DB.QueryRow(query, username)

	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.DisplayName, &user.Email); err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.ErrUserNotFound
		}
		return nil, err
	}

	s.Cache.Set(cacheKey, &user, 5*time.Minute)
	s.Cache.Set(fmt.Sprintf("user_by_id_%d", user.ID), &user, 5*time.Minute)

	return &user, nil
}

// GetUserByID retrieves a user by their ID, using a cache for performance.
func (s *Repository) GetUserByID(id int64) (*models.User, error) {
	cacheKey := fmt.Sprintf("user_by_id_%d", id)
	if user, found := s.Cache.Get(cacheKey); found {
		return user.(*models.User), nil
	}

	s.Logger.Debugf("GetUserByID: CACHE MISS for ID %d. Querying DB.", id)
	query := "SELECT id, username, password_hash, role, display_name, email FROM users WHERE id = ?"
	row := s.DB.QueryRow(query, id)

	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.DisplayName, &user.Email); err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.ErrUserNotFound
		}
		return nil, err
	}

	s.Cache.Set(cacheKey, &user, 5*time.Minute)
	s.Cache.Set(fmt.Sprintf("user_by_name_%s", user.Username), &user, 5*time.Minute)

	return &user, nil
}

// UserExists checks if a user with the given username exists.
func (s *Repository) UserExists(username string) (bool, error) {
	_, err := s.GetUserByUsername(username)
	if err != nil {
		if err == shared.ErrUserNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CreateUser creates a new user. The role is validated against the closed
// role set on ingestion; raw role strings never travel further.
func (s *Repository) CreateUser(args *UserCreateArgs) (*models.User, error) {
	role, err := auth.ParseRole(args.Role)
	if err != nil {
		return nil, fmt.Errorf("create user %q: %w", args.Username, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(args.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO users (username, password_hash, role, display_name, email)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := s.DB.Exec(query, args.Username, string(hashedPassword), string(role), args.DisplayName, args.Email)
	if err != nil {
		// Check for UNIQUE constraint violation
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.username") {
			return nil, shared.ErrUserExists
		}
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	s.Logger.Debugf("CreateUser: User '%s' created with ID %d", args.Username, id)

	return &models.User{
		ID:           id,
		Username:     args.Username,
		PasswordHash: string(hashedPassword),
		Role:         string(role),
		DisplayName:  args.DisplayName,
		Email:        args.Email,
	}, nil
}

// UpdateUserPassword updates a single user's password.
func (s *Repository) UpdateUserPassword(username, password string) error {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	query := "UPDATE users SET password_hash = ? WHERE id = ?"
	if _, err := s.DB.Exec(query, string(hashedPassword), user.ID); err != nil {
		return err
	}

	s.invalidateUserCache(user)
	return nil
}

// GetUsers retrieves all users from the database.
func (s *Repository) GetUsers() ([]models.User, error) {
	query := "SELECT id, username, password_hash, role, display_name, email FROM users ORDER BY username"
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.DisplayName, &user.Email); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// DeleteUser deletes a user by their ID.
func (s *Repository) DeleteUser(id int64) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}

	if _, err := s.DB.Exec("DELETE FROM users WHERE id = ?", id); err != nil {
		return err
	}

	s.invalidateUserCache(user)
	return nil
}

// VerifyCredentials checks a username/password pair against the stored hash.
// It does not check login eligibility; that is the token service's job.
func (s *Repository) VerifyCredentials(username, password string) (*models.User, error) {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		if err == shared.ErrUserNotFound {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

func (s *Repository) invalidateUserCache(user *models.User) {
	s.Cache.Delete(fmt.Sprintf("user_by_name_%s", user.Username))
	s.Cache.Delete(fmt.Sprintf("user_by_id_%d", user.ID))
}
