package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// RoleAdmin is the only role that can reach the content admin screens.
const RoleAdmin = "admin"

// ErrInvalidCredentials is returned when the username or password is wrong.
// It deliberately does not say which one.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Credentials is the single configured admin account.
type Credentials struct {
	Username     string
	DisplayName  string
	passwordHash []byte
}

// NewCredentials builds admin credentials from config. A non-empty
// passwordHash (bcrypt) wins; otherwise password is hashed here so the
// plaintext is not kept in memory past startup.
func NewCredentials(username, password, passwordHash string) (*Credentials, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("admin username is empty")
	}

	var hash []byte
	switch {
	case passwordHash != "":
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return nil, fmt.Errorf("admin password hash is not a bcrypt hash: %w", err)
		}
		hash = []byte(passwordHash)
	case password != "":
		h, err := HashPassword(password)
		if err != nil {
			return nil, err
		}
		hash = []byte(h)
	default:
		return nil, errors.New("admin password is empty; set admin_password or admin_password_hash")
	}

	return &Credentials{
		Username:     username,
		DisplayName:  "Administrator",
		passwordHash: hash,
	}, nil
}

// Verify checks a login attempt. The username is compared in constant time
// and the password with bcrypt even when the username is wrong, so timing
// does not reveal which part failed.
func (c *Credentials) Verify(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(c.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// SessionUser returns the session identity for the admin account.
func (c *Credentials) SessionUser() SessionUser {
	return SessionUser{
		ID:      c.Username,
		Name:    c.DisplayName,
		LoginID: c.Username,
		Role:    RoleAdmin,
	}
}

// IsAdminID reports whether a session user ID belongs to this account.
// It is suitable as a SessionManager UserChecker.
func (c *Credentials) IsAdminID(id string) bool {
	return subtle.ConstantTimeCompare([]byte(id), []byte(c.Username)) == 1
}

// HashPassword returns a bcrypt hash of password at the default cost.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}
