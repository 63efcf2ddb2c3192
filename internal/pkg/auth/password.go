// internal/pkg/auth/password.go
package auth

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/your-org/surfshop-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid admin credentials")

// PasswordManager handles the back-office password hash
type PasswordManager struct {
	cost       int
	adminEmail string
	adminHash  string
}

// NewPasswordManager creates a new password manager
func NewPasswordManager(cfg *config.Config) *PasswordManager {
	return &PasswordManager{
		cost:       cfg.Security.BcryptCost,
		adminEmail: cfg.Admin.Email,
		adminHash:  cfg.Admin.PasswordHash,
	}
}

// HashPassword hashes a password using bcrypt
func (p *PasswordManager) HashPassword(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", fmt.Errorf("password validation failed: %w", err)
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedBytes), nil
}

// VerifyPassword verifies a password against its hash
func (p *PasswordManager) VerifyPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// CheckAdmin matches the configured admin email and password hash
func (p *PasswordManager) CheckAdmin(email, password string) error {
	if p.adminHash == "" {
		return fmt.Errorf("%w: ADMIN_PASSWORD_HASH is not set", ErrInvalidCredentials)
	}
	if !strings.EqualFold(strings.TrimSpace(email), p.adminEmail) {
		return ErrInvalidCredentials
	}
	if err := p.VerifyPassword(password, p.adminHash); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// ValidatePassword validates password strength
func ValidatePassword(password string) error {
	if len(password) < 10 {
		return fmt.Errorf("password must be at least 10 characters long")
	}
	if len(password) > 72 {
		return fmt.Errorf("password must be no more than 72 bytes long")
	}

	var hasLetter, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	if !hasLetter || !hasNumber {
		return fmt.Errorf("password must contain letters and numbers")
	}
	return nil
}
