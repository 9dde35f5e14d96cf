package services

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/canteen-labs/canteen-backend/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrNoAdminSecret   = errors.New("no admin password configured")
)

// AdminService gates the editing surface behind the shared secret. There are
// no per-user accounts: one password, known to the canteen staff, unlocks
// everything.
type AdminService struct {
	cfg *config.Config
}

func NewAdminService(cfg *config.Config) *AdminService {
	return &AdminService{cfg: cfg}
}

// Verify checks the submitted password against the configured secret. With
// ADMIN_PASSWORD_HASH set the comparison is bcrypt; otherwise the plaintext
// secret is compared in constant time.
func (s *AdminService) Verify(password string) error {
	if s.cfg.AdminPasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)); err != nil {
			return ErrInvalidPassword
		}
		return nil
	}
	if s.cfg.AdminPassword == "" {
		return ErrNoAdminSecret
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) != 1 {
		return ErrInvalidPassword
	}
	return nil
}

// IssueToken mints the admin session JWT. A zero ADMIN_SESSION_TTL omits the
// expiry claim entirely: sessions then last until the secret rotates.
func (s *AdminService) IssueToken() (string, error) {
	claims := jwt.MapClaims{
		"role": "admin",
		"iat":  time.Now().Unix(),
	}
	if s.cfg.AdminSessionTTL > 0 {
		claims["exp"] = time.Now().Add(s.cfg.AdminSessionTTL).Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
