package services

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/maitri-app/maitri-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAdminNotConfigured      = errors.New("admin credentials are not configured on the server")
	ErrInvalidAdminCredentials = errors.New("invalid admin username or password")
	ErrInvalidSessionToken     = errors.New("invalid or expired admin session")
)

// AdminService gates moderation access behind a single shared credential
// pair. There is no admin user row: a successful login mints a signed,
// expiring session token carried in an HTTP-only cookie and verified
// statelessly, so anyone holding the shared secret gets full moderation
// visibility until the token expires.
type AdminService struct {
	cfg *config.Config
}

func NewAdminService(cfg *config.Config) *AdminService {
	return &AdminService{cfg: cfg}
}

// Login checks the credential pair and returns a signed session token.
// ADMIN_PASSWORD_HASH (bcrypt) takes precedence over the plaintext
// ADMIN_PASSWORD when both are set.
func (s *AdminService) Login(username, password string) (string, error) {
	if !s.cfg.AdminConfigured() || s.cfg.SessionSecret == "" {
		return "", ErrAdminNotConfigured
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUsername)) == 1

	var passOK bool
	if s.cfg.AdminPasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
	}

	if !userOK || !passOK {
		return "", ErrInvalidAdminCredentials
	}

	return s.generateSessionToken()
}

func (s *AdminService) generateSessionToken() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  "admin",
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.SessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.SessionSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// VerifySession validates a session token's signature and expiry. The
// token itself is the whole session; there is no server-side session
// table, so expiry and cookie clearing are the only invalidation paths.
func (s *AdminService) VerifySession(tokenString string) error {
	if tokenString == "" {
		return ErrInvalidSessionToken
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.SessionSecret), nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidSessionToken
	}
	return nil
}
