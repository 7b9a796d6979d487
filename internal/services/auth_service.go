package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"hungerscrm/internal/repositories"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

// AuthService is the single-tenant local gate: one admin account, a
// bcrypt hash in the local store and short-lived HS256 access tokens.
// This is not a multi-user auth system and does not pretend to be.
type AuthService struct {
	Settings   *repositories.SettingsRepository
	adminEmail string
	jwtKey     []byte
}

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func NewAuthService(settings *repositories.SettingsRepository, adminEmail, initialPassword, jwtSecret string) (*AuthService, error) {
	if jwtSecret == "" {
		return nil, errors.New("jwt secret is required")
	}
	s := &AuthService{
		Settings:   settings,
		adminEmail: strings.ToLower(strings.TrimSpace(adminEmail)),
		jwtKey:     []byte(jwtSecret),
	}

	// Seed the credential on first start only; later password changes
	// survive restarts.
	hash, err := settings.PasswordHash()
	if err != nil {
		return nil, err
	}
	if hash == "" {
		if initialPassword == "" {
			return nil, errors.New("admin initial_password is required on first start")
		}
		h, err := bcrypt.GenerateFromPassword([]byte(initialPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		if err := settings.SavePasswordHash(string(h)); err != nil {
			return nil, err
		}
		log.Printf("[auth] admin credential seeded for %s", s.adminEmail)
	}
	return s, nil
}

func (s *AuthService) JWTKey() []byte {
	return s.jwtKey
}

// Login verifies the admin credential and issues a 15-minute token.
func (s *AuthService) Login(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != s.adminEmail {
		return "", ErrInvalidCredentials
	}
	hash, err := s.Settings.PasswordHash()
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(strings.TrimSpace(password))) != nil {
		return "", ErrInvalidCredentials
	}

	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

// ChangePassword verifies the current password against the stored
// hash before writing the new one. No simulated delays, no fake
// success.
func (s *AuthService) ChangePassword(current, next, confirm string) error {
	if next == "" || next != confirm {
		return ErrPasswordMismatch
	}
	hash, err := s.Settings.PasswordHash()
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}
	h, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.Settings.SavePasswordHash(string(h))
}

// ParseToken validates an access token and returns its claims.
func (s *AuthService) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	return claims, nil
}
