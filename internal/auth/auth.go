// Package auth issues and validates the session tokens that gate the tracker
// API. There are three roles: admin edits the real tournament, spectator
// reads it, and simulator gets a private sandboxed copy.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Role is the access level carried by a session token.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleSpectator Role = "spectator"
	RoleSimulator Role = "simulator"
)

// Default admin credential, used when no override is configured. The hash is
// bcrypt of the development password; production deployments set
// ADMIN_USERNAME and ADMIN_PASSWORD_HASH.
const (
	defaultAdminUsername     = "admin"
	defaultAdminPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrUnknownRole        = errors.New("unknown role")
)

// Claims is the token payload: standard registered claims plus the role.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Service checks credentials and mints tokens.
type Service struct {
	secret       []byte
	ttl          time.Duration
	username     string
	passwordHash string
}

// New creates an auth service. Empty username/passwordHash fall back to the
// compiled-in defaults.
func New(secret, username, passwordHash string, ttl time.Duration) *Service {
	if username == "" {
		username = defaultAdminUsername
	}
	if passwordHash == "" {
		passwordHash = defaultAdminPasswordHash
	}
	return &Service{
		secret:       []byte(secret),
		ttl:          ttl,
		username:     username,
		passwordHash: passwordHash,
	}
}

// Login resolves a credential pair to a role. The admin credential grants
// admin; the literal usernames "spectator" and "simulator" grant their role
// with any password, since those views expose nothing sensitive.
func (s *Service) Login(username, password string) (Role, error) {
	switch username {
	case string(RoleSpectator):
		return RoleSpectator, nil
	case string(RoleSimulator):
		return RoleSimulator, nil
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passwordOK := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) == nil
	if !usernameOK || !passwordOK {
		return "", ErrInvalidCredentials
	}
	return RoleAdmin, nil
}

// GenerateToken mints a signed session token for the given role.
func (s *Service) GenerateToken(role Role) (string, error) {
	switch role {
	case RoleAdmin, RoleSpectator, RoleSimulator:
	default:
		return "", ErrUnknownRole
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(role),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signedToken, nil
}

// ValidateToken parses a session token and returns its role.
func (s *Service) ValidateToken(tokenString string) (Role, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	switch Role(claims.Role) {
	case RoleAdmin, RoleSpectator, RoleSimulator:
		return Role(claims.Role), nil
	}
	return "", ErrUnknownRole
}
