package identity

import (
	"bookstall/internal/marketerrors"
	"bookstall/internal/models"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated caller handed to every marketplace operation
type Identity struct {
	UserID string
	Role   models.Role
}

// Resolver turns a bearer token into the caller's identity
type Resolver interface {
	Resolve(token string) (Identity, error)
}

// TokenIssuer signs tokens for an identity
type TokenIssuer interface {
	Issue(id Identity) (string, error)
}

// Claims is the token payload
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies HS256 tokens
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTManager creates a JWTManager signing with secret; tokens expire after ttl
func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for id
func (m *JWTManager) Issue(id Identity) (string, error) {
	now := m.now()
	claims := Claims{
		Role: string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("identity: sign token: %w", err)
	}
	return signed, nil
}

// Resolve verifies token and returns the identity it carries
func (m *JWTManager) Resolve(token string) (Identity, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid {
		return Identity{}, fmt.Errorf("identity: %w - invalid token", marketerrors.ErrUnauthorized)
	}

	role := models.Role(claims.Role)
	if claims.Subject == "" || (role != models.RoleClient && role != models.RoleAdmin) {
		return Identity{}, fmt.Errorf("identity: %w - incomplete claims", marketerrors.ErrUnauthorized)
	}
	return Identity{UserID: claims.Subject, Role: role}, nil
}
