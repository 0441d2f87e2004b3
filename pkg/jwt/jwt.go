package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenExpiryLogin = 48 * time.Hour
	TokenExpiryReset = 15 * time.Minute

	purposeLogin = "login"
	purposeReset = "reset"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID  uint   `json:"user_id"`
	Role    string `json:"role,omitempty"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Manager signs and parses HS256 tokens with one shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = TokenExpiryLogin
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func (m *Manager) GenerateToken(userID uint, role string) (string, error) {
	return m.sign(userID, role, purposeLogin, m.ttl)
}

func (m *Manager) GenerateResetToken(userID uint) (string, error) {
	return m.sign(userID, "", purposeReset, TokenExpiryReset)
}

func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString, purposeLogin)
}

func (m *Manager) ValidateResetToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString, purposeReset)
}

func (m *Manager) sign(userID uint, role, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:  userID,
		Role:    role,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) parse(tokenString, purpose string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid || claims.Purpose != purpose || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
