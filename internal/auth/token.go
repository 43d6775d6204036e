package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tasktrackr/task-tracker-api/internal/models"
	"go.uber.org/zap"
)

// hs256MinKeyBytes is the minimum key length for HMAC-SHA256 (256 bits).
const hs256MinKeyBytes = 32

var ErrInvalidToken = errors.New("invalid token")

// Claims carried by every issued token. The subject is the user's email.
type Claims struct {
	UserID uint64 `json:"id"`
	Email  string `json:"email"`
	Roles  string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed, time-limited identity tokens.
// Validity is purely a function of signature and expiry; there is no
// revocation list.
type TokenService struct {
	key []byte
	ttl time.Duration
}

// NewTokenService derives the signing key from the configured secret.
// Secrets shorter than 32 bytes are right-padded with index-valued filler so
// development setups keep working; that padding is predictable and such
// secrets must not be used in production.
func NewTokenService(secret string, ttl time.Duration, log *zap.Logger) *TokenService {
	key := []byte(secret)
	if len(key) < hs256MinKeyBytes {
		if log != nil {
			log.Warn("jwt secret below 256 bits, padding with filler bytes; unsuitable for production",
				zap.Int("secret_bytes", len(key)),
				zap.Int("min_bytes", hs256MinKeyBytes),
			)
		}
		padded := make([]byte, hs256MinKeyBytes)
		copy(padded, key)
		for i := len(key); i < hs256MinKeyBytes; i++ {
			padded[i] = byte(i)
		}
		key = padded
	}
	return &TokenService{key: key, ttl: ttl}
}

// Issue produces a signed token embedding the user's identity claims.
func (s *TokenService) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// Validate reports whether the token is well-formed, correctly signed and
// unexpired. It fails closed: every parse, signature or expiry failure
// collapses to false.
func (s *TokenService) Validate(tokenStr string) bool {
	_, err := s.parse(tokenStr)
	return err == nil
}

// Subject extracts the email claim from a token. Callers are expected to
// have validated the token first.
func (s *TokenService) Subject(tokenStr string) (string, error) {
	claims, err := s.parse(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (s *TokenService) parse(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg %v", token.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := t.Claims.(*Claims); ok && t.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
