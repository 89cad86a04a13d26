package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ContextEmailKey is the gin context key the access guard stores the
// verified claim email under.
const ContextEmailKey = "claimEmail"

// TokenTTL is the lifetime of issued tokens.
const TokenTTL = 365 * 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrForbidden    = errors.New("forbidden access")
)

// Claims is the payload of issued tokens: the email plus standard expiry.
// No issuer or audience is set or checked.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens. Tokens are not
// persisted and cannot be revoked; verification does not check that the
// email still corresponds to an existing account.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    TokenTTL,
	}
}

// Issue signs a token carrying the given email.
func (s *TokenService) Issue(email string) (string, error) {
	return s.issue(email, s.ttl)
}

func (s *TokenService) issue(email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify parses the token and returns the email claim. It fails on a bad
// signature, an expired token, or a malformed string.
func (s *TokenService) Verify(tokenStr string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	return claims.Email, nil
}

// RequireSelf is the single ownership assertion shared by every protected
// endpoint: the caller-supplied owner email must match the verified claim.
func RequireSelf(claimEmail, suppliedEmail string) error {
	if claimEmail == "" || claimEmail != suppliedEmail {
		return ErrForbidden
	}
	return nil
}
