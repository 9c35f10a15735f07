package auth

import (
	"time"

	"github.com/dkotenko/botgate/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the identity assertion encoded in a session token:
// the standard registered claims plus the user's display name. The
// Telegram id is stored in the Subject claim.
type Claims struct {
	jwt.RegisteredClaims
	FullName string `json:"fullName"`
}

// TokenService issues and verifies signed, time-limited session tokens.
// The signing key is a process-wide secret fixed at startup.
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
}

func NewTokenService(secretKey []byte, ttl time.Duration) *TokenService {
	return &TokenService{secretKey: secretKey, ttl: ttl}
}

// Issue signs a token binding the Telegram id and full name, valid from
// now until now+ttl.
func (s *TokenService) Issue(telegramID string, fullName string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   telegramID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		FullName: fullName,
	})

	return token.SignedString(s.secretKey)
}

// Verify parses and validates a token string. Malformed, forged, and
// expired tokens all fail with common.ErrInvalidToken; there is no
// revocation, so a leaked token stays valid until expiry.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
