// Package token issues and verifies the stateless session tokens used by the
// scheduling API. Tokens are HS256 JWTs carrying the user id and role; there
// is no server-side session table and no revocation list, so a token stays
// valid until its expiration instant.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrExpired = errors.New("token expired")
var ErrInvalid = errors.New("token invalid")

// Claims is the payload embedded in every session token.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies tokens with a shared secret and fixed TTL.
type Issuer struct {
	secret []byte
	ttl    time.Duration

	// now is swappable for expiry tests.
	now func() time.Time
}

const defaultTTL = 24 * time.Hour

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue produces a signed token for the given identity. The expiration is
// issue-time + ttl; changing any claim changes the signature.
func (i *Issuer) Issue(userID, role string) (string, error) {
	now := i.now().UTC()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify parses and validates raw. It returns ErrExpired for a token past
// its expiration instant and ErrInvalid for any signature, algorithm, or
// shape failure. No other side effects.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if !tkn.Valid || claims.UserID == "" {
		return nil, ErrInvalid
	}
	return claims, nil
}
