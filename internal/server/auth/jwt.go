// Package auth implements the session token codec: compact signed JWTs
// carrying a subject, a kind (access or refresh) and an expiry. Tokens are
// never persisted; the signed representation presented by the caller is the
// only state. There is no revocation: a token stays valid for its full TTL,
// and rotating the signing secret invalidates every outstanding token.
package auth

import (
	"errors"
	"time"

	"github.com/degreedialog/advisor/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenKind distinguishes short-lived access tokens from long-lived refresh
// tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Claims extends the registered claim set with the token kind.
type Claims struct {
	jwt.RegisteredClaims
	Kind TokenKind `json:"kind"`
}

// Codec issues and verifies session tokens with a single process-wide HS256
// secret loaded once at startup.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewCodec(secret []byte, accessTTL, refreshTTL time.Duration) *Codec {
	return &Codec{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (c *Codec) ttl(kind TokenKind) time.Duration {
	if kind == TokenKindRefresh {
		return c.refreshTTL
	}
	return c.accessTTL
}

// Issue signs a token for the given subject. issued-at is now, expires-at is
// now plus the kind's TTL.
func (c *Codec) Issue(subject string, kind TokenKind) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl(kind))),
		},
		Kind: kind,
	})

	return token.SignedString(c.secret)
}

// Parse verifies the signature and expiry and returns the subject and kind.
// Expired tokens yield common.ErrTokenExpired; everything else that fails to
// verify (bad encoding, bad signature, missing fields, unknown kind) yields
// common.ErrInvalidToken.
func (c *Codec) Parse(tokenString string) (string, TokenKind, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", common.ErrTokenExpired
		}
		return "", "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return "", "", common.ErrInvalidToken
	}
	if claims.Kind != TokenKindAccess && claims.Kind != TokenKindRefresh {
		return "", "", common.ErrInvalidToken
	}

	return claims.Subject, claims.Kind, nil
}
