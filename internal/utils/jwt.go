package utils // package utils provides helpers for issuing and verifying access tokens

import (
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

// Roles accepted by the rental API.
const (
    RoleClerk = "CLERK"
    RoleAdmin = "ADMIN"
)

// AccessClaims is the payload of an access token.  The subject identifies
// the operator (a clerk login or a service name) and Role gates which
// routes the token may call.
type AccessClaims struct {
    Role string `json:"role"`
    jwt.RegisteredClaims
}

// AccessToken represents a signed JWT access token along with its expiry.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// ErrInvalidToken is returned by ParseAccessToken for any token that fails
// signature, algorithm or expiry checks.
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for an operator with the
// given role, valid for ttlMin minutes.
func NewAccessToken(secret, subject, role string, ttlMin int) (AccessToken, error) {
    now := time.Now().UTC()
    exp := now.Add(time.Duration(ttlMin) * time.Minute)
    claims := AccessClaims{
        Role: role,
        RegisteredClaims: jwt.RegisteredClaims{
            Subject:   subject,
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(exp),
        },
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies raw against secret and returns its claims.
// Only HMAC-signed tokens are accepted.
func ParseAccessToken(secret, raw string) (*AccessClaims, error) {
    claims := &AccessClaims{}
    tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    }, jwt.WithExpirationRequired())
    if err != nil || !tok.Valid {
        return nil, ErrInvalidToken
    }
    return claims, nil
}
