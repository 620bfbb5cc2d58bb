package utils // package utils provides helpers for token issuance and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenExpired marks a token whose signature checked out but whose
// expiry has passed. ErrTokenInvalid covers everything else: malformed
// strings, wrong signing method, bad signatures, missing claims. The
// access guard treats both the same outwardly; logs can tell them apart.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// SessionClaims is the identity payload embedded in every access token.
// UserID and Email are set at login; the registered claims carry issued-at
// and expiry. Nothing is stored server side: the token is the session.
type SessionClaims struct {
	UserID uint64 `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AccessToken pairs a signed JWT string with its expiration time.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user. The signing
// secret is process configuration, never derived from request data. The
// TTL is expressed in minutes to match ACCESS_TOKEN_TTL_MIN.
func NewAccessToken(secret string, userID uint64, email string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := SessionClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken validates signature and expiry of a token string and
// returns the embedded session claims. Only HMAC signing methods are
// accepted; a token signed any other way is rejected as invalid.
func ParseAccessToken(secret, raw string) (SessionClaims, error) {
	var claims SessionClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return SessionClaims{}, ErrTokenExpired
		}
		return SessionClaims{}, ErrTokenInvalid
	}
	if !tok.Valid {
		return SessionClaims{}, ErrTokenInvalid
	}
	return claims, nil
}
