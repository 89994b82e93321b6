package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/davixiao/MeetTheDev/internal/core/domain"
)

// DefaultTokenTTL matches the lifetime the web client was built against.
// It is long for a bearer token and is overridable through TOKEN_TTL.
const DefaultTokenTTL = 100 * time.Hour

type tokenUser struct {
	ID string `json:"id"`
}

// tokenClaims keeps the {"user":{"id":...}} payload shape existing clients decode.
type tokenClaims struct {
	User tokenUser `json:"user"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 signed, time limited tokens.
// It is stateless: there is no revocation list.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for userID that expires ttl from now.
func (s *TokenService) Issue(userID string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)

	claims := tokenClaims{
		User: tokenUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify checks signature and expiry and returns the embedded user id.
func (s *TokenService) Verify(token string) (string, error) {
	if token == "" {
		return "", &domain.AuthError{Kind: domain.AuthMissing}
	}

	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", &domain.AuthError{Kind: domain.AuthInvalid, Err: err}
	}
	if !parsed.Valid || claims.User.ID == "" {
		return "", &domain.AuthError{Kind: domain.AuthInvalid, Err: errors.New("token carries no user")}
	}
	return claims.User.ID, nil
}
