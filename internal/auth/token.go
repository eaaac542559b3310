package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kearth1516-lgtm/my-app/internal"
)

var ErrInvalidCredentials = errors.New("auth: invalid credentials")
var ErrInvalidToken = errors.New("auth: invalid token")

// TokenService issues and validates bearer tokens for the single
// configured user.
type TokenService struct {
	secret   []byte
	ttl      time.Duration
	username string
	password string
	logger   internal.Logger
}

func NewTokenService(secret, username, password string, ttl time.Duration, logger internal.Logger) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		ttl:      ttl,
		username: username,
		password: password,
		logger:   logger,
	}
}

// Login checks the fixed credential and issues a signed token.
func (s *TokenService) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !userOK || !passOK {
		s.logger.Warnf("auth: failed login attempt for %q", username)
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses a bearer token and returns the authenticated user.
func (s *TokenService) Validate(tokenString string) (*internal.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return &internal.User{ID: claims.Subject, Name: claims.Subject}, nil
}
