package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kearth1516-lgtm/my-app/internal"
)

func TestLoginAndValidate(t *testing.T) {
	svc := NewTokenService("test-secret", "admin", "secret123", time.Hour, internal.NopLogger{})

	token, err := svc.Login("admin", "secret123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	user, err := svc.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, "admin", user.Name)
}

func TestLoginRejectsWrongCredentials(t *testing.T) {
	svc := NewTokenService("test-secret", "admin", "secret123", time.Hour, internal.NopLogger{})

	_, err := svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login("someone", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", "admin", "secret123", -time.Minute, internal.NopLogger{})

	token, err := svc.Login("admin", "secret123")
	assert.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsForeignToken(t *testing.T) {
	issuer := NewTokenService("secret-a", "admin", "secret123", time.Hour, internal.NopLogger{})
	verifier := NewTokenService("secret-b", "admin", "secret123", time.Hour, internal.NopLogger{})

	token, err := issuer.Login("admin", "secret123")
	assert.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = verifier.Validate("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
