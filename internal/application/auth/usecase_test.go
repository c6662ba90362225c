package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Inventario-pos/internal/application/auth"
	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/pkg/jwt"
)

const (
	secret = "s3cr3t"
	issuer = "inventario-pos-test"
)

func newAuth(t *testing.T, password string) *auth.AuthUseCase {
	t.Helper()
	var hash string
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		require.NoError(t, err)
		hash = string(h)
	}
	return auth.NewAuthUseCase(
		auth.Operator{Username: "caja", PasswordHash: hash},
		auth.JWTConfig{Secret: secret, ExpMinutes: 30, Issuer: issuer},
	)
}

func TestLogin_OK(t *testing.T) {
	uc := newAuth(t, "clave")
	before := time.Now()

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "caja", Password: "clave"})
	require.NoError(t, err)
	assert.WithinDuration(t, before.Add(30*time.Minute), out.ExpiresAt, 5*time.Second)

	sub, role, err := jwt.Parse(secret, issuer, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "caja", sub)
	assert.Equal(t, auth.RoleOperator, role)
}

func TestLogin_Rechazos(t *testing.T) {
	uc := newAuth(t, "clave")
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Username: "caja", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "caja"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_SinHashConfigurado(t *testing.T) {
	uc := newAuth(t, "")
	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "caja", Password: "cualquiera"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
