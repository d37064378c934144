package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/concord/config"
	"github.com/akinalp/concord/models"
	"github.com/akinalp/concord/pkg"
	"github.com/akinalp/concord/repository"
)

// captureSender, gönderilen reset token'ı yakalayan test EmailSender'ı.
type captureSender struct {
	lastEmail string
	lastToken string
}

func (c *captureSender) SendPasswordReset(_ context.Context, toEmail, token string) error {
	c.lastEmail = toEmail
	c.lastToken = token
	return nil
}

func newAuthEnv(t *testing.T) (*testEnv, AuthService, *captureSender) {
	t.Helper()
	env := newTestEnv(t)
	sender := &captureSender{}
	resetRepo := repository.NewSQLiteResetTokenRepo(env.db.Conn)
	svc := NewAuthService(env.users, resetRepo, sender, "test-secret", 60)
	return env, svc, sender
}

func TestRegisterAndLogin(t *testing.T) {
	_, svc, _ := newAuthEnv(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, &models.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Empty(t, result.User.PasswordHash)

	// Token doğrulanabilir ve doğru kullanıcıyı taşır.
	claims, err := svc.ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)

	// Giriş email ile yapılır.
	login, err := svc.Login(ctx, &models.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)

	// Yanlış şifre ve bilinmeyen email aynı mesajı üretir.
	_, err = svc.Login(ctx, &models.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-pass",
	})
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)

	_, err = svc.Login(ctx, &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, svc, _ := newAuthEnv(t)
	ctx := context.Background()

	req := &models.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, &models.RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)
}

func TestRegisterValidation(t *testing.T) {
	_, svc, _ := newAuthEnv(t)
	ctx := context.Background()

	cases := []models.RegisterRequest{
		{Username: "ab", Email: "a@b.com", Password: "secret123"},       // kısa username
		{Username: "alice!", Email: "a@b.com", Password: "secret123"},   // geçersiz karakter
		{Username: "alice", Email: "not-an-email", Password: "secret123"},
		{Username: "alice", Email: "a@b.com", Password: "short"},
	}
	for _, req := range cases {
		_, err := svc.Register(ctx, &req)
		assert.ErrorIs(t, err, pkg.ErrBadRequest)
	}
}

func TestValidateAccessTokenRejectsGarbage(t *testing.T) {
	_, svc, _ := newAuthEnv(t)

	_, err := svc.ValidateAccessToken("not.a.jwt")
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestChangePassword(t *testing.T) {
	_, svc, _ := newAuthEnv(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, &models.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	// Mevcut şifre yanlışsa reddedilir.
	err = svc.ChangePassword(ctx, result.User.ID, "wrong", "newsecret123")
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)

	require.NoError(t, svc.ChangePassword(ctx, result.User.ID, "secret123", "newsecret123"))

	_, err = svc.Login(ctx, &models.LoginRequest{
		Email:    "alice@example.com",
		Password: "newsecret123",
	})
	assert.NoError(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	_, svc, sender := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	// Bilinmeyen email sessizce başarı döner, email gitmez.
	require.NoError(t, svc.ForgotPassword(ctx, &models.ForgotPasswordRequest{
		Email: "nobody@example.com",
	}))
	assert.Empty(t, sender.lastToken)

	require.NoError(t, svc.ForgotPassword(ctx, &models.ForgotPasswordRequest{
		Email: "alice@example.com",
	}))
	require.NotEmpty(t, sender.lastToken)
	assert.Equal(t, "alice@example.com", sender.lastEmail)

	// Token ile yeni şifre belirlenir.
	require.NoError(t, svc.ResetPassword(ctx, &models.ResetPasswordRequest{
		Token:       sender.lastToken,
		NewPassword: "resetpass123",
	}))

	_, err = svc.Login(ctx, &models.LoginRequest{
		Email:    "alice@example.com",
		Password: "resetpass123",
	})
	assert.NoError(t, err)

	// Token tek kullanımlıktır.
	err = svc.ResetPassword(ctx, &models.ResetPasswordRequest{
		Token:       sender.lastToken,
		NewPassword: "another123",
	})
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestBootstrapSuperAdmin(t *testing.T) {
	env, svc, _ := newAuthEnv(t)
	ctx := context.Background()

	cfg := config.BootstrapConfig{
		SuperAdminEmail:    "root@example.com",
		SuperAdminUsername: "root",
		SuperAdminPassword: "rootsecret",
	}

	require.NoError(t, svc.BootstrapSuperAdmin(ctx, cfg))

	user, err := env.users.GetByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	assert.True(t, user.IsSuperAdmin)

	// İkinci çağrı idempotent — mevcut hesaba dokunmaz.
	require.NoError(t, svc.BootstrapSuperAdmin(ctx, cfg))

	// Email konfigüre edilmemişse hiçbir şey yapmaz.
	require.NoError(t, svc.BootstrapSuperAdmin(ctx, config.BootstrapConfig{}))
}
