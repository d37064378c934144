// Package services — AuthService: kayıt, giriş ve token doğrulama.
//
// Service katmanı HTTP bilmez, SQL çalıştırmaz: domain modelleri alır,
// repository interface'leri üzerinden çalışır. Tüm iş kuralları
// (hash'leme, token üretimi, yetki kontrolleri) burada yaşar.
package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/akinalp/concord/config"
	"github.com/akinalp/concord/models"
	"github.com/akinalp/concord/pkg"
	"github.com/akinalp/concord/pkg/email"
	"github.com/akinalp/concord/repository"
)

// resetTokenTTL, şifre sıfırlama token'ının geçerlilik süresi.
const resetTokenTTL = 20 * time.Minute

// AuthService, kimlik doğrulama iş mantığı için interface.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*AuthResult, error)
	// Login, email + şifre ile giriş yapar.
	Login(ctx context.Context, req *models.LoginRequest) (*AuthResult, error)
	// ValidateAccessToken, JWT access token'ı doğrular ve claims'i döner.
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
	// ChangePassword, mevcut şifreyi doğrulayıp yenisini yazar.
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	// ForgotPassword, kullanıcıya reset linki gönderir. Email sistemde
	// kayıtlı değilse de nil döner — hesap varlığı sızdırılmaz.
	ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error
	// ResetPassword, email'deki token ile yeni şifre belirler.
	ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error
	// BootstrapSuperAdmin, konfigüre edilmiş ilk super admin hesabını
	// oluşturur. Hesap zaten varsa dokunmaz.
	BootstrapSuperAdmin(ctx context.Context, cfg config.BootstrapConfig) error
}

// AuthResult, login/register sonrası dönen token + kullanıcı.
type AuthResult struct {
	AccessToken string      `json:"access_token"`
	User        models.User `json:"user"`
}

type authService struct {
	userRepo  repository.UserRepository
	resetRepo repository.PasswordResetRepository
	sender    email.EmailSender
	jwtSecret []byte
	accessExp time.Duration
}

// NewAuthService, constructor. sender nil olabilir — o durumda
// ForgotPassword devre dışıdır (email gönderilemez).
func NewAuthService(
	userRepo repository.UserRepository,
	resetRepo repository.PasswordResetRepository,
	sender email.EmailSender,
	jwtSecret string,
	accessExpMinutes int,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		resetRepo: resetRepo,
		sender:    sender,
		jwtSecret: []byte(jwtSecret),
		accessExp: time.Duration(accessExpMinutes) * time.Minute,
	}
}

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*AuthResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err // ErrAlreadyExists olabilir
	}

	log.Printf("[auth] registered: id=%s email=%s", user.ID, user.Email)
	return s.buildAuthResult(user)
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*AuthResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			// Aynı mesaj iki hata için de döner — hangi alanın yanlış
			// olduğu sızdırılmaz.
			return nil, fmt.Errorf("%w: invalid email or password", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", pkg.ErrUnauthorized)
	}

	return s.buildAuthResult(user)
}

func (s *authService) ValidateAccessToken(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", pkg.ErrUnauthorized)
	}

	return claims, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", pkg.ErrBadRequest)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("%w: current password is incorrect", pkg.ErrUnauthorized)
	}
	if currentPassword == newPassword {
		return fmt.Errorf("%w: new password must be different from current password", pkg.ErrBadRequest)
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, userID, string(newHash))
}

func (s *authService) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error {
	if s.sender == nil {
		return fmt.Errorf("%w: email delivery is not configured", pkg.ErrInternal)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			// Hesap yok ama başarı dönüyoruz — enumeration'a kapalı.
			return nil
		}
		return err
	}

	// Yeni token eskilerini geçersiz kılar.
	if err := s.resetRepo.DeleteByUserID(ctx, user.ID); err != nil {
		return err
	}

	plaintext, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	record := &models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: hashResetToken(plaintext),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.resetRepo.Create(ctx, record); err != nil {
		return err
	}

	if err := s.sender.SendPasswordReset(ctx, user.Email, plaintext); err != nil {
		return err
	}

	log.Printf("[auth] password reset email sent: user=%s", user.ID)
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	record, err := s.resetRepo.GetByTokenHash(ctx, hashResetToken(req.Token))
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return fmt.Errorf("%w: invalid or expired reset token", pkg.ErrUnauthorized)
		}
		return err
	}

	if time.Now().After(record.ExpiresAt) {
		_ = s.resetRepo.DeleteByUserID(ctx, record.UserID)
		return fmt.Errorf("%w: invalid or expired reset token", pkg.ErrUnauthorized)
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, record.UserID, string(newHash)); err != nil {
		return err
	}

	// Başarılı reset sonrası tüm token'lar iptal.
	return s.resetRepo.DeleteByUserID(ctx, record.UserID)
}

func (s *authService) BootstrapSuperAdmin(ctx context.Context, cfg config.BootstrapConfig) error {
	if cfg.SuperAdminEmail == "" || cfg.SuperAdminPassword == "" {
		return nil // bootstrap konfigüre edilmemiş
	}

	_, err := s.userRepo.GetByEmail(ctx, cfg.SuperAdminEmail)
	if err == nil {
		return nil // hesap zaten var
	}
	if !errors.Is(err, pkg.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SuperAdminPassword), 12)
	if err != nil {
		return fmt.Errorf("failed to hash super admin password: %w", err)
	}

	user := &models.User{
		Username:     cfg.SuperAdminUsername,
		Email:        cfg.SuperAdminEmail,
		PasswordHash: string(hash),
		IsSuperAdmin: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create super admin: %w", err)
	}

	log.Printf("[auth] super admin bootstrapped: email=%s", user.Email)
	return nil
}

// ─── Private Helpers ───

func (s *authService) buildAuthResult(user *models.User) (*AuthResult, error) {
	now := time.Now()
	claims := &models.TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "concord",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	user.PasswordHash = ""

	return &AuthResult{
		AccessToken: signed,
		User:        *user,
	}, nil
}

// generateResetToken, 32 byte'lık rastgele hex token üretir.
func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// hashResetToken, plaintext token'ın DB'de saklanan SHA256 hex hash'i.
func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
