// Package models — Password reset token ve ilgili request struct'ları.
//
// PasswordResetToken, DB'de saklanan token kaydıdır. Token plaintext
// olarak SAKLANMAZ — SHA256 hash'i saklanır. DB sızsa bile tokenlar
// kullanılamaz.
package models

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// PasswordResetToken, şifre sıfırlama token'ının DB kaydı.
type PasswordResetToken struct {
	ID        string
	UserID    string
	TokenHash string // SHA256, hex encoded
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ForgotPasswordRequest, şifre sıfırlama linki isteme.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest, email'deki token ile yeni şifre belirleme.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// Validate, ResetPasswordRequest kontrolü.
func (r *ResetPasswordRequest) Validate() error {
	if r.Token == "" {
		return fmt.Errorf("token is required")
	}
	if utf8.RuneCountInString(r.NewPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}
