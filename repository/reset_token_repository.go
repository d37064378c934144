// Package repository — PasswordResetRepository interface.
package repository

import (
	"context"

	"github.com/akinalp/concord/models"
)

// PasswordResetRepository, şifre sıfırlama token'ları için interface.
// Token'lar hash'lenmiş saklanır; lookup SHA256 hash üzerinden yapılır.
type PasswordResetRepository interface {
	Create(ctx context.Context, token *models.PasswordResetToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error)
	// DeleteByUserID, kullanıcının tüm reset token'larını siler —
	// yeni token istenince eskileri ve başarılı reset sonrası hepsi iptal olur.
	DeleteByUserID(ctx context.Context, userID string) error
}
