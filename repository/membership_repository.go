// Package repository — MembershipRepository interface.
//
// Membership ledger: kullanıcı × sunucu ilişkisi ve rolü. Yetki
// kontrolleri (owner mı, admin mi) bu tablo üzerinden yapılır.
package repository

import (
	"context"

	"github.com/akinalp/concord/models"
)

// MembershipRepository, üyelik veritabanı işlemleri için interface.
type MembershipRepository interface {
	// Create, yeni üyelik satırı ekler. Aynı (server, user) çifti için
	// ikinci satır pkg.ErrAlreadyMember, sunucuya ikinci owner satırı
	// pkg.ErrConstraint döner (partial unique index).
	Create(ctx context.Context, m *models.Membership) error

	// Get, (server, user) üyelik satırını döner; yoksa pkg.ErrNotFound.
	Get(ctx context.Context, serverID, userID string) (*models.Membership, error)

	// UpdateRole, üyenin rolünü günceller; üyelik yoksa pkg.ErrNotFound.
	UpdateRole(ctx context.Context, serverID, userID string, role models.MemberRole) error

	// Delete, üyelik satırını siler; yoksa pkg.ErrNotFound.
	Delete(ctx context.Context, serverID, userID string) error

	// DeleteByServer, sunucunun tüm üyeliklerini siler.
	DeleteByServer(ctx context.Context, serverID string) error

	// ListByServer, sunucunun üyelerini kullanıcı bilgisiyle döner.
	ListByServer(ctx context.Context, serverID string) ([]models.MemberWithUser, error)
}
