// Package repository — InviteRepository interface.
//
// Davet kodları sunucu kapsamlıdır: kod sunucu içinde benzersizdir ve
// tüm lookup'lar (server_id, code) çifti ile yapılır.
package repository

import (
	"context"

	"github.com/akinalp/concord/models"
)

// InviteRepository, davet kodu veritabanı işlemleri için interface.
type InviteRepository interface {
	// Create, yeni bir davet kodu oluşturur. Aynı sunucuda aynı kod
	// varsa pkg.ErrAlreadyExists döner.
	Create(ctx context.Context, invite *models.Invite) error

	// GetByServerAndCode, (server, code) davetini döner; yoksa pkg.ErrNotFound.
	GetByServerAndCode(ctx context.Context, serverID, code string) (*models.Invite, error)

	// ListByServer, sunucunun davetlerini oluşturan kullanıcı bilgisiyle döner.
	ListByServer(ctx context.Context, serverID string) ([]models.InviteWithCreator, error)

	// DecrementUses, kalan kullanım hakkını koşullu olarak 1 azaltır.
	// UPDATE ... WHERE uses > 0 guard'ı sayesinde sayaç asla negatife
	// inmez; hak kalmamışsa (veya davet yoksa) pkg.ErrInviteExhausted
	// döner. Eşzamanlı redemption yarışının kaybedeni burada elenir.
	DecrementUses(ctx context.Context, serverID, code string) error

	// Delete, bir davet kodunu siler; yoksa pkg.ErrNotFound.
	Delete(ctx context.Context, serverID, code string) error

	// DeleteByServer, sunucunun tüm davetlerini siler.
	DeleteByServer(ctx context.Context, serverID string) error
}
