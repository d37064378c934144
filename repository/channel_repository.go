// Package repository — ChannelRepository interface.
//
// Kanallar bu serviste yalnızca sunucu oluşturma sırasında açılır ve
// sunucu silinirken topluca silinir; tekil kanal CRUD'u yoktur.
package repository

import (
	"context"

	"github.com/akinalp/concord/models"
)

// ChannelRepository, kanal veritabanı işlemleri için interface.
type ChannelRepository interface {
	Create(ctx context.Context, channel *models.Channel) error
	ListByServer(ctx context.Context, serverID string) ([]models.Channel, error)
	// DeleteByServer, sunucunun tüm kanallarını siler.
	// Mesajlar FK cascade ile kanallarla birlikte gider.
	DeleteByServer(ctx context.Context, serverID string) error
}
