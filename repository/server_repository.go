// Package repository — ServerRepository interface.
package repository

import (
	"context"

	"github.com/akinalp/concord/models"
)

// ServerRepository, sunucu veritabanı işlemleri için interface.
type ServerRepository interface {
	Create(ctx context.Context, server *models.Server) error
	GetByID(ctx context.Context, serverID string) (*models.Server, error)
	// UpdateName, sunucuyu yeniden adlandırır. Sunucu yoksa pkg.ErrNotFound.
	UpdateName(ctx context.Context, serverID, name string) error
	Delete(ctx context.Context, serverID string) error
	// GetUserServers, kullanıcının üye olduğu sunucuları döner.
	GetUserServers(ctx context.Context, userID string) ([]models.Server, error)
}
