// Package repository, veritabanı erişim katmanını tanımlar.
//
// Repository Pattern: service katmanı doğrudan SQL yazmaz, interface
// üzerinden çalışır. Böylece testte farklı bir implementasyon geçilebilir
// ve service concrete struct'a değil soyutlamaya bağımlı olur.
//
// Tüm SQLite implementasyonları database.TxQuerier alır — hem *sql.DB hem
// *sql.Tx bu interface'i karşılar. Normal operasyonlar pool üzerinden,
// transaction'lı akışlar WithTx içinde tx-bound repo'larla çalışır.
package repository

import (
	"context"

	"github.com/akinalp/concord/models"
)

// UserRepository, kullanıcı veritabanı işlemleri için interface.
type UserRepository interface {
	// Create, yeni kullanıcı ekler. Email benzersizdir —
	// çakışmada pkg.ErrAlreadyExists döner.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdatePassword, kullanıcının şifre hash'ini günceller.
	UpdatePassword(ctx context.Context, userID string, newPasswordHash string) error
}
