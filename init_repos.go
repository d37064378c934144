// Package main — Repository katmanı başlatma.
package main

import (
	"github.com/akinalp/concord/database"
	"github.com/akinalp/concord/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
type Repositories struct {
	User       repository.UserRepository
	Server     repository.ServerRepository
	Channel    repository.ChannelRepository
	Membership repository.MembershipRepository
	Invite     repository.InviteRepository
	ResetToken repository.PasswordResetRepository
}

// initRepos, tüm repository'leri DB bağlantısı ile oluşturur.
// Transaction'lı akışlar bu instance'ları değil, WithTx içinde
// tx-bound kopyalarını kullanır.
func initRepos(db *database.DB) *Repositories {
	return &Repositories{
		User:       repository.NewSQLiteUserRepo(db.Conn),
		Server:     repository.NewSQLiteServerRepo(db.Conn),
		Channel:    repository.NewSQLiteChannelRepo(db.Conn),
		Membership: repository.NewSQLiteMembershipRepo(db.Conn),
		Invite:     repository.NewSQLiteInviteRepo(db.Conn),
		ResetToken: repository.NewSQLiteResetTokenRepo(db.Conn),
	}
}
