// Package main — Service katmanı başlatma.
//
// initServices, tüm service implementasyonlarını oluşturur. Her service
// ihtiyaç duyduğu repository interface'lerini constructor injection ile
// alır; transaction gereken service'ler ayrıca *database.DB alır.
package main

import (
	"log"

	"github.com/akinalp/concord/config"
	"github.com/akinalp/concord/database"
	"github.com/akinalp/concord/pkg/email"
	"github.com/akinalp/concord/services"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth   services.AuthService
	Authz  services.AuthzService
	Server services.ServerService
	Invite services.InviteService
	Member services.MemberService
}

// initServices, tüm service'leri oluşturur.
func initServices(db *database.DB, repos *Repositories, cfg *config.Config) *Services {
	// Email service (opsiyonel) — API key yoksa şifre sıfırlama devre dışı.
	var emailSender email.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		emailSender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail, cfg.Email.AppURL)
		log.Printf("[main] email service enabled (from=%s)", cfg.Email.FromEmail)
	} else {
		log.Println("[main] email service disabled (RESEND_API_KEY not set)")
	}

	authzService := services.NewAuthzService(repos.Membership)

	return &Services{
		Auth: services.NewAuthService(
			repos.User, repos.ResetToken, emailSender,
			cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry,
		),
		Authz:  authzService,
		Server: services.NewServerService(db, repos.Server, repos.Channel, authzService),
		Invite: services.NewInviteService(db, repos.Invite, repos.Server, authzService, nil),
		Member: services.NewMemberService(db, repos.Membership, repos.Server, authzService),
	}
}
