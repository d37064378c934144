// Package main — Handler katmanı başlatma.
package main

import (
	"github.com/akinalp/concord/handlers"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth   *handlers.AuthHandler
	Server *handlers.ServerHandler
	Invite *handlers.InviteHandler
	Member *handlers.MemberHandler
}

// initHandlers, tüm handler'ları service'ler ile oluşturur.
func initHandlers(svcs *Services) *Handlers {
	return &Handlers{
		Auth:   handlers.NewAuthHandler(svcs.Auth),
		Server: handlers.NewServerHandler(svcs.Server),
		Invite: handlers.NewInviteHandler(svcs.Invite),
		Member: handlers.NewMemberHandler(svcs.Member),
	}
}
