// Package main — HTTP route registration.
//
// Route sıralama kuralı: literal path'ler parametrik path'lerden ÖNCE
// tanımlanmalı. Örnek: "/api/invites/redeem" bir {serverId} pattern'i
// altına düşmemeli.
package main

import (
	"fmt"
	"net/http"

	"github.com/akinalp/concord/middleware"
	"github.com/akinalp/concord/repository"
	"github.com/akinalp/concord/services"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
func initRoutes(
	mux *http.ServeMux,
	h *Handlers,
	authService services.AuthService,
	userRepo repository.UserRepository,
) {
	authMw := middleware.NewAuthMiddleware(authService, userRepo)

	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(http.HandlerFunc(handler))
	}

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"concord"}`)
	})

	// Auth — public endpoint'ler (token gerekmez)
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/forgot-password", h.Auth.ForgotPassword)
	mux.HandleFunc("POST /api/auth/reset-password", h.Auth.ResetPassword)

	// User
	mux.Handle("GET /api/users/me", auth(h.Auth.Me))
	mux.Handle("POST /api/users/me/password", auth(h.Auth.ChangePassword))

	// Servers
	mux.Handle("GET /api/servers", auth(h.Server.ListMine))
	mux.Handle("POST /api/servers", auth(h.Server.Create))
	mux.Handle("GET /api/servers/{serverId}", auth(h.Server.Get))
	mux.Handle("PATCH /api/servers/{serverId}", auth(h.Server.Rename))
	mux.Handle("DELETE /api/servers/{serverId}", auth(h.Server.Delete))
	mux.Handle("POST /api/servers/{serverId}/leave", auth(h.Server.Leave))
	mux.Handle("GET /api/servers/{serverId}/channels", auth(h.Server.ListChannels))

	// Invites
	mux.Handle("POST /api/invites/redeem", auth(h.Invite.Redeem))
	mux.Handle("GET /api/servers/{serverId}/invites", auth(h.Invite.List))
	mux.Handle("POST /api/servers/{serverId}/invites", auth(h.Invite.Create))
	mux.Handle("DELETE /api/servers/{serverId}/invites/{code}", auth(h.Invite.Delete))

	// Members
	mux.Handle("GET /api/servers/{serverId}/members", auth(h.Member.List))
	mux.Handle("PATCH /api/servers/{serverId}/members/{userId}/role", auth(h.Member.SetRole))
	mux.Handle("DELETE /api/servers/{serverId}/members/{userId}", auth(h.Member.Kick))
}
