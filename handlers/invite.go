// Package handlers — Invite endpoint'leri.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/concord/models"
	"github.com/akinalp/concord/pkg"
	"github.com/akinalp/concord/services"
)

// InviteHandler, davet endpoint'lerini yöneten struct.
type InviteHandler struct {
	inviteService services.InviteService
}

// NewInviteHandler, constructor.
func NewInviteHandler(inviteService services.InviteService) *InviteHandler {
	return &InviteHandler{inviteService: inviteService}
}

// Create godoc
// POST /api/servers/{serverId}/invites
// Body: { "code": "", "expires_at": 0, "max_uses": 1 }
//
// code boş bırakılırsa rastgele üretilir. Response'ta composite davet
// string'i ("invite::code:server_id") de döner — paylaşılacak olan budur.
func (h *InviteHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.CreateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	invite, err := h.inviteService.Create(r.Context(), user.ID, r.PathValue("serverId"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, map[string]any{
		"invite":        invite,
		"invite_string": invite.String(),
	})
}

// Redeem godoc
// POST /api/invites/redeem
// Body: { "invite": "invite::code:server_id" }
//
// Başarılı redemption kullanıcıyı member rolüyle sunucuya ekler ve
// katıldığı sunucuyu döner.
func (h *InviteHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.RedeemInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	server, err := h.inviteService.Redeem(r.Context(), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, server)
}

// List godoc
// GET /api/servers/{serverId}/invites — admin veya owner.
func (h *InviteHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	invites, err := h.inviteService.ListByServer(r.Context(), user.ID, r.PathValue("serverId"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, invites)
}

// Delete godoc
// DELETE /api/servers/{serverId}/invites/{code} — admin veya owner.
func (h *InviteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	err := h.inviteService.Delete(r.Context(), user.ID, r.PathValue("serverId"), r.PathValue("code"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "invite deleted"})
}
