// Package handlers — Member endpoint'leri.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/concord/models"
	"github.com/akinalp/concord/pkg"
	"github.com/akinalp/concord/services"
)

// MemberHandler, üyelik endpoint'lerini yöneten struct.
type MemberHandler struct {
	memberService services.MemberService
}

// NewMemberHandler, constructor.
func NewMemberHandler(memberService services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// List godoc
// GET /api/servers/{serverId}/members — sadece üyeler görebilir.
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	members, err := h.memberService.ListByServer(r.Context(), user.ID, r.PathValue("serverId"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, members)
}

// SetRole godoc
// PATCH /api/servers/{serverId}/members/{userId}/role
// Body: { "role": "admin" | "member" } — admin veya owner.
func (h *MemberHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.SetRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.memberService.SetRole(r.Context(),
		user.ID, r.PathValue("serverId"), r.PathValue("userId"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "role updated"})
}

// Kick godoc
// DELETE /api/servers/{serverId}/members/{userId}
// Admin member atabilir; admin'i sadece owner atabilir; owner atılamaz.
func (h *MemberHandler) Kick(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	err := h.memberService.Kick(r.Context(),
		user.ID, r.PathValue("serverId"), r.PathValue("userId"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "member kicked"})
}
