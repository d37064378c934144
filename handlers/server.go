// Package handlers — Server endpoint'leri.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/concord/models"
	"github.com/akinalp/concord/pkg"
	"github.com/akinalp/concord/services"
)

// ServerHandler, sunucu endpoint'lerini yöneten struct.
type ServerHandler struct {
	serverService services.ServerService
}

// NewServerHandler, constructor.
func NewServerHandler(serverService services.ServerService) *ServerHandler {
	return &ServerHandler{serverService: serverService}
}

// Create godoc
// POST /api/servers
// Body: { "name": "..." }
//
// Oluşturan kullanıcı owner olur; "General" text ve "General Voice"
// voice kanalları otomatik açılır.
func (h *ServerHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.CreateServerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	server, err := h.serverService.Create(r.Context(), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, server)
}

// ListMine godoc
// GET /api/servers
func (h *ServerHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	servers, err := h.serverService.GetUserServers(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, servers)
}

// Get godoc
// GET /api/servers/{serverId}
func (h *ServerHandler) Get(w http.ResponseWriter, r *http.Request) {
	server, err := h.serverService.Get(r.Context(), r.PathValue("serverId"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, server)
}

// ListChannels godoc
// GET /api/servers/{serverId}/channels
func (h *ServerHandler) ListChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := h.serverService.ListChannels(r.Context(), r.PathValue("serverId"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, channels)
}

// Rename godoc
// PATCH /api/servers/{serverId}
// Body: { "name": "..." } — sadece owner.
func (h *ServerHandler) Rename(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.UpdateServerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	server, err := h.serverService.Rename(r.Context(), user.ID, r.PathValue("serverId"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, server)
}

// Delete godoc
// DELETE /api/servers/{serverId} — sadece owner.
func (h *ServerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.serverService.Delete(r.Context(), user.ID, r.PathValue("serverId")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "server deleted"})
}

// Leave godoc
// POST /api/servers/{serverId}/leave
// Owner ayrılamaz; sunucuyu silmesi gerekir.
func (h *ServerHandler) Leave(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.serverService.Leave(r.Context(), user.ID, r.PathValue("serverId")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "left the server"})
}
