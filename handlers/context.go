// Package handlers, HTTP request/response işlemlerini yönetir.
//
// Handler ince kalır: body'yi parse et, service'i çağır, sonucu yaz.
// İş mantığı service'de, SQL repository'de — handler sadece köprü.
package handlers

import (
	"net/http"

	"github.com/akinalp/concord/models"
	"github.com/akinalp/concord/pkg"
)

// contextKey, context.Value çakışmalarını önleyen özel key tipi.
type contextKey string

// UserContextKey, auth middleware'ın context'e koyduğu kullanıcı.
const UserContextKey contextKey = "user"

// currentUser, context'ten authenticated kullanıcıyı çeker.
// Middleware'dan geçmemiş bir route'ta çağrılırsa 401 yazar ve false döner.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return nil, false
	}
	return user, true
}
