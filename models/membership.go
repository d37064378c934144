// Package models — Membership domain modeli.
//
// Membership, bir kullanıcının bir sunucudaki üyeliğini temsil eder:
// (user × server) başına en fazla bir satır (composite PK) ve sunucu
// başına en fazla bir 'owner' satırı (partial unique index, 001_init.sql).
package models

import (
	"fmt"
	"time"
)

// MemberRole, üyelik rolünü temsil eder.
type MemberRole string

// İzin verilen roller. Owner rolü bu tip üzerinden değil, yalnızca
// sunucu oluşturma sırasında atanır — SetRole asla owner atamaz/almaz.
const (
	RoleOwner  MemberRole = "owner"
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"
)

// Membership, bir üyelik satırını temsil eder.
type Membership struct {
	ServerID string     `json:"server_id"`
	UserID   string     `json:"user_id"`
	Role     MemberRole `json:"role"`
	JoinedAt time.Time  `json:"joined_at"`
}

// MemberWithUser, üyeliği kullanıcı bilgisiyle birlikte döner.
// Üye listesi endpoint'inde kullanılır.
type MemberWithUser struct {
	Membership
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SetRoleRequest, rol değiştirme (promote/demote) isteği.
type SetRoleRequest struct {
	Role MemberRole `json:"role"`
}

// Validate, SetRoleRequest kontrolü. Sadece admin ve member atanabilir;
// owner dahil diğer tüm değerler reddedilir.
func (r *SetRoleRequest) Validate() error {
	if r.Role != RoleAdmin && r.Role != RoleMember {
		return fmt.Errorf("role must be either %q or %q", RoleAdmin, RoleMember)
	}
	return nil
}
