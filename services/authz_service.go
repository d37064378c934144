// Package services — AuthzService: yetki kontrol kapısı.
//
// İki saf predicate sunar: IsOwner ve IsAdminOrOwner. İkisi de membership
// ledger'a bakar; üyelik satırı yoksa bu bir hata DEĞİL, "yetkisiz"
// demektir (false döner). Mutating engine operasyonları bu kapıdan
// geçmeden veri değiştirmez.
//
// Kontroller her zaman açık (userID, serverID) çifti alır — session'a
// bağlı örtük bir "current user" nesnesi yoktur.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/akinalp/concord/models"
	"github.com/akinalp/concord/pkg"
	"github.com/akinalp/concord/repository"
)

// AuthzService, rol bazlı yetki kontrolleri için interface.
type AuthzService interface {
	// IsOwner, kullanıcının sunucuda owner olup olmadığını döner.
	IsOwner(ctx context.Context, userID, serverID string) (bool, error)

	// IsAdminOrOwner, kullanıcının sunucuda admin veya owner olup
	// olmadığını döner.
	IsAdminOrOwner(ctx context.Context, userID, serverID string) (bool, error)
}

type authzService struct {
	membershipRepo repository.MembershipRepository
}

// NewAuthzService, constructor.
func NewAuthzService(membershipRepo repository.MembershipRepository) AuthzService {
	return &authzService{membershipRepo: membershipRepo}
}

func (s *authzService) IsOwner(ctx context.Context, userID, serverID string) (bool, error) {
	role, err := s.roleOf(ctx, userID, serverID)
	if err != nil {
		return false, err
	}
	return role == models.RoleOwner, nil
}

func (s *authzService) IsAdminOrOwner(ctx context.Context, userID, serverID string) (bool, error) {
	role, err := s.roleOf(ctx, userID, serverID)
	if err != nil {
		return false, err
	}
	return role == models.RoleAdmin || role == models.RoleOwner, nil
}

// roleOf, üyelik satırının rolünü döner; üyelik yoksa boş rol.
// ErrNotFound burada yutulur — "üye değil" yetki kontrolünde
// sadece false sonucu üretir, hata değil.
func (s *authzService) roleOf(ctx context.Context, userID, serverID string) (models.MemberRole, error) {
	m, err := s.membershipRepo.Get(ctx, serverID, userID)
	if errors.Is(err, pkg.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to check membership role: %w", err)
	}
	return m.Role, nil
}
