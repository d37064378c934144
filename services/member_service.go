// Package services — MemberService: üye listesi, rol değişimi ve kick.
//
// Rol kuralları:
//   - SetRole admin veya owner tarafından çağrılabilir ve yalnızca
//     admin ↔ member arasında geçiş yapar. Owner rolü bu yoldan ne
//     atanabilir ne alınabilir — hedef owner ise istek reddedilir.
//   - Kick: owner hiçbir koşulda atılamaz, admin sadece owner tarafından
//     atılabilir, member admin veya owner tarafından atılabilir.
//     Kullanıcı kendini kick edemez, onun yolu Leave.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/akinalp/concord/database"
	"github.com/akinalp/concord/models"
	"github.com/akinalp/concord/pkg"
	"github.com/akinalp/concord/repository"
)

// MemberService, üyelik iş mantığı için interface.
type MemberService interface {
	// ListByServer, sunucunun üyelerini kullanıcı bilgisiyle döner.
	// Her üye listeyi görebilir; üye olmayanlar göremez.
	ListByServer(ctx context.Context, actorID, serverID string) ([]models.MemberWithUser, error)

	// SetRole, hedef üyenin rolünü admin veya member yapar.
	SetRole(ctx context.Context, actorID, serverID, targetUserID string, req *models.SetRoleRequest) error

	// Kick, hedef üyeyi sunucudan atar.
	Kick(ctx context.Context, actorID, serverID, targetUserID string) error
}

type memberService struct {
	db             *database.DB
	membershipRepo repository.MembershipRepository
	serverRepo     repository.ServerRepository
	authz          AuthzService
}

// NewMemberService, constructor.
func NewMemberService(
	db *database.DB,
	membershipRepo repository.MembershipRepository,
	serverRepo repository.ServerRepository,
	authz AuthzService,
) MemberService {
	return &memberService{
		db:             db,
		membershipRepo: membershipRepo,
		serverRepo:     serverRepo,
		authz:          authz,
	}
}

func (s *memberService) ListByServer(ctx context.Context, actorID, serverID string) ([]models.MemberWithUser, error) {
	if _, err := s.serverRepo.GetByID(ctx, serverID); err != nil {
		return nil, err
	}

	// Üye listesi sadece üyelere açık. Get, üye değilse ErrNotFound döner;
	// bunu yetki hatasına çeviriyoruz.
	if _, err := s.membershipRepo.Get(ctx, serverID, actorID); err != nil {
		return nil, fmt.Errorf("%w: only members can view the member list", pkg.ErrForbidden)
	}

	return s.membershipRepo.ListByServer(ctx, serverID)
}

func (s *memberService) SetRole(ctx context.Context, actorID, serverID, targetUserID string, req *models.SetRoleRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrInvalidRole, err.Error())
	}

	if _, err := s.serverRepo.GetByID(ctx, serverID); err != nil {
		return err
	}

	ok, err := s.authz.IsAdminOrOwner(ctx, actorID, serverID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: only admins and the owner can change member roles", pkg.ErrForbidden)
	}

	// Okuma + yazma aynı transaction'da: hedefin rolü kontrol ile
	// UPDATE arasında değişemez.
	return database.WithTx(ctx, s.db.Conn, func(tx *sql.Tx) error {
		txMemberships := repository.NewSQLiteMembershipRepo(tx)

		target, err := txMemberships.Get(ctx, serverID, targetUserID)
		if err != nil {
			return fmt.Errorf("%w: user is not a member of this server", pkg.ErrNotFound)
		}

		if target.Role == models.RoleOwner {
			return fmt.Errorf("%w: the owner's role cannot be changed", pkg.ErrForbidden)
		}
		if target.Role == req.Role {
			// No-op; hedef zaten istenen rolde.
			return nil
		}

		if err := txMemberships.UpdateRole(ctx, serverID, targetUserID, req.Role); err != nil {
			return err
		}

		log.Printf("[member] role changed: server=%s user=%s role=%s by=%s",
			serverID, targetUserID, req.Role, actorID)
		return nil
	})
}

func (s *memberService) Kick(ctx context.Context, actorID, serverID, targetUserID string) error {
	if actorID == targetUserID {
		return fmt.Errorf("%w: cannot kick yourself, leave the server instead", pkg.ErrBadRequest)
	}

	if _, err := s.serverRepo.GetByID(ctx, serverID); err != nil {
		return err
	}

	actor, err := s.membershipRepo.Get(ctx, serverID, actorID)
	if err != nil {
		return fmt.Errorf("%w: only admins and the owner can kick members", pkg.ErrForbidden)
	}
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleOwner {
		return fmt.Errorf("%w: only admins and the owner can kick members", pkg.ErrForbidden)
	}

	return database.WithTx(ctx, s.db.Conn, func(tx *sql.Tx) error {
		txMemberships := repository.NewSQLiteMembershipRepo(tx)

		target, err := txMemberships.Get(ctx, serverID, targetUserID)
		if err != nil {
			return fmt.Errorf("%w: user is not a member of this server", pkg.ErrNotFound)
		}

		switch target.Role {
		case models.RoleOwner:
			return fmt.Errorf("%w: the owner cannot be kicked", pkg.ErrForbidden)
		case models.RoleAdmin:
			if actor.Role != models.RoleOwner {
				return fmt.Errorf("%w: only the owner can kick an admin", pkg.ErrForbidden)
			}
		}

		if err := txMemberships.Delete(ctx, serverID, targetUserID); err != nil {
			return err
		}

		log.Printf("[member] kicked: server=%s user=%s by=%s", serverID, targetUserID, actorID)
		return nil
	})
}
