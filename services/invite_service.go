// Package services — InviteService: davet oluşturma ve kullanma.
//
// Redeem, motorun en hassas operasyonudur. Tüm kontroller ve yazmalar tek
// transaction içinde, sabit sırayla yapılır:
//
//	davet var mı → hak kalmış mı → süresi geçmiş mi → sunucu var mı
//	→ zaten üye mi → üyelik yaz + sayacı düşür
//
// Sayaç düşürme guard'lı UPDATE ile yapıldığı için (uses > 0 koşulu)
// eşzamanlı iki istek son hakkı paylaşamaz: kaybeden tarafta
// ErrInviteExhausted oluşur ve üyelik yazımı geri alınır.
package services

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/akinalp/concord/database"
	"github.com/akinalp/concord/models"
	"github.com/akinalp/concord/pkg"
	"github.com/akinalp/concord/repository"
)

// InviteService, davet iş mantığı için interface.
type InviteService interface {
	// Create, sunucu için yeni bir davet kodu üretir.
	// Sadece admin veya owner davet oluşturabilir.
	Create(ctx context.Context, actorID, serverID string, req *models.CreateInviteRequest) (*models.Invite, error)

	// Redeem, composite davet string'ini çözer ve kullanıcıyı sunucuya
	// üye yapar. Başarılı redemption kalan kullanım hakkını 1 azaltır.
	Redeem(ctx context.Context, userID string, req *models.RedeemInviteRequest) (*models.Server, error)

	// ListByServer, sunucunun davetlerini döner. Admin veya owner görebilir.
	ListByServer(ctx context.Context, actorID, serverID string) ([]models.InviteWithCreator, error)

	// Delete, bir davet kodunu iptal eder. Admin veya owner silebilir.
	Delete(ctx context.Context, actorID, serverID, code string) error
}

type inviteService struct {
	db         *database.DB
	inviteRepo repository.InviteRepository
	serverRepo repository.ServerRepository
	authz      AuthzService
	now        func() time.Time
}

// NewInviteService, constructor. nowFn nil verilirse time.Now kullanılır;
// testler expiry davranışını sabit saat ile doğrular.
func NewInviteService(
	db *database.DB,
	inviteRepo repository.InviteRepository,
	serverRepo repository.ServerRepository,
	authz AuthzService,
	nowFn func() time.Time,
) InviteService {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &inviteService{
		db:         db,
		inviteRepo: inviteRepo,
		serverRepo: serverRepo,
		authz:      authz,
		now:        nowFn,
	}
}

func (s *inviteService) Create(ctx context.Context, actorID, serverID string, req *models.CreateInviteRequest) (*models.Invite, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	if _, err := s.serverRepo.GetByID(ctx, serverID); err != nil {
		return nil, err
	}

	ok, err := s.authz.IsAdminOrOwner(ctx, actorID, serverID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: only admins and the owner can create invites", pkg.ErrForbidden)
	}

	code := req.Code
	if code == "" {
		code, err = generateInviteCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate invite code: %w", err)
		}
	}

	invite := &models.Invite{
		ServerID:  serverID,
		Code:      code,
		CreatorID: actorID,
		Uses:      req.MaxUses,
		ExpiresAt: req.ExpiresAt,
	}

	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		return nil, err
	}

	log.Printf("[invite] created: server=%s code=%s uses=%d by=%s",
		serverID, invite.Code, invite.Uses, actorID)
	return invite, nil
}

func (s *inviteService) Redeem(ctx context.Context, userID string, req *models.RedeemInviteRequest) (*models.Server, error) {
	code, serverID, err := models.ParseInviteString(req.Invite)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrInviteInvalid, err.Error())
	}

	var server *models.Server

	err = database.WithTx(ctx, s.db.Conn, func(tx *sql.Tx) error {
		txInvites := repository.NewSQLiteInviteRepo(tx)
		txServers := repository.NewSQLiteServerRepo(tx)
		txMemberships := repository.NewSQLiteMembershipRepo(tx)

		invite, err := txInvites.GetByServerAndCode(ctx, serverID, code)
		if err != nil {
			if errors.Is(err, pkg.ErrNotFound) {
				return fmt.Errorf("%w: unknown invite code", pkg.ErrInviteInvalid)
			}
			return err
		}

		// Kontrol sırası sabittir: tükenmişlik expiry'den önce raporlanır.
		if invite.Uses <= 0 {
			return fmt.Errorf("%w: invite has no remaining uses", pkg.ErrInviteExhausted)
		}
		if invite.Expired(s.now()) {
			return fmt.Errorf("%w: invite expired", pkg.ErrInviteExpired)
		}

		server, err = txServers.GetByID(ctx, serverID)
		if err != nil {
			return err
		}

		if err := txMemberships.Create(ctx, &models.Membership{
			ServerID: serverID,
			UserID:   userID,
			Role:     models.RoleMember,
		}); err != nil {
			return err
		}

		// Yukarıdaki uses kontrolü sadece erken, okunabilir bir rapordur;
		// asıl teminat bu guard'lı decrement. Yarışı kaybeden istek burada
		// ErrInviteExhausted alır ve üyelik yazımı rollback olur.
		return txInvites.DecrementUses(ctx, serverID, code)
	})
	if err != nil {
		// busy_timeout dolarsa driver SQLITE_BUSY sızdırır; bu, store'un
		// yakaladığı bir eşzamanlılık çakışmasıdır, iç hata değil.
		if database.IsBusy(err) {
			return nil, fmt.Errorf("%w: concurrent redemption detected", pkg.ErrConstraint)
		}
		return nil, err
	}

	log.Printf("[invite] redeemed: server=%s code=%s user=%s", serverID, code, userID)
	return server, nil
}

func (s *inviteService) ListByServer(ctx context.Context, actorID, serverID string) ([]models.InviteWithCreator, error) {
	if _, err := s.serverRepo.GetByID(ctx, serverID); err != nil {
		return nil, err
	}

	ok, err := s.authz.IsAdminOrOwner(ctx, actorID, serverID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: only admins and the owner can list invites", pkg.ErrForbidden)
	}

	return s.inviteRepo.ListByServer(ctx, serverID)
}

func (s *inviteService) Delete(ctx context.Context, actorID, serverID, code string) error {
	if _, err := s.serverRepo.GetByID(ctx, serverID); err != nil {
		return err
	}

	ok, err := s.authz.IsAdminOrOwner(ctx, actorID, serverID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: only admins and the owner can delete invites", pkg.ErrForbidden)
	}

	return s.inviteRepo.Delete(ctx, serverID, code)
}

// generateInviteCode, crypto/rand ile 8 karakterlik hex kod üretir.
func generateInviteCode() (string, error) {
	buf := make([]byte, models.InviteCodeLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
