// Package services — ServerService: sunucu yaşam döngüsü.
//
// Create ve Delete çok adımlı yazma işlemleridir ve database.WithTx
// altında atomik çalışır; yarım kalmış sunucu (kanalsız veya sahipsiz)
// hiçbir hata yolunda oluşmaz.
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

// ServerService, sunucu iş mantığı için interface.
type ServerService interface {
	// Create, yeni bir sunucu oluşturur: sunucu satırı, "General" text
	// kanalı, "General Voice" voice kanalı ve oluşturan kullanıcının
	// owner üyeliği tek transaction içinde yazılır.
	Create(ctx context.Context, ownerID string, req *models.CreateServerRequest) (*models.Server, error)

	// Get, sunucuyu döner; yoksa pkg.ErrNotFound.
	Get(ctx context.Context, serverID string) (*models.Server, error)

	// GetUserServers, kullanıcının üye olduğu sunucuları döner.
	GetUserServers(ctx context.Context, userID string) ([]models.Server, error)

	// ListChannels, sunucunun kanallarını döner.
	ListChannels(ctx context.Context, serverID string) ([]models.Channel, error)

	// Rename, sunucuyu yeniden adlandırır. Sadece owner yapabilir.
	Rename(ctx context.Context, actorID, serverID string, req *models.UpdateServerRequest) (*models.Server, error)

	// Delete, sunucuyu tüm üyelikleri, kanalları ve davetleriyle birlikte
	// siler. Sadece owner yapabilir.
	Delete(ctx context.Context, actorID, serverID string) error

	// Leave, kullanıcıyı sunucudan çıkarır. Owner ayrılamaz —
	// önce sunucuyu silmeli veya devretmelidir.
	Leave(ctx context.Context, userID, serverID string) error
}

type serverService struct {
	db          *database.DB
	serverRepo  repository.ServerRepository
	channelRepo repository.ChannelRepository
	authz       AuthzService
}

// NewServerService, constructor.
func NewServerService(
	db *database.DB,
	serverRepo repository.ServerRepository,
	channelRepo repository.ChannelRepository,
	authz AuthzService,
) ServerService {
	return &serverService{
		db:          db,
		serverRepo:  serverRepo,
		channelRepo: channelRepo,
		authz:       authz,
	}
}

func (s *serverService) Create(ctx context.Context, ownerID string, req *models.CreateServerRequest) (*models.Server, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	server := &models.Server{Name: req.Name}

	// Sunucu + default kanallar + owner üyeliği: ya hepsi ya hiçbiri.
	// Yarıda kalırsa kanalsız ya da sahipsiz sunucu oluşmamalı.
	err := database.WithTx(ctx, s.db.Conn, func(tx *sql.Tx) error {
		txServers := repository.NewSQLiteServerRepo(tx)
		txChannels := repository.NewSQLiteChannelRepo(tx)
		txMemberships := repository.NewSQLiteMembershipRepo(tx)

		if err := txServers.Create(ctx, server); err != nil {
			return err
		}

		defaults := []models.Channel{
			{ServerID: server.ID, Name: models.DefaultTextChannelName, Type: models.ChannelTypeText},
			{ServerID: server.ID, Name: models.DefaultVoiceChannelName, Type: models.ChannelTypeVoice},
		}
		for i := range defaults {
			if err := txChannels.Create(ctx, &defaults[i]); err != nil {
				return err
			}
		}

		return txMemberships.Create(ctx, &models.Membership{
			ServerID: server.ID,
			UserID:   ownerID,
			Role:     models.RoleOwner,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	log.Printf("[server] created: id=%s name=%q owner=%s", server.ID, server.Name, ownerID)
	return server, nil
}

func (s *serverService) Get(ctx context.Context, serverID string) (*models.Server, error) {
	return s.serverRepo.GetByID(ctx, serverID)
}

func (s *serverService) GetUserServers(ctx context.Context, userID string) ([]models.Server, error) {
	return s.serverRepo.GetUserServers(ctx, userID)
}

func (s *serverService) ListChannels(ctx context.Context, serverID string) ([]models.Channel, error) {
	if _, err := s.serverRepo.GetByID(ctx, serverID); err != nil {
		return nil, err
	}
	return s.channelRepo.ListByServer(ctx, serverID)
}

func (s *serverService) Rename(ctx context.Context, actorID, serverID string, req *models.UpdateServerRequest) (*models.Server, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// Önce varlık kontrolü: olmayan sunucu için 403 değil 404 dönmeli.
	if _, err := s.serverRepo.GetByID(ctx, serverID); err != nil {
		return nil, err
	}

	ok, err := s.authz.IsOwner(ctx, actorID, serverID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: only the owner can rename the server", pkg.ErrForbidden)
	}

	if err := s.serverRepo.UpdateName(ctx, serverID, req.Name); err != nil {
		return nil, err
	}

	return s.serverRepo.GetByID(ctx, serverID)
}

func (s *serverService) Delete(ctx context.Context, actorID, serverID string) error {
	if _, err := s.serverRepo.GetByID(ctx, serverID); err != nil {
		return err
	}

	ok, err := s.authz.IsOwner(ctx, actorID, serverID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: only the owner can delete the server", pkg.ErrForbidden)
	}

	err = database.WithTx(ctx, s.db.Conn, func(tx *sql.Tx) error {
		txServers := repository.NewSQLiteServerRepo(tx)
		txChannels := repository.NewSQLiteChannelRepo(tx)
		txMemberships := repository.NewSQLiteMembershipRepo(tx)
		txInvites := repository.NewSQLiteInviteRepo(tx)

		// Bağımlı kayıtların temizliği tek iç birim: savepoint sayesinde
		// bu blok ya tamamen uygulanır ya hiç uygulanmaz.
		err := database.WithSavepoint(ctx, tx, "purge_server", func() error {
			if err := txMemberships.DeleteByServer(ctx, serverID); err != nil {
				return err
			}
			if err := txInvites.DeleteByServer(ctx, serverID); err != nil {
				return err
			}
			return txChannels.DeleteByServer(ctx, serverID)
		})
		if err != nil {
			return err
		}

		return txServers.Delete(ctx, serverID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete server: %w", err)
	}

	log.Printf("[server] deleted: id=%s by=%s", serverID, actorID)
	return nil
}

func (s *serverService) Leave(ctx context.Context, userID, serverID string) error {
	ok, err := s.authz.IsOwner(ctx, userID, serverID)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("%w: the owner cannot leave the server, delete it instead", pkg.ErrForbidden)
	}

	// Delete üyelik yoksa ErrNotFound döner — üye olmayan kullanıcı
	// için doğru cevap da bu.
	return database.WithTx(ctx, s.db.Conn, func(tx *sql.Tx) error {
		return repository.NewSQLiteMembershipRepo(tx).Delete(ctx, serverID, userID)
	})
}
