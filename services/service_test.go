package services

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/akinalp/concord/database"
	"github.com/akinalp/concord/models"
	"github.com/akinalp/concord/repository"
)

// testEnv, service testleri için gerçek bir SQLite dosyası üzerinde
// kurulu tam stack. In-memory yerine t.TempDir() altında dosya
// kullanıyoruz — ":memory:" her pool bağlantısında ayrı DB açar.
type testEnv struct {
	db         *database.DB
	users      repository.UserRepository
	servers    repository.ServerRepository
	channels   repository.ChannelRepository
	members    repository.MembershipRepository
	invites    repository.InviteRepository
	authz      AuthzService
	serverSvc  ServerService
	memberSvc  MemberService
	userSeq    int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	migrations, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrations)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	env := &testEnv{
		db:       db,
		users:    repository.NewSQLiteUserRepo(db.Conn),
		servers:  repository.NewSQLiteServerRepo(db.Conn),
		channels: repository.NewSQLiteChannelRepo(db.Conn),
		members:  repository.NewSQLiteMembershipRepo(db.Conn),
		invites:  repository.NewSQLiteInviteRepo(db.Conn),
	}
	env.authz = NewAuthzService(env.members)
	env.serverSvc = NewServerService(db, env.servers, env.channels, env.authz)
	env.memberSvc = NewMemberService(db, env.members, env.servers, env.authz)

	return env
}

// inviteSvc, isteğe bağlı sabit saat ile InviteService kurar.
func (e *testEnv) inviteSvc(nowFn func() time.Time) InviteService {
	return NewInviteService(e.db, e.invites, e.servers, e.authz, nowFn)
}

// newUser, benzersiz email ile test kullanıcısı oluşturur.
func (e *testEnv) newUser(t *testing.T, username string) *models.User {
	t.Helper()
	e.userSeq++
	user := &models.User{
		Username:     username,
		Email:        fmt.Sprintf("%s%d@example.com", username, e.userSeq),
		PasswordHash: "x",
	}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

// newServer, verilen kullanıcı owner olacak şekilde sunucu oluşturur.
func (e *testEnv) newServer(t *testing.T, ownerID, name string) *models.Server {
	t.Helper()
	server, err := e.serverSvc.Create(context.Background(), ownerID,
		&models.CreateServerRequest{Name: name})
	require.NoError(t, err)
	return server
}
