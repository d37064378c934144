package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/concord/models"
	"github.com/akinalp/concord/pkg"
)

// memberFixture, owner + admin + member üçlüsü olan bir sunucu kurar.
func memberFixture(t *testing.T) (*testEnv, *models.User, *models.User, *models.User, *models.Server) {
	t.Helper()
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.newUser(t, "alice")
	admin := env.newUser(t, "bob")
	member := env.newUser(t, "carol")
	server := env.newServer(t, owner.ID, "Alpha")

	require.NoError(t, env.members.Create(ctx, &models.Membership{
		ServerID: server.ID, UserID: admin.ID, Role: models.RoleAdmin,
	}))
	require.NoError(t, env.members.Create(ctx, &models.Membership{
		ServerID: server.ID, UserID: member.ID, Role: models.RoleMember,
	}))

	return env, owner, admin, member, server
}

func TestSetRolePromoteDemote(t *testing.T) {
	env, owner, _, member, server := memberFixture(t)
	ctx := context.Background()

	// Owner member'ı admin yapar.
	err := env.memberSvc.SetRole(ctx, owner.ID, server.ID, member.ID,
		&models.SetRoleRequest{Role: models.RoleAdmin})
	require.NoError(t, err)

	m, err := env.members.Get(ctx, server.ID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, m.Role)

	// Geri member'a indirir.
	err = env.memberSvc.SetRole(ctx, owner.ID, server.ID, member.ID,
		&models.SetRoleRequest{Role: models.RoleMember})
	require.NoError(t, err)

	m, err = env.members.Get(ctx, server.ID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, m.Role)
}

func TestSetRoleAuthorization(t *testing.T) {
	env, owner, admin, member, server := memberFixture(t)
	ctx := context.Background()

	// Düz member rol değiştiremez.
	err := env.memberSvc.SetRole(ctx, member.ID, server.ID, admin.ID,
		&models.SetRoleRequest{Role: models.RoleMember})
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	// Admin, member'ı yükseltebilir.
	err = env.memberSvc.SetRole(ctx, admin.ID, server.ID, member.ID,
		&models.SetRoleRequest{Role: models.RoleAdmin})
	require.NoError(t, err)

	// Owner'ın rolü kimse tarafından değiştirilemez — admin dahil.
	err = env.memberSvc.SetRole(ctx, admin.ID, server.ID, owner.ID,
		&models.SetRoleRequest{Role: models.RoleMember})
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	err = env.memberSvc.SetRole(ctx, owner.ID, server.ID, owner.ID,
		&models.SetRoleRequest{Role: models.RoleMember})
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	// Owner rolü atanamaz.
	err = env.memberSvc.SetRole(ctx, owner.ID, server.ID, member.ID,
		&models.SetRoleRequest{Role: models.RoleOwner})
	assert.ErrorIs(t, err, pkg.ErrInvalidRole)

	// Üye olmayan hedef 404.
	stranger := env.newUser(t, "dave")
	err = env.memberSvc.SetRole(ctx, owner.ID, server.ID, stranger.ID,
		&models.SetRoleRequest{Role: models.RoleAdmin})
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestKickPolicies(t *testing.T) {
	env, owner, admin, member, server := memberFixture(t)
	ctx := context.Background()

	// Member kimseyi atamaz.
	err := env.memberSvc.Kick(ctx, member.ID, server.ID, admin.ID)
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	// Admin owner'ı atamaz.
	err = env.memberSvc.Kick(ctx, admin.ID, server.ID, owner.ID)
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	// Kendini kick etmek reddedilir — onun yolu Leave.
	err = env.memberSvc.Kick(ctx, admin.ID, server.ID, admin.ID)
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	// Admin member'ı atabilir.
	require.NoError(t, env.memberSvc.Kick(ctx, admin.ID, server.ID, member.ID))
	_, err = env.members.Get(ctx, server.ID, member.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	// Admin başka bir admin'i atamaz; owner atabilir.
	second := env.newUser(t, "erin")
	require.NoError(t, env.members.Create(ctx, &models.Membership{
		ServerID: server.ID, UserID: second.ID, Role: models.RoleAdmin,
	}))

	err = env.memberSvc.Kick(ctx, admin.ID, server.ID, second.ID)
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	require.NoError(t, env.memberSvc.Kick(ctx, owner.ID, server.ID, second.ID))
}

func TestListMembers(t *testing.T) {
	env, owner, admin, member, server := memberFixture(t)
	ctx := context.Background()

	members, err := env.memberSvc.ListByServer(ctx, owner.ID, server.ID)
	require.NoError(t, err)
	require.Len(t, members, 3)

	roles := map[string]models.MemberRole{}
	names := map[string]string{}
	for _, m := range members {
		roles[m.UserID] = m.Role
		names[m.UserID] = m.Username
	}
	assert.Equal(t, models.RoleOwner, roles[owner.ID])
	assert.Equal(t, models.RoleAdmin, roles[admin.ID])
	assert.Equal(t, models.RoleMember, roles[member.ID])
	assert.Equal(t, "alice", names[owner.ID])

	// Üye olan herkes listeyi görebilir.
	_, err = env.memberSvc.ListByServer(ctx, admin.ID, server.ID)
	assert.NoError(t, err)
	_, err = env.memberSvc.ListByServer(ctx, member.ID, server.ID)
	assert.NoError(t, err)

	// Üye olmayan göremez.
	stranger := env.newUser(t, "dave")
	_, err = env.memberSvc.ListByServer(ctx, stranger.ID, server.ID)
	assert.ErrorIs(t, err, pkg.ErrForbidden)
}

func TestAuthzPredicates(t *testing.T) {
	env, owner, admin, member, server := memberFixture(t)
	ctx := context.Background()
	stranger := env.newUser(t, "dave")

	cases := []struct {
		userID       string
		isOwner      bool
		isAdminOrOwn bool
	}{
		{owner.ID, true, true},
		{admin.ID, false, true},
		{member.ID, false, false},
		{stranger.ID, false, false},
	}

	for _, tc := range cases {
		got, err := env.authz.IsOwner(ctx, tc.userID, server.ID)
		require.NoError(t, err)
		assert.Equal(t, tc.isOwner, got)

		got, err = env.authz.IsAdminOrOwner(ctx, tc.userID, server.ID)
		require.NoError(t, err)
		assert.Equal(t, tc.isAdminOrOwn, got)
	}
}
