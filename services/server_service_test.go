package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/concord/models"
	"github.com/akinalp/concord/pkg"
)

func TestServerCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t, "alice")

	server := env.newServer(t, owner.ID, "Alpha")
	require.NotEmpty(t, server.ID)
	assert.Equal(t, "Alpha", server.Name)

	// Oluşturan kullanıcı owner üyelik satırı almalı.
	m, err := env.members.Get(ctx, server.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, m.Role)

	// Default kanallar: bir text, bir voice.
	channels, err := env.channels.ListByServer(ctx, server.ID)
	require.NoError(t, err)
	require.Len(t, channels, 2)

	byType := map[models.ChannelType]string{}
	for _, ch := range channels {
		byType[ch.Type] = ch.Name
	}
	assert.Equal(t, models.DefaultTextChannelName, byType[models.ChannelTypeText])
	assert.Equal(t, models.DefaultVoiceChannelName, byType[models.ChannelTypeVoice])
}

func TestServerCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newUser(t, "alice")

	_, err := env.serverSvc.Create(context.Background(), owner.ID,
		&models.CreateServerRequest{Name: "   "})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestServerRename(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t, "alice")
	member := env.newUser(t, "bob")
	server := env.newServer(t, owner.ID, "Alpha")

	require.NoError(t, env.members.Create(ctx, &models.Membership{
		ServerID: server.ID, UserID: member.ID, Role: models.RoleMember,
	}))

	// Owner yeniden adlandırabilir.
	renamed, err := env.serverSvc.Rename(ctx, owner.ID, server.ID,
		&models.UpdateServerRequest{Name: "Beta"})
	require.NoError(t, err)
	assert.Equal(t, "Beta", renamed.Name)

	// Member yapamaz.
	_, err = env.serverSvc.Rename(ctx, member.ID, server.ID,
		&models.UpdateServerRequest{Name: "Gamma"})
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	// Olmayan sunucu 404 — 403 değil.
	_, err = env.serverSvc.Rename(ctx, owner.ID, "missing",
		&models.UpdateServerRequest{Name: "Delta"})
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestServerDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t, "alice")
	member := env.newUser(t, "bob")
	server := env.newServer(t, owner.ID, "Alpha")

	require.NoError(t, env.members.Create(ctx, &models.Membership{
		ServerID: server.ID, UserID: member.ID, Role: models.RoleMember,
	}))
	require.NoError(t, env.invites.Create(ctx, &models.Invite{
		ServerID: server.ID, Code: "deadbeef", CreatorID: owner.ID, Uses: 5,
	}))

	// Member silemez.
	err := env.serverSvc.Delete(ctx, member.ID, server.ID)
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	// Owner siler; üyelikler, kanallar ve davetler birlikte gider.
	require.NoError(t, env.serverSvc.Delete(ctx, owner.ID, server.ID))

	_, err = env.servers.GetByID(ctx, server.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	_, err = env.members.Get(ctx, server.ID, owner.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	_, err = env.invites.GetByServerAndCode(ctx, server.ID, "deadbeef")
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	channels, err := env.channels.ListByServer(ctx, server.ID)
	require.NoError(t, err)
	assert.Empty(t, channels)
}

func TestServerLeave(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t, "alice")
	member := env.newUser(t, "bob")
	server := env.newServer(t, owner.ID, "Alpha")

	require.NoError(t, env.members.Create(ctx, &models.Membership{
		ServerID: server.ID, UserID: member.ID, Role: models.RoleMember,
	}))

	// Owner ayrılamaz.
	err := env.serverSvc.Leave(ctx, owner.ID, server.ID)
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	// Member ayrılır, üyelik satırı silinir.
	require.NoError(t, env.serverSvc.Leave(ctx, member.ID, server.ID))
	_, err = env.members.Get(ctx, server.ID, member.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	// Üye olmayan kullanıcı için 404.
	stranger := env.newUser(t, "carol")
	err = env.serverSvc.Leave(ctx, stranger.ID, server.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestGetUserServers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.newUser(t, "alice")
	bob := env.newUser(t, "bob")

	s1 := env.newServer(t, alice.ID, "Alpha")
	s2 := env.newServer(t, alice.ID, "Beta")
	env.newServer(t, bob.ID, "Gamma")

	servers, err := env.serverSvc.GetUserServers(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, servers, 2)

	ids := []string{servers[0].ID, servers[1].ID}
	assert.ElementsMatch(t, []string{s1.ID, s2.ID}, ids)
}

func TestSingleOwnerConstraint(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t, "alice")
	second := env.newUser(t, "bob")
	server := env.newServer(t, owner.ID, "Alpha")

	// İkinci owner satırı partial unique index'e takılmalı.
	err := env.members.Create(ctx, &models.Membership{
		ServerID: server.ID, UserID: second.ID, Role: models.RoleOwner,
	})
	assert.ErrorIs(t, err, pkg.ErrConstraint)
}
