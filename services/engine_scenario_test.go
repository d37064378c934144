package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/concord/models"
	"github.com/akinalp/concord/pkg"
)

// TestServerLifecycleScenario, motorun uçtan uca akışı: sunucu kur,
// davet et, katıl, yükselt, sil.
func TestServerLifecycleScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inviteSvc := env.inviteSvc(nil)

	userA := env.newUser(t, "usera")
	userB := env.newUser(t, "userb")
	userC := env.newUser(t, "userc")

	// A "Alpha" sunucusunu kurar: owner + 2 kanal.
	server := env.newServer(t, userA.ID, "Alpha")

	m, err := env.members.Get(ctx, server.ID, userA.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, m.Role)

	channels, err := env.channels.ListByServer(ctx, server.ID)
	require.NoError(t, err)
	assert.Len(t, channels, 2)

	// A tek kullanımlık, süresiz davet oluşturur.
	invite, err := inviteSvc.Create(ctx, userA.ID, server.ID, &models.CreateInviteRequest{
		Code:    "abcd1234",
		MaxUses: 1,
	})
	require.NoError(t, err)

	// B daveti kullanır → member olur, hak tükenir.
	_, err = inviteSvc.Redeem(ctx, userB.ID, &models.RedeemInviteRequest{
		Invite: invite.String(),
	})
	require.NoError(t, err)

	stored, err := env.invites.GetByServerAndCode(ctx, server.ID, "abcd1234")
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Uses)

	// C aynı kodu deneyince tükenmiş davet görür.
	_, err = inviteSvc.Redeem(ctx, userC.ID, &models.RedeemInviteRequest{
		Invite: invite.String(),
	})
	assert.ErrorIs(t, err, pkg.ErrInviteExhausted)

	// A, B'yi admin yapar.
	err = env.memberSvc.SetRole(ctx, userA.ID, server.ID, userB.ID,
		&models.SetRoleRequest{Role: models.RoleAdmin})
	require.NoError(t, err)

	m, err = env.members.Get(ctx, server.ID, userB.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, m.Role)

	// B, owner A'yı member'a indirmeye çalışır → reddedilir.
	err = env.memberSvc.SetRole(ctx, userB.ID, server.ID, userA.ID,
		&models.SetRoleRequest{Role: models.RoleMember})
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	// A sunucuyu siler; üyelikler, kanallar ve davetler gider.
	require.NoError(t, env.serverSvc.Delete(ctx, userA.ID, server.ID))

	_, err = env.servers.GetByID(ctx, server.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
	_, err = env.members.Get(ctx, server.ID, userB.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
	_, err = env.invites.GetByServerAndCode(ctx, server.ID, "abcd1234")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}
