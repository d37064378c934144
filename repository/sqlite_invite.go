// Package repository — InviteRepository'nin SQLite implementasyonu.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/akinalp/concord/database"
	"github.com/akinalp/concord/models"
	"github.com/akinalp/concord/pkg"
)

type sqliteInviteRepo struct {
	db database.TxQuerier
}

// NewSQLiteInviteRepo, constructor.
func NewSQLiteInviteRepo(db database.TxQuerier) InviteRepository {
	return &sqliteInviteRepo{db: db}
}

func (r *sqliteInviteRepo) Create(ctx context.Context, invite *models.Invite) error {
	if invite.ID == "" {
		invite.ID = uuid.NewString()
	}
	if invite.CreatedAt == 0 {
		invite.CreatedAt = time.Now().Unix()
	}

	query := `INSERT INTO invites (id, server_id, code, creator_id, uses, expires_at, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		invite.ID, invite.ServerID, invite.Code, invite.CreatorID,
		invite.Uses, invite.ExpiresAt, invite.CreatedAt,
	)

	if isUniqueViolation(err) {
		return fmt.Errorf("%w: invite code already exists for this server", pkg.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("failed to create invite: %w", err)
	}

	return nil
}

func (r *sqliteInviteRepo) GetByServerAndCode(ctx context.Context, serverID, code string) (*models.Invite, error) {
	query := `SELECT id, server_id, code, creator_id, uses, expires_at, created_at
	          FROM invites WHERE server_id = ? AND code = ?`

	invite := &models.Invite{}
	err := r.db.QueryRowContext(ctx, query, serverID, code).Scan(
		&invite.ID, &invite.ServerID, &invite.Code, &invite.CreatorID,
		&invite.Uses, &invite.ExpiresAt, &invite.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}

	return invite, nil
}

func (r *sqliteInviteRepo) ListByServer(ctx context.Context, serverID string) ([]models.InviteWithCreator, error) {
	query := `SELECT i.id, i.server_id, i.code, i.creator_id, i.uses, i.expires_at, i.created_at,
	                 COALESCE(u.username, '')
	          FROM invites i
	          LEFT JOIN users u ON u.id = i.creator_id
	          WHERE i.server_id = ?
	          ORDER BY i.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, serverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	defer rows.Close()

	var invites []models.InviteWithCreator
	for rows.Next() {
		var inv models.InviteWithCreator
		if err := rows.Scan(
			&inv.ID, &inv.ServerID, &inv.Code, &inv.CreatorID,
			&inv.Uses, &inv.ExpiresAt, &inv.CreatedAt,
			&inv.CreatorUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invite: %w", err)
		}
		invites = append(invites, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invites: %w", err)
	}

	return invites, nil
}

// DecrementUses — koşullu azaltma.
//
// Naif "SELECT uses; UPDATE uses-1" dizisi lost-update yarışına açıktır:
// son hakkı iki istek aynı anda okuyup ikisi de düşebilir. Guard'lı tek
// UPDATE ile DB satır bazında serialize eder; yarışı kaybeden tarafta
// RowsAffected=0 olur ve davet tükenmiş sayılır.
func (r *sqliteInviteRepo) DecrementUses(ctx context.Context, serverID, code string) error {
	query := `UPDATE invites SET uses = uses - 1
	          WHERE server_id = ? AND code = ? AND uses > 0`

	result, err := r.db.ExecContext(ctx, query, serverID, code)
	if err != nil {
		return fmt.Errorf("failed to decrement invite uses: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: invite has no remaining uses", pkg.ErrInviteExhausted)
	}

	return nil
}

func (r *sqliteInviteRepo) Delete(ctx context.Context, serverID, code string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM invites WHERE server_id = ? AND code = ?`, serverID, code)
	if err != nil {
		return fmt.Errorf("failed to delete invite: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteInviteRepo) DeleteByServer(ctx context.Context, serverID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM invites WHERE server_id = ?`, serverID)
	if err != nil {
		return fmt.Errorf("failed to delete server invites: %w", err)
	}
	return nil
}
