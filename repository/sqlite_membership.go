// Package repository — MembershipRepository'nin SQLite implementasyonu.
//
// memberships tablosunun iki constraint'i vardır (001_init.sql):
//   - PRIMARY KEY (server_id, user_id): kullanıcı başına tek üyelik satırı
//   - partial unique index (server_id WHERE role='owner'): tek owner
//
// Create, hangi constraint'in patladığını driver mesajından ayırt eder —
// ikisi de UNIQUE hatası üretir ama farklı domain anlamı taşır.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/akinalp/concord/database"
	"github.com/akinalp/concord/models"
	"github.com/akinalp/concord/pkg"
)

type sqliteMembershipRepo struct {
	db database.TxQuerier
}

// NewSQLiteMembershipRepo, constructor.
func NewSQLiteMembershipRepo(db database.TxQuerier) MembershipRepository {
	return &sqliteMembershipRepo{db: db}
}

func (r *sqliteMembershipRepo) Create(ctx context.Context, m *models.Membership) error {
	query := `INSERT INTO memberships (server_id, user_id, role)
	          VALUES (?, ?, ?)
	          RETURNING joined_at`

	err := r.db.QueryRowContext(ctx, query, m.ServerID, m.UserID, m.Role).Scan(&m.JoinedAt)

	if isUniqueViolation(err) {
		// PK ihlali "memberships.server_id, memberships.user_id" der;
		// owner index ihlali sadece "memberships.server_id" der.
		if strings.Contains(err.Error(), "user_id") {
			return fmt.Errorf("%w: user is already a member of this server", pkg.ErrAlreadyMember)
		}
		return fmt.Errorf("%w: server already has an owner", pkg.ErrConstraint)
	}
	if err != nil {
		return fmt.Errorf("failed to create membership: %w", err)
	}

	return nil
}

func (r *sqliteMembershipRepo) Get(ctx context.Context, serverID, userID string) (*models.Membership, error) {
	query := `SELECT server_id, user_id, role, joined_at
	          FROM memberships WHERE server_id = ? AND user_id = ?`

	m := &models.Membership{}
	err := r.db.QueryRowContext(ctx, query, serverID, userID).Scan(
		&m.ServerID, &m.UserID, &m.Role, &m.JoinedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return m, nil
}

func (r *sqliteMembershipRepo) UpdateRole(ctx context.Context, serverID, userID string, role models.MemberRole) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE memberships SET role = ? WHERE server_id = ? AND user_id = ?`,
		role, serverID, userID)

	if isUniqueViolation(err) {
		return fmt.Errorf("%w: server already has an owner", pkg.ErrConstraint)
	}
	if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
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

func (r *sqliteMembershipRepo) Delete(ctx context.Context, serverID, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM memberships WHERE server_id = ? AND user_id = ?`, serverID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
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

func (r *sqliteMembershipRepo) DeleteByServer(ctx context.Context, serverID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM memberships WHERE server_id = ?`, serverID)
	if err != nil {
		return fmt.Errorf("failed to delete server memberships: %w", err)
	}
	return nil
}

func (r *sqliteMembershipRepo) ListByServer(ctx context.Context, serverID string) ([]models.MemberWithUser, error) {
	query := `
		SELECT m.server_id, m.user_id, m.role, m.joined_at, u.username, u.email
		FROM memberships m
		INNER JOIN users u ON u.id = m.user_id
		WHERE m.server_id = ?
		ORDER BY m.joined_at ASC`

	rows, err := r.db.QueryContext(ctx, query, serverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []models.MemberWithUser
	for rows.Next() {
		var m models.MemberWithUser
		if err := rows.Scan(
			&m.ServerID, &m.UserID, &m.Role, &m.JoinedAt, &m.Username, &m.Email,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}

	return members, nil
}
