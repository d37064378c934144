// Package repository — ServerRepository'nin SQLite implementasyonu.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/akinalp/concord/database"
	"github.com/akinalp/concord/models"
	"github.com/akinalp/concord/pkg"
)

type sqliteServerRepo struct {
	db database.TxQuerier
}

// NewSQLiteServerRepo, constructor.
func NewSQLiteServerRepo(db database.TxQuerier) ServerRepository {
	return &sqliteServerRepo{db: db}
}

func (r *sqliteServerRepo) Create(ctx context.Context, server *models.Server) error {
	if server.ID == "" {
		server.ID = uuid.NewString()
	}

	query := `INSERT INTO servers (id, name) VALUES (?, ?) RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, server.ID, server.Name).Scan(&server.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return nil
}

func (r *sqliteServerRepo) GetByID(ctx context.Context, serverID string) (*models.Server, error) {
	query := `SELECT id, name, created_at FROM servers WHERE id = ?`

	s := &models.Server{}
	err := r.db.QueryRowContext(ctx, query, serverID).Scan(&s.ID, &s.Name, &s.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get server: %w", err)
	}

	return s, nil
}

func (r *sqliteServerRepo) UpdateName(ctx context.Context, serverID, name string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE servers SET name = ? WHERE id = ?`, name, serverID)
	if err != nil {
		return fmt.Errorf("failed to rename server: %w", err)
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

func (r *sqliteServerRepo) Delete(ctx context.Context, serverID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM servers WHERE id = ?`, serverID)
	if err != nil {
		return fmt.Errorf("failed to delete server: %w", err)
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

func (r *sqliteServerRepo) GetUserServers(ctx context.Context, userID string) ([]models.Server, error) {
	query := `
		SELECT s.id, s.name, s.created_at
		FROM servers s
		INNER JOIN memberships m ON s.id = m.server_id
		WHERE m.user_id = ?
		ORDER BY m.joined_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user servers: %w", err)
	}
	defer rows.Close()

	var servers []models.Server
	for rows.Next() {
		var s models.Server
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan server row: %w", err)
		}
		servers = append(servers, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating server rows: %w", err)
	}

	return servers, nil
}
