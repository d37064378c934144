// Package repository — ChannelRepository'nin SQLite implementasyonu.
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/akinalp/concord/database"
	"github.com/akinalp/concord/models"
)

type sqliteChannelRepo struct {
	db database.TxQuerier
}

// NewSQLiteChannelRepo, constructor.
func NewSQLiteChannelRepo(db database.TxQuerier) ChannelRepository {
	return &sqliteChannelRepo{db: db}
}

func (r *sqliteChannelRepo) Create(ctx context.Context, channel *models.Channel) error {
	if channel.ID == "" {
		channel.ID = uuid.NewString()
	}

	query := `INSERT INTO channels (id, server_id, name, type)
	          VALUES (?, ?, ?, ?)
	          RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		channel.ID, channel.ServerID, channel.Name, channel.Type,
	).Scan(&channel.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create channel: %w", err)
	}

	return nil
}

func (r *sqliteChannelRepo) ListByServer(ctx context.Context, serverID string) ([]models.Channel, error) {
	query := `SELECT id, server_id, name, type, created_at
	          FROM channels WHERE server_id = ?
	          ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, serverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	defer rows.Close()

	var channels []models.Channel
	for rows.Next() {
		var c models.Channel
		if err := rows.Scan(&c.ID, &c.ServerID, &c.Name, &c.Type, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan channel row: %w", err)
		}
		channels = append(channels, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating channel rows: %w", err)
	}

	return channels, nil
}

func (r *sqliteChannelRepo) DeleteByServer(ctx context.Context, serverID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM channels WHERE server_id = ?`, serverID)
	if err != nil {
		return fmt.Errorf("failed to delete server channels: %w", err)
	}
	return nil
}
