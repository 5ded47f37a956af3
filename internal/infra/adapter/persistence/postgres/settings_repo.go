package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"vnnews/internal/domain/entity"
	"vnnews/internal/repository"
)

type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) repository.SettingsRepository {
	return &SettingsRepo{db: db}
}

func (repo *SettingsRepo) GetCategory(ctx context.Context, category string) (map[string]string, error) {
	const query = `SELECT key, value FROM settings WHERE category = $1`
	rows, err := repo.db.QueryContext(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("GetCategory: %w", err)
	}
	defer func() { _ = rows.Close() }()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("GetCategory: Scan: %w", err)
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

func (repo *SettingsRepo) Upsert(ctx context.Context, setting *entity.Setting) error {
	const query = `
INSERT INTO settings (category, key, value)
VALUES ($1, $2, $3)
ON CONFLICT (category, key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := repo.db.ExecContext(ctx, query, setting.Category, setting.Key, setting.Value); err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	return nil
}
