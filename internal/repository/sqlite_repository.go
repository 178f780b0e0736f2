package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) StateRepository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) Load(ctx context.Context, namespace string) ([]byte, error) {
	query := "SELECT value FROM state WHERE namespace = ?"
	var value string
	err := r.db.QueryRowContext(ctx, query, namespace).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not load state %q: %w", namespace, err)
	}
	return []byte(value), nil
}

func (r *sqliteRepository) Save(ctx context.Context, namespace string, blob []byte) error {
	query := `
		INSERT INTO state (namespace, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(namespace) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, namespace, string(blob), time.Now().UTC()); err != nil {
		return fmt.Errorf("could not save state %q: %w", namespace, err)
	}
	return nil
}

func (r *sqliteRepository) Delete(ctx context.Context, namespace string) error {
	query := "DELETE FROM state WHERE namespace = ?"
	if _, err := r.db.ExecContext(ctx, query, namespace); err != nil {
		return fmt.Errorf("could not delete state %q: %w", namespace, err)
	}
	return nil
}
