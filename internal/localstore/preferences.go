package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Well-known preference keys stored by the application.
const (
	PrefLanguage   = "language"
	PrefTheme      = "theme"
	PrefAnimations = "animations"
)

// PreferenceRepository stores user display preferences as key/value pairs.
type PreferenceRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
}

// ErrPreferenceNotFound is returned by Get for unset keys.
var ErrPreferenceNotFound = errors.New("preference not found")

// DBPreferenceRepository implements PreferenceRepository on SQLite.
type DBPreferenceRepository struct {
	db *sqlx.DB
}

// NewDBPreferenceRepository creates a new DBPreferenceRepository.
func NewDBPreferenceRepository(db *sqlx.DB) *DBPreferenceRepository {
	return &DBPreferenceRepository{db: db}
}

// Get returns the stored value for key.
func (r *DBPreferenceRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value,
		"SELECT value FROM preferences WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrPreferenceNotFound
	}
	if err != nil {
		return "", fmt.Errorf("db.GetContext(preferences) > %w", err)
	}
	return value, nil
}

// Set stores a value, replacing any previous one.
func (r *DBPreferenceRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("db.ExecContext(upsert preference) > %w", err)
	}
	return nil
}

// All returns every stored preference.
func (r *DBPreferenceRepository) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryxContext(ctx, "SELECT key, value FROM preferences")
	if err != nil {
		return nil, fmt.Errorf("db.QueryxContext(preferences) > %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	preferences := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("rows.Scan(preferences) > %w", err)
		}
		preferences[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err(preferences) > %w", err)
	}
	return preferences, nil
}
