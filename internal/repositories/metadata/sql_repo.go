package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/savelinks/internal/common"
	"github.com/dmitrijs2005/savelinks/internal/dbx"
)

// SQLRepository serves both SQL backends; only the placeholder style differs.
type SQLRepository struct {
	db        *sql.DB
	selectSQL string
	upsertSQL string
}

func NewSQLiteRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{
		db:        db,
		selectSQL: `SELECT value FROM metadata WHERE key = ?`,
		upsertSQL: `INSERT INTO metadata (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
	}
}

func NewPostgresRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{
		db:        db,
		selectSQL: `SELECT value FROM metadata WHERE key = $1`,
		upsertSQL: `INSERT INTO metadata (key, value) VALUES ($1, $2)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
	}
}

func (r *SQLRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, r.selectSQL, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLRepository) SetAll(ctx context.Context, values map[string][]byte) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, k := range keys {
			if _, err := tx.ExecContext(ctx, r.upsertSQL, k, values[k]); err != nil {
				return fmt.Errorf("failed to set metadata[%s]: %w", k, err)
			}
		}
		return nil
	})
}
