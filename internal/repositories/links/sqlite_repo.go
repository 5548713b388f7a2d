package links

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/savelinks/internal/dbx"
	"github.com/dmitrijs2005/savelinks/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, userID int64, data []byte) (int64, error) {
	query := `INSERT INTO links (user_id, encrypted_data) VALUES (?, ?)`

	res, err := r.db.ExecContext(ctx, query, userID, data)
	if err != nil {
		return 0, fmt.Errorf("failed to insert link: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get link id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID int64) ([]models.Link, error) {
	query := `SELECT id, user_id, encrypted_data FROM links WHERE user_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select links: %w", err)
	}
	defer rows.Close()

	return scanLinks(rows)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id, userID int64) (int64, error) {
	query := `DELETE FROM links WHERE id = ? AND user_id = ?`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete link: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
