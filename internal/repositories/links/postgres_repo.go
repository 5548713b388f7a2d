package links

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/savelinks/internal/dbx"
	"github.com/dmitrijs2005/savelinks/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, userID int64, data []byte) (int64, error) {
	query :=
		`INSERT INTO links (user_id, encrypted_data)
		 VALUES ($1, $2)
		 RETURNING id`

	var id int64
	if err := r.db.QueryRowContext(ctx, query, userID, data).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]models.Link, error) {
	query :=
		`SELECT id, user_id, encrypted_data FROM links
		 WHERE user_id = $1
		 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanLinks(rows)
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID int64) (int64, error) {
	query := `DELETE FROM links WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
