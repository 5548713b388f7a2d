package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/dmitrijs2005/savelinks/internal/common"
	"github.com/dmitrijs2005/savelinks/internal/dbx"
	"github.com/dmitrijs2005/savelinks/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, userName string, salt, verifier []byte) (int64, error) {
	query := `INSERT INTO users (username, salt, verifier) VALUES (?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, userName, salt, verifier)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return 0, common.ErrorAlreadyExists
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get user id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	query := `SELECT id, username, salt, verifier FROM users WHERE username = ?`

	u := &models.User{}
	err := r.db.QueryRowContext(ctx, query, userName).Scan(&u.ID, &u.UserName, &u.Salt, &u.Verifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select user: %w", err)
	}
	return u, nil
}

func isSQLiteUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
