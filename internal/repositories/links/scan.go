package links

import (
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/savelinks/internal/models"
)

func scanLinks(rows *sql.Rows) ([]models.Link, error) {
	result := []models.Link{}
	for rows.Next() {
		var l models.Link
		if err := rows.Scan(&l.ID, &l.UserID, &l.Data); err != nil {
			return nil, fmt.Errorf("failed to scan link row: %w", err)
		}
		result = append(result, l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
