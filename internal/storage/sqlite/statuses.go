package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"taskify/internal/domain"
	"taskify/internal/models"
)

// ListStatuses returns the workflow catalog ascending by sort order,
// regardless of insertion order in storage.
func (s *Store) ListStatuses(ctx context.Context) ([]models.Status, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, sort_order FROM statuses ORDER BY sort_order ASC`)
	if err != nil {
		return nil, &domain.StoreError{Op: "list statuses", Err: err}
	}
	defer rows.Close()

	var statuses []models.Status
	for rows.Next() {
		var st models.Status
		if err := rows.Scan(&st.ID, &st.Name, &st.SortOrder); err != nil {
			return nil, &domain.StoreError{Op: "scan status", Err: err}
		}
		statuses = append(statuses, st)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: "list statuses", Err: err}
	}
	return statuses, nil
}

// GetStatus fetches a single catalog entry by id.
func (s *Store) GetStatus(ctx context.Context, id string) (models.Status, error) {
	var st models.Status
	err := s.db.QueryRowContext(ctx, `SELECT id, name, sort_order FROM statuses WHERE id = ?`, id).
		Scan(&st.ID, &st.Name, &st.SortOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Status{}, &domain.NotFoundError{Kind: "status", ID: id}
	}
	if err != nil {
		return models.Status{}, &domain.StoreError{Op: "get status", Err: err}
	}
	return st, nil
}
