package postgres

import (
	"context"

	"github.com/inf25dw2g02/MindPool/internal/domain/idea"
	apperrors "github.com/inf25dw2g02/MindPool/pkg/errors"
)

// IdeaRepository implements idea.Repository using PostgreSQL.
type IdeaRepository struct {
	db *DB
}

// NewIdeaRepository creates a new PostgreSQL idea repository.
func NewIdeaRepository(db *DB) *IdeaRepository {
	return &IdeaRepository{db: db}
}

func (r *IdeaRepository) Create(ctx context.Context, i *idea.Idea) error {
	query := `
		INSERT INTO ideas (id, title, description, due_date, owner_id, category_id, status_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		i.ID,
		i.Title,
		i.Description,
		i.DueDate,
		i.OwnerID,
		i.CategoryID,
		i.StatusID,
		i.CreatedAt,
		i.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create idea")
	}

	return nil
}

func (r *IdeaRepository) GetByID(ctx context.Context, id string) (*idea.Idea, error) {
	query := `
		SELECT id, title, description, due_date, owner_id, category_id, status_id, created_at, updated_at
		FROM ideas
		WHERE id = $1
	`

	i := &idea.Idea{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&i.ID,
		&i.Title,
		&i.Description,
		&i.DueDate,
		&i.OwnerID,
		&i.CategoryID,
		&i.StatusID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get idea")
	}

	return i, nil
}

// ListByOwner returns the owner's ideas with category and status names
// joined in, matching the list shape the API exposes.
func (r *IdeaRepository) ListByOwner(ctx context.Context, ownerID string) ([]*idea.ListItem, error) {
	query := `
		SELECT i.id, i.title, i.description, i.due_date, i.owner_id, i.category_id, i.status_id,
		       i.created_at, i.updated_at,
		       COALESCE(c.name, ''), COALESCE(s.name, '')
		FROM ideas i
		LEFT JOIN idea_categories c ON i.category_id = c.id
		LEFT JOIN idea_statuses s ON i.status_id = s.id
		WHERE i.owner_id = $1
		ORDER BY i.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query ideas")
	}
	defer rows.Close()

	var items []*idea.ListItem
	for rows.Next() {
		item := &idea.ListItem{}
		err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Description,
			&item.DueDate,
			&item.OwnerID,
			&item.CategoryID,
			&item.StatusID,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.CategoryName,
			&item.StatusName,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan idea")
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating ideas")
	}

	return items, nil
}

func (r *IdeaRepository) Update(ctx context.Context, i *idea.Idea) error {
	query := `
		UPDATE ideas
		SET title = $2, description = $3, due_date = $4, category_id = $5, status_id = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Pool.Exec(ctx, query,
		i.ID,
		i.Title,
		i.Description,
		i.DueDate,
		i.CategoryID,
		i.StatusID,
		i.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update idea")
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *IdeaRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM ideas WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete idea")
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *IdeaRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM ideas WHERE owner_id = $1`, ownerID)
}

func (r *IdeaRepository) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM ideas WHERE category_id = $1`, categoryID)
}

func (r *IdeaRepository) CountByStatus(ctx context.Context, statusID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM ideas WHERE status_id = $1`, statusID)
}

func (r *IdeaRepository) count(ctx context.Context, query, arg string) (int, error) {
	var n int
	if err := r.db.Pool.QueryRow(ctx, query, arg).Scan(&n); err != nil {
		return 0, apperrors.Wrap(err, "failed to count ideas")
	}
	return n, nil
}
