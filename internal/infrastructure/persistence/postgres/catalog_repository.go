package postgres

import (
	"context"

	"github.com/inf25dw2g02/MindPool/internal/domain/idea"
	apperrors "github.com/inf25dw2g02/MindPool/pkg/errors"
)

// CategoryRepository implements idea.CategoryRepository using PostgreSQL.
type CategoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a new PostgreSQL category repository.
func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *idea.Category) error {
	query := `INSERT INTO idea_categories (id, name, created_at) VALUES ($1, $2, $3)`

	if _, err := r.db.Pool.Exec(ctx, query, c.ID, c.Name, c.CreatedAt); err != nil {
		return apperrors.Wrap(err, "failed to create category")
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*idea.Category, error) {
	query := `SELECT id, name, created_at FROM idea_categories WHERE id = $1`

	c := &idea.Category{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get category")
	}
	return c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*idea.Category, error) {
	query := `SELECT id, name, created_at FROM idea_categories ORDER BY name ASC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query categories")
	}
	defer rows.Close()

	var categories []*idea.Category
	for rows.Next() {
		c := &idea.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan category")
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating categories")
	}

	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *idea.Category) error {
	query := `UPDATE idea_categories SET name = $2 WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, c.ID, c.Name)
	if err != nil {
		return apperrors.Wrap(err, "failed to update category")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM idea_categories WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		if isPgForeignKeyViolation(err) {
			return apperrors.ErrHasDependents
		}
		return apperrors.Wrap(err, "failed to delete category")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// StatusRepository implements idea.StatusRepository using PostgreSQL.
type StatusRepository struct {
	db *DB
}

// NewStatusRepository creates a new PostgreSQL status repository.
func NewStatusRepository(db *DB) *StatusRepository {
	return &StatusRepository{db: db}
}

func (r *StatusRepository) Create(ctx context.Context, s *idea.Status) error {
	query := `INSERT INTO idea_statuses (id, name, created_at) VALUES ($1, $2, $3)`

	if _, err := r.db.Pool.Exec(ctx, query, s.ID, s.Name, s.CreatedAt); err != nil {
		return apperrors.Wrap(err, "failed to create status")
	}
	return nil
}

func (r *StatusRepository) GetByID(ctx context.Context, id string) (*idea.Status, error) {
	query := `SELECT id, name, created_at FROM idea_statuses WHERE id = $1`

	s := &idea.Status{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get status")
	}
	return s, nil
}

func (r *StatusRepository) List(ctx context.Context) ([]*idea.Status, error) {
	query := `SELECT id, name, created_at FROM idea_statuses ORDER BY name ASC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query statuses")
	}
	defer rows.Close()

	var statuses []*idea.Status
	for rows.Next() {
		s := &idea.Status{}
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan status")
		}
		statuses = append(statuses, s)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating statuses")
	}

	return statuses, nil
}

func (r *StatusRepository) Update(ctx context.Context, s *idea.Status) error {
	query := `UPDATE idea_statuses SET name = $2 WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, s.ID, s.Name)
	if err != nil {
		return apperrors.Wrap(err, "failed to update status")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *StatusRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM idea_statuses WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		if isPgForeignKeyViolation(err) {
			return apperrors.ErrHasDependents
		}
		return apperrors.Wrap(err, "failed to delete status")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
