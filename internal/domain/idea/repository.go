package idea

import (
	"context"
)

// Repository handles idea storage.
type Repository interface {
	Create(ctx context.Context, idea *Idea) error

	// GetByID retrieves an idea regardless of owner; the service layer
	// decides whether the caller may see it.
	GetByID(ctx context.Context, id string) (*Idea, error)

	// ListByOwner returns the owner's ideas joined with category and status
	// names, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*ListItem, error)

	Update(ctx context.Context, idea *Idea) error
	Delete(ctx context.Context, id string) error

	// CountByOwner, CountByCategory and CountByStatus back the dependency
	// checks that gate identity, category and status deletion.
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	CountByCategory(ctx context.Context, categoryID string) (int, error)
	CountByStatus(ctx context.Context, statusID string) (int, error)
}

// CategoryRepository handles category storage.
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id string) error
}

// StatusRepository handles status storage.
type StatusRepository interface {
	Create(ctx context.Context, status *Status) error
	GetByID(ctx context.Context, id string) (*Status, error)
	List(ctx context.Context) ([]*Status, error)
	Update(ctx context.Context, status *Status) error
	Delete(ctx context.Context, id string) error
}
