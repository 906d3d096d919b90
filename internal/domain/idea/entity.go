package idea

import (
	"time"

	"github.com/google/uuid"
)

// Idea is a user-owned record. OwnerID always holds the external ID of the
// identity that created it; the server assigns it, client-supplied owner
// values are never trusted.
type Idea struct {
	ID          string
	Title       string
	Description string
	DueDate     *time.Time
	OwnerID     string
	CategoryID  string
	StatusID    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewIdea creates an idea owned by the given identity.
func NewIdea(ownerID, title, description, categoryID, statusID string, dueDate *time.Time) *Idea {
	now := time.Now().UTC()
	return &Idea{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		OwnerID:     ownerID,
		CategoryID:  categoryID,
		StatusID:    statusID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsOwnedBy reports whether the idea belongs to the given identity.
func (i *Idea) IsOwnedBy(identityID string) bool {
	return i.OwnerID == identityID
}

// ListItem is an idea joined with its category and status names, the shape
// returned by list queries. Names are empty when the reference dangles.
type ListItem struct {
	Idea
	CategoryName string
	StatusName   string
}

// Category labels ideas. Categories are shared across users.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// NewCategory creates a category with a server-assigned ID.
func NewCategory(name string) *Category {
	return &Category{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// Status is a workflow state for ideas, shared across users.
type Status struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// NewStatus creates a status with a server-assigned ID.
func NewStatus(name string) *Status {
	return &Status{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}
