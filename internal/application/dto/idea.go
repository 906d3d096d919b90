package dto

import "time"

// CreateIdeaRequest creates a new idea. The owner is taken from the
// authenticated caller, never from the request body.
type CreateIdeaRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	CategoryID  string     `json:"category_id" binding:"required"`
	StatusID    string     `json:"status_id" binding:"required"`
}

// UpdateIdeaRequest updates fields of an existing idea. Nil fields are
// left unchanged.
type UpdateIdeaRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=200"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	CategoryID  *string    `json:"category_id"`
	StatusID    *string    `json:"status_id"`
}

// IdeaResponse is a single idea.
type IdeaResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	OwnerID     string     `json:"owner_id"`
	CategoryID  string     `json:"category_id"`
	StatusID    string     `json:"status_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IdeaListItem is an idea enriched with its category and status names
// for list views.
type IdeaListItem struct {
	IdeaResponse
	CategoryName string `json:"category_name"`
	StatusName   string `json:"status_name"`
}

// CatalogRequest creates or renames a category or status.
type CatalogRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CatalogResponse is a category or status entry.
type CatalogResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
