package persistence

import (
	"github.com/inf25dw2g02/MindPool/internal/domain/idea"
	"github.com/inf25dw2g02/MindPool/internal/domain/identity"
	"github.com/inf25dw2g02/MindPool/internal/infrastructure/persistence/postgres"
)

// Repositories holds all repository implementations.
type Repositories struct {
	Identity identity.Repository
	Idea     idea.Repository
	Category idea.CategoryRepository
	Status   idea.StatusRepository
}

// NewRepositories creates all repository implementations.
func NewRepositories(db *postgres.DB) *Repositories {
	return &Repositories{
		Identity: postgres.NewIdentityRepository(db),
		Idea:     postgres.NewIdeaRepository(db),
		Category: postgres.NewCategoryRepository(db),
		Status:   postgres.NewStatusRepository(db),
	}
}
