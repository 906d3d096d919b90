package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inf25dw2g02/MindPool/internal/application/dto"
	"github.com/inf25dw2g02/MindPool/internal/domain/idea"
	"github.com/inf25dw2g02/MindPool/pkg/errors"
)

type ideaFixture struct {
	svc        *IdeaService
	ideas      *fakeIdeaRepo
	categoryID string
	statusID   string
}

func newIdeaFixture(t *testing.T) *ideaFixture {
	t.Helper()
	ideas := newFakeIdeaRepo()
	categories := newFakeCategoryRepo()
	statuses := newFakeStatusRepo()
	ideas.categories = categories
	ideas.statuses = statuses

	cat := idea.NewCategory("Feature")
	require.NoError(t, categories.Create(context.Background(), cat))
	st := idea.NewStatus("Open")
	require.NoError(t, statuses.Create(context.Background(), st))

	return &ideaFixture{
		svc:        NewIdeaService(ideas, categories, statuses, testLogger()),
		ideas:      ideas,
		categoryID: cat.ID,
		statusID:   st.ID,
	}
}

func (f *ideaFixture) create(t *testing.T, ownerID, title string) *dto.IdeaResponse {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), ownerID, &dto.CreateIdeaRequest{
		Title:      title,
		CategoryID: f.categoryID,
		StatusID:   f.statusID,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateForcesOwner(t *testing.T) {
	f := newIdeaFixture(t)

	resp := f.create(t, "alice", "my idea")
	assert.Equal(t, "alice", resp.OwnerID)
	assert.NotEmpty(t, resp.ID)
}

func TestCreateUnknownCategoryRejected(t *testing.T) {
	f := newIdeaFixture(t)

	_, err := f.svc.Create(context.Background(), "alice", &dto.CreateIdeaRequest{
		Title:      "x",
		CategoryID: "no-such-category",
		StatusID:   f.statusID,
	})
	var ve *errors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "category_id", ve.Field)
}

func TestListScopedToOwner(t *testing.T) {
	f := newIdeaFixture(t)
	ctx := context.Background()

	f.create(t, "alice", "a1")
	f.create(t, "alice", "a2")
	f.create(t, "bob", "b1")

	mine, err := f.svc.ListMine(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, it := range mine {
		assert.Equal(t, "alice", it.OwnerID)
		assert.Equal(t, "Feature", it.CategoryName)
		assert.Equal(t, "Open", it.StatusName)
	}
}

func TestUpdateForeignIdeaForbidden(t *testing.T) {
	f := newIdeaFixture(t)
	ctx := context.Background()

	resp := f.create(t, "alice", "hers")

	title := "mine now"
	_, err := f.svc.Update(ctx, "bob", resp.ID, &dto.UpdateIdeaRequest{Title: &title})
	assert.ErrorIs(t, err, errors.ErrForbidden)

	// Unchanged.
	got, err := f.svc.Get(ctx, "alice", resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "hers", got.Title)
}

func TestGetScopedToOwner(t *testing.T) {
	f := newIdeaFixture(t)
	ctx := context.Background()

	resp := f.create(t, "alice", "hers")

	got, err := f.svc.Get(ctx, "alice", resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "hers", got.Title)

	_, err = f.svc.Get(ctx, "bob", resp.ID)
	assert.ErrorIs(t, err, errors.ErrForbidden)

	_, err = f.svc.Get(ctx, "bob", "no-such-id")
	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.NotErrorIs(t, err, errors.ErrForbidden)
}

func TestUpdateMissingIdeaNotFoundBeforeOwnership(t *testing.T) {
	f := newIdeaFixture(t)

	title := "x"
	_, err := f.svc.Update(context.Background(), "bob", "no-such-id", &dto.UpdateIdeaRequest{Title: &title})
	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.NotErrorIs(t, err, errors.ErrForbidden)
}

func TestUpdateOwnIdea(t *testing.T) {
	f := newIdeaFixture(t)
	ctx := context.Background()

	resp := f.create(t, "alice", "draft")

	title := "final"
	desc := "ready to ship"
	updated, err := f.svc.Update(ctx, "alice", resp.ID, &dto.UpdateIdeaRequest{
		Title:       &title,
		Description: &desc,
	})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, "ready to ship", updated.Description)
	assert.Equal(t, "alice", updated.OwnerID)
	assert.False(t, updated.UpdatedAt.Before(resp.UpdatedAt))
}

func TestDeleteForeignIdeaForbidden(t *testing.T) {
	f := newIdeaFixture(t)
	ctx := context.Background()

	resp := f.create(t, "alice", "hers")

	assert.ErrorIs(t, f.svc.Delete(ctx, "bob", resp.ID), errors.ErrForbidden)
	assert.ErrorIs(t, f.svc.Delete(ctx, "bob", "no-such-id"), errors.ErrNotFound)
	assert.NoError(t, f.svc.Delete(ctx, "alice", resp.ID))

	_, err := f.svc.Get(ctx, "alice", resp.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestCatalogDeleteWithDependents(t *testing.T) {
	f := newIdeaFixture(t)
	ctx := context.Background()

	categories := f.svc.categoryRepo.(*fakeCategoryRepo)
	statuses := f.svc.statusRepo.(*fakeStatusRepo)
	catalog := NewCatalogService(categories, statuses, f.ideas)

	resp := f.create(t, "alice", "uses both")

	assert.ErrorIs(t, catalog.DeleteCategory(ctx, f.categoryID), errors.ErrHasDependents)
	assert.ErrorIs(t, catalog.DeleteStatus(ctx, f.statusID), errors.ErrHasDependents)

	require.NoError(t, f.svc.Delete(ctx, "alice", resp.ID))
	assert.NoError(t, catalog.DeleteCategory(ctx, f.categoryID))
	assert.NoError(t, catalog.DeleteStatus(ctx, f.statusID))
}
