package services

import (
	"context"
	"time"

	"github.com/inf25dw2g02/MindPool/internal/application/dto"
	"github.com/inf25dw2g02/MindPool/internal/domain/idea"
	"github.com/inf25dw2g02/MindPool/pkg/errors"
	"github.com/inf25dw2g02/MindPool/pkg/logger"
)

// IdeaService implements owner-scoped idea CRUD.
type IdeaService struct {
	ideaRepo     idea.Repository
	categoryRepo idea.CategoryRepository
	statusRepo   idea.StatusRepository
	log          logger.Logger
}

// NewIdeaService creates a new idea service.
func NewIdeaService(
	ideaRepo idea.Repository,
	categoryRepo idea.CategoryRepository,
	statusRepo idea.StatusRepository,
	log logger.Logger,
) *IdeaService {
	return &IdeaService{
		ideaRepo:     ideaRepo,
		categoryRepo: categoryRepo,
		statusRepo:   statusRepo,
		log:          log,
	}
}

// Create stores a new idea owned by the caller. The owner always comes from
// the authenticated principal, regardless of what the request carries.
func (s *IdeaService) Create(ctx context.Context, ownerID string, req *dto.CreateIdeaRequest) (*dto.IdeaResponse, error) {
	if err := s.checkCatalogRefs(ctx, req.CategoryID, req.StatusID); err != nil {
		return nil, err
	}

	i := idea.NewIdea(ownerID, req.Title, req.Description, req.CategoryID, req.StatusID, req.DueDate)

	if err := s.ideaRepo.Create(ctx, i); err != nil {
		return nil, errors.Wrap(err, "failed to create idea")
	}

	s.log.Info("idea created",
		logger.String("idea_id", i.ID),
		logger.IdentityID(ownerID),
	)
	return toIdeaResponse(i), nil
}

// Get returns an idea the caller owns. Same not-found-before-forbidden
// ordering as Update and Delete.
func (s *IdeaService) Get(ctx context.Context, callerID, id string) (*dto.IdeaResponse, error) {
	i, err := s.ideaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !i.IsOwnedBy(callerID) {
		return nil, errors.ErrForbidden
	}
	return toIdeaResponse(i), nil
}

// ListMine returns the caller's ideas with category and status names joined
// in, newest first.
func (s *IdeaService) ListMine(ctx context.Context, ownerID string) ([]*dto.IdeaListItem, error) {
	items, err := s.ideaRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ideas")
	}

	out := make([]*dto.IdeaListItem, 0, len(items))
	for _, it := range items {
		out = append(out, &dto.IdeaListItem{
			IdeaResponse: *toIdeaResponse(&it.Idea),
			CategoryName: it.CategoryName,
			StatusName:   it.StatusName,
		})
	}
	return out, nil
}

// Update modifies an idea the caller owns. A missing idea reports not-found
// before ownership is ever considered, so callers cannot probe for other
// users' idea IDs.
func (s *IdeaService) Update(ctx context.Context, callerID, id string, req *dto.UpdateIdeaRequest) (*dto.IdeaResponse, error) {
	i, err := s.ideaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !i.IsOwnedBy(callerID) {
		return nil, errors.ErrForbidden
	}

	if req.Title != nil {
		i.Title = *req.Title
	}
	if req.Description != nil {
		i.Description = *req.Description
	}
	if req.DueDate != nil {
		i.DueDate = req.DueDate
	}
	if req.CategoryID != nil {
		i.CategoryID = *req.CategoryID
	}
	if req.StatusID != nil {
		i.StatusID = *req.StatusID
	}
	if err := s.checkCatalogRefs(ctx, i.CategoryID, i.StatusID); err != nil {
		return nil, err
	}
	i.UpdatedAt = time.Now().UTC()

	if err := s.ideaRepo.Update(ctx, i); err != nil {
		return nil, errors.Wrap(err, "failed to update idea")
	}
	return toIdeaResponse(i), nil
}

// Delete removes an idea the caller owns. Same not-found-before-forbidden
// ordering as Update.
func (s *IdeaService) Delete(ctx context.Context, callerID, id string) error {
	i, err := s.ideaRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !i.IsOwnedBy(callerID) {
		return errors.ErrForbidden
	}

	return s.ideaRepo.Delete(ctx, id)
}

func (s *IdeaService) checkCatalogRefs(ctx context.Context, categoryID, statusID string) error {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return &errors.ValidationError{Field: "category_id", Message: "unknown category"}
		}
		return errors.Wrap(err, "failed to check category")
	}
	if _, err := s.statusRepo.GetByID(ctx, statusID); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return &errors.ValidationError{Field: "status_id", Message: "unknown status"}
		}
		return errors.Wrap(err, "failed to check status")
	}
	return nil
}

func toIdeaResponse(i *idea.Idea) *dto.IdeaResponse {
	return &dto.IdeaResponse{
		ID:          i.ID,
		Title:       i.Title,
		Description: i.Description,
		DueDate:     i.DueDate,
		OwnerID:     i.OwnerID,
		CategoryID:  i.CategoryID,
		StatusID:    i.StatusID,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
