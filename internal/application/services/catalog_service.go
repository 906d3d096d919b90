package services

import (
	"context"

	"github.com/inf25dw2g02/MindPool/internal/application/dto"
	"github.com/inf25dw2g02/MindPool/internal/domain/idea"
	"github.com/inf25dw2g02/MindPool/pkg/errors"
)

// CatalogService manages the shared category and status tables.
type CatalogService struct {
	categoryRepo idea.CategoryRepository
	statusRepo   idea.StatusRepository
	ideaRepo     idea.Repository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	categoryRepo idea.CategoryRepository,
	statusRepo idea.StatusRepository,
	ideaRepo idea.Repository,
) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		statusRepo:   statusRepo,
		ideaRepo:     ideaRepo,
	}
}

func (s *CatalogService) CreateCategory(ctx context.Context, req *dto.CatalogRequest) (*dto.CatalogResponse, error) {
	c := idea.NewCategory(req.Name)
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}
	return &dto.CatalogResponse{ID: c.ID, Name: c.Name}, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*dto.CatalogResponse, error) {
	cats, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}
	out := make([]*dto.CatalogResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, &dto.CatalogResponse{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id string, req *dto.CatalogRequest) (*dto.CatalogResponse, error) {
	c, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = req.Name
	if err := s.categoryRepo.Update(ctx, c); err != nil {
		return nil, errors.Wrap(err, "failed to update category")
	}
	return &dto.CatalogResponse{ID: c.ID, Name: c.Name}, nil
}

// DeleteCategory removes a category unless ideas still reference it.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	n, err := s.ideaRepo.CountByCategory(ctx, id)
	if err != nil {
		return errors.Wrap(err, "failed to count referencing ideas")
	}
	if n > 0 {
		return errors.ErrHasDependents
	}
	return s.categoryRepo.Delete(ctx, id)
}

func (s *CatalogService) CreateStatus(ctx context.Context, req *dto.CatalogRequest) (*dto.CatalogResponse, error) {
	st := idea.NewStatus(req.Name)
	if err := s.statusRepo.Create(ctx, st); err != nil {
		return nil, errors.Wrap(err, "failed to create status")
	}
	return &dto.CatalogResponse{ID: st.ID, Name: st.Name}, nil
}

func (s *CatalogService) ListStatuses(ctx context.Context) ([]*dto.CatalogResponse, error) {
	sts, err := s.statusRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list statuses")
	}
	out := make([]*dto.CatalogResponse, 0, len(sts))
	for _, st := range sts {
		out = append(out, &dto.CatalogResponse{ID: st.ID, Name: st.Name})
	}
	return out, nil
}

func (s *CatalogService) UpdateStatus(ctx context.Context, id string, req *dto.CatalogRequest) (*dto.CatalogResponse, error) {
	st, err := s.statusRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	st.Name = req.Name
	if err := s.statusRepo.Update(ctx, st); err != nil {
		return nil, errors.Wrap(err, "failed to update status")
	}
	return &dto.CatalogResponse{ID: st.ID, Name: st.Name}, nil
}

// DeleteStatus removes a status unless ideas still reference it.
func (s *CatalogService) DeleteStatus(ctx context.Context, id string) error {
	n, err := s.ideaRepo.CountByStatus(ctx, id)
	if err != nil {
		return errors.Wrap(err, "failed to count referencing ideas")
	}
	if n > 0 {
		return errors.ErrHasDependents
	}
	return s.statusRepo.Delete(ctx, id)
}
