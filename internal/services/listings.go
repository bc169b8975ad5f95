package services

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/jobsift/jobsift/internal/entities"
	"github.com/jobsift/jobsift/internal/repositories"
	"github.com/pkg/errors"
)

const defaultPageSize = 20

// ListingService fronts the filter engine: it defaults and validates the
// filter before any query runs, so the repository only ever sees sane input.
type ListingService struct {
	jobs     *repositories.Jobs
	validate *validator.Validate
}

func NewListingService(jobs *repositories.Jobs) *ListingService {
	return &ListingService{
		jobs:     jobs,
		validate: validator.New(),
	}
}

func (s *ListingService) Search(ctx context.Context, filter repositories.ListFilter) (*repositories.ListResult, error) {

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = defaultPageSize
	}

	if err := s.validate.Struct(filter); err != nil {
		return nil, errors.Wrap(err, "invalid listing filter")
	}

	return s.jobs.List(ctx, filter)
}

func (s *ListingService) GetJob(ctx context.Context, id int) (*entities.Job, error) {
	return s.jobs.GetByID(ctx, id)
}
