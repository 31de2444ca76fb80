package staff

import (
	"context"
	"fmt"

	"github.com/beautycare/scheduling-api/internal/model"
	"github.com/beautycare/scheduling-api/internal/repository"
	apperrors "github.com/beautycare/scheduling-api/pkg/errors"
)

type Service struct {
	repo repository.StaffRepository
}

func NewService(repo repository.StaffRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters *model.StaffFilters) ([]*model.Staff, error) {
	staff, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

func (s *Service) Get(ctx context.Context, id int) (*model.Staff, error) {
	member, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff member: %w", err)
	}
	if member == nil {
		return nil, apperrors.NotFound("staff member", nil)
	}
	return member, nil
}

func (s *Service) Create(ctx context.Context, req *model.CreateStaffRequest) (int, error) {
	id, err := s.repo.Create(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("failed to create staff member: %w", err)
	}
	return id, nil
}

func (s *Service) Update(ctx context.Context, id int, req *model.CreateStaffRequest) (int, error) {
	affected, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return 0, fmt.Errorf("failed to update staff member: %w", err)
	}
	if affected == 0 {
		return 0, apperrors.NotFound("staff member", nil)
	}
	return affected, nil
}

func (s *Service) Delete(ctx context.Context, id int) (int, error) {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete staff member: %w", err)
	}
	if affected == 0 {
		return 0, apperrors.NotFound("staff member", nil)
	}
	return affected, nil
}
