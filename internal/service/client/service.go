package client

import (
	"context"
	"fmt"

	"github.com/beautycare/scheduling-api/internal/model"
	"github.com/beautycare/scheduling-api/internal/repository"
	apperrors "github.com/beautycare/scheduling-api/pkg/errors"
)

type Service struct {
	repo repository.ClientRepository
}

func NewService(repo repository.ClientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters *model.ClientFilters) ([]*model.Client, error) {
	clients, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (s *Service) Get(ctx context.Context, id int) (*model.Client, error) {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if client == nil {
		return nil, apperrors.NotFound("client", nil)
	}
	return client, nil
}

func (s *Service) Create(ctx context.Context, req *model.CreateClientRequest) (int, error) {
	id, err := s.repo.Create(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("failed to create client: %w", err)
	}
	return id, nil
}

func (s *Service) Update(ctx context.Context, id int, req *model.UpdateClientRequest) (int, error) {
	affected, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return 0, fmt.Errorf("failed to update client: %w", err)
	}
	if affected == 0 {
		return 0, apperrors.NotFound("client", nil)
	}
	return affected, nil
}

func (s *Service) Delete(ctx context.Context, id int) (int, error) {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete client: %w", err)
	}
	if affected == 0 {
		return 0, apperrors.NotFound("client", nil)
	}
	return affected, nil
}
