package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/beautycare/scheduling-api/internal/model"
	"github.com/beautycare/scheduling-api/internal/repository"
	apperrors "github.com/beautycare/scheduling-api/pkg/errors"
)

const (
	cacheTTL     = 5 * time.Minute
	cacheCleanup = 10 * time.Minute

	listCacheKey = "services:all"
)

// Service manages the service catalog. The unfiltered listing is cached;
// every write invalidates the cache.
type Service struct {
	repo  repository.ServiceRepository
	cache *cache.Cache
}

func NewService(repo repository.ServiceRepository) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(cacheTTL, cacheCleanup),
	}
}

func (s *Service) List(ctx context.Context, filters *model.ServiceFilters) ([]*model.Service, error) {
	unfiltered := filters == nil || (filters.ServiceID == nil && filters.Name == nil)
	if unfiltered {
		if cached, ok := s.cache.Get(listCacheKey); ok {
			return cached.([]*model.Service), nil
		}
	}

	services, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	if unfiltered {
		s.cache.Set(listCacheKey, services, cache.DefaultExpiration)
	}
	return services, nil
}

func (s *Service) Get(ctx context.Context, id int) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	if svc == nil {
		return nil, apperrors.NotFound("service", nil)
	}
	return svc, nil
}

func (s *Service) Create(ctx context.Context, req *model.CreateServiceRequest) (int, error) {
	id, err := s.repo.Create(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("failed to create service: %w", err)
	}
	s.cache.Delete(listCacheKey)
	return id, nil
}

func (s *Service) Update(ctx context.Context, id int, req *model.CreateServiceRequest) (int, error) {
	affected, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return 0, fmt.Errorf("failed to update service: %w", err)
	}
	if affected == 0 {
		return 0, apperrors.NotFound("service", nil)
	}
	s.cache.Delete(listCacheKey)
	return affected, nil
}

func (s *Service) Delete(ctx context.Context, id int) (int, error) {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete service: %w", err)
	}
	if affected == 0 {
		return 0, apperrors.NotFound("service", nil)
	}
	s.cache.Delete(listCacheKey)
	return affected, nil
}
