package directory

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/craftlink/platform-api/internal/model"
	"github.com/craftlink/platform-api/internal/repository"
	apperrors "github.com/craftlink/platform-api/pkg/errors"
)

const (
	cacheKeyCities   = "cities"
	cacheKeySectors  = "sectors"
	cacheKeyServices = "services"

	cacheTTL = 10 * time.Minute
)

// Service serves the cities/sectors/services catalog. List reads go
// through an in-process cache; any write invalidates the affected key.
type Service struct {
	repo  repository.DirectoryRepository
	cache *cache.Cache
}

func NewService(repo repository.DirectoryRepository) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(cacheTTL, 2*cacheTTL),
	}
}

func (s *Service) CreateCity(ctx context.Context, city *model.City) error {
	if city.Name == "" {
		return apperrors.Validation("city name is required", nil)
	}
	if err := s.repo.CreateCity(ctx, city); err != nil {
		return apperrors.Internal(err)
	}
	s.cache.Delete(cacheKeyCities)
	return nil
}

func (s *Service) UpdateCity(ctx context.Context, city *model.City) error {
	if city.Name == "" {
		return apperrors.Validation("city name is required", nil)
	}
	if err := s.repo.UpdateCity(ctx, city); err != nil {
		return s.translate(err, "city")
	}
	s.cache.Delete(cacheKeyCities)
	return nil
}

func (s *Service) DeleteCity(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCity(ctx, id); err != nil {
		return s.translate(err, "city")
	}
	s.cache.Delete(cacheKeyCities)
	return nil
}

func (s *Service) ListCities(ctx context.Context) ([]*model.City, error) {
	if cached, ok := s.cache.Get(cacheKeyCities); ok {
		return cached.([]*model.City), nil
	}

	cities, err := s.repo.ListCities(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	s.cache.Set(cacheKeyCities, cities, cache.DefaultExpiration)
	return cities, nil
}

func (s *Service) CreateSector(ctx context.Context, sector *model.Sector) error {
	if sector.Name == "" {
		return apperrors.Validation("sector name is required", nil)
	}
	if err := s.repo.CreateSector(ctx, sector); err != nil {
		return apperrors.Internal(err)
	}
	s.cache.Delete(cacheKeySectors)
	return nil
}

func (s *Service) UpdateSector(ctx context.Context, sector *model.Sector) error {
	if sector.Name == "" {
		return apperrors.Validation("sector name is required", nil)
	}
	if err := s.repo.UpdateSector(ctx, sector); err != nil {
		return s.translate(err, "sector")
	}
	s.cache.Delete(cacheKeySectors)
	return nil
}

func (s *Service) DeleteSector(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteSector(ctx, id); err != nil {
		return s.translate(err, "sector")
	}
	s.cache.Delete(cacheKeySectors)
	s.cache.Delete(cacheKeyServices)
	return nil
}

func (s *Service) ListSectors(ctx context.Context) ([]*model.Sector, error) {
	if cached, ok := s.cache.Get(cacheKeySectors); ok {
		return cached.([]*model.Sector), nil
	}

	sectors, err := s.repo.ListSectors(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	s.cache.Set(cacheKeySectors, sectors, cache.DefaultExpiration)
	return sectors, nil
}

func (s *Service) CreateService(ctx context.Context, service *model.Service) error {
	if service.Name == "" {
		return apperrors.Validation("service name is required", nil)
	}
	if service.SectorID == uuid.Nil {
		return apperrors.Validation("sectorId is required", nil)
	}
	if err := s.repo.CreateService(ctx, service); err != nil {
		return apperrors.Internal(err)
	}
	s.cache.Delete(cacheKeyServices)
	return nil
}

func (s *Service) UpdateService(ctx context.Context, service *model.Service) error {
	if service.Name == "" {
		return apperrors.Validation("service name is required", nil)
	}
	if err := s.repo.UpdateService(ctx, service); err != nil {
		return s.translate(err, "service")
	}
	s.cache.Delete(cacheKeyServices)
	return nil
}

func (s *Service) DeleteService(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteService(ctx, id); err != nil {
		return s.translate(err, "service")
	}
	s.cache.Delete(cacheKeyServices)
	return nil
}

// ListServices caches only the unfiltered listing; sector-scoped reads
// hit the database directly.
func (s *Service) ListServices(ctx context.Context, sectorID *uuid.UUID) ([]*model.Service, error) {
	if sectorID == nil {
		if cached, ok := s.cache.Get(cacheKeyServices); ok {
			return cached.([]*model.Service), nil
		}
	}

	services, err := s.repo.ListServices(ctx, sectorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if sectorID == nil {
		s.cache.Set(cacheKeyServices, services, cache.DefaultExpiration)
	}
	return services, nil
}

func (s *Service) translate(err error, resource string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(resource, err)
	}
	return apperrors.Internal(err)
}
