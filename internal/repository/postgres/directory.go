package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/craftlink/platform-api/internal/model"
	"github.com/craftlink/platform-api/internal/repository"
)

type directoryRepository struct {
	BaseRepository
}

func NewDirectoryRepository(base BaseRepository) repository.DirectoryRepository {
	return &directoryRepository{base}
}

func (r *directoryRepository) CreateCity(ctx context.Context, city *model.City) error {
	city.ID = uuid.New()
	city.CreatedAt = time.Now()
	city.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cities (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`, city.ID, city.Name, city.CreatedAt, city.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create city: %w", err)
	}
	return nil
}

func (r *directoryRepository) UpdateCity(ctx context.Context, city *model.City) error {
	city.UpdatedAt = time.Now()
	return r.execExpectingRow(ctx, `
		UPDATE cities SET name = $1, updated_at = $2 WHERE id = $3
	`, "update city", city.Name, city.UpdatedAt, city.ID)
}

func (r *directoryRepository) DeleteCity(ctx context.Context, id uuid.UUID) error {
	return r.execExpectingRow(ctx, `DELETE FROM cities WHERE id = $1`, "delete city", id)
}

func (r *directoryRepository) ListCities(ctx context.Context) ([]*model.City, error) {
	var cities []*model.City
	err := r.db.SelectContext(ctx, &cities, `
		SELECT id, name, created_at, updated_at FROM cities ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, nil
}

func (r *directoryRepository) CreateSector(ctx context.Context, sector *model.Sector) error {
	sector.ID = uuid.New()
	sector.CreatedAt = time.Now()
	sector.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sectors (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`, sector.ID, sector.Name, sector.CreatedAt, sector.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create sector: %w", err)
	}
	return nil
}

func (r *directoryRepository) UpdateSector(ctx context.Context, sector *model.Sector) error {
	sector.UpdatedAt = time.Now()
	return r.execExpectingRow(ctx, `
		UPDATE sectors SET name = $1, updated_at = $2 WHERE id = $3
	`, "update sector", sector.Name, sector.UpdatedAt, sector.ID)
}

func (r *directoryRepository) DeleteSector(ctx context.Context, id uuid.UUID) error {
	return r.execExpectingRow(ctx, `DELETE FROM sectors WHERE id = $1`, "delete sector", id)
}

func (r *directoryRepository) ListSectors(ctx context.Context) ([]*model.Sector, error) {
	var sectors []*model.Sector
	err := r.db.SelectContext(ctx, &sectors, `
		SELECT id, name, created_at, updated_at FROM sectors ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sectors: %w", err)
	}
	return sectors, nil
}

func (r *directoryRepository) CreateService(ctx context.Context, service *model.Service) error {
	service.ID = uuid.New()
	service.CreatedAt = time.Now()
	service.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO services (id, sector_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, service.ID, service.SectorID, service.Name, service.CreatedAt, service.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *directoryRepository) UpdateService(ctx context.Context, service *model.Service) error {
	service.UpdatedAt = time.Now()
	return r.execExpectingRow(ctx, `
		UPDATE services SET sector_id = $1, name = $2, updated_at = $3 WHERE id = $4
	`, "update service", service.SectorID, service.Name, service.UpdatedAt, service.ID)
}

func (r *directoryRepository) DeleteService(ctx context.Context, id uuid.UUID) error {
	return r.execExpectingRow(ctx, `DELETE FROM services WHERE id = $1`, "delete service", id)
}

func (r *directoryRepository) ListServices(ctx context.Context, sectorID *uuid.UUID) ([]*model.Service, error) {
	query := `SELECT id, sector_id, name, created_at, updated_at FROM services`
	args := []interface{}{}
	if sectorID != nil {
		query += ` WHERE sector_id = $1`
		args = append(args, *sectorID)
	}
	query += ` ORDER BY name ASC`

	var services []*model.Service
	if err := r.db.SelectContext(ctx, &services, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *directoryRepository) execExpectingRow(ctx context.Context, query, op string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
