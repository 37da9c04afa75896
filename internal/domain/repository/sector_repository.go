package repository

import (
	"context"

	"github.com/jhoicas/ephone-api/internal/domain/entity"
)

// SectorRepository define el puerto de persistencia para Sector.
// GetByID devuelve (nil, nil) si no existe.
type SectorRepository interface {
	Create(ctx context.Context, sector *entity.Sector) error
	Update(ctx context.Context, sector *entity.Sector) error
	GetByID(ctx context.Context, id int64) (*entity.Sector, error)
	List(ctx context.Context) ([]*entity.Sector, error)
}
