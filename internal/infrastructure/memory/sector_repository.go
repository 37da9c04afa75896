package memory

import (
	"context"

	"github.com/jhoicas/ephone-api/internal/domain"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
	"github.com/jhoicas/ephone-api/internal/domain/repository"
)

var _ repository.SectorRepository = (*SectorRepo)(nil)

// SectorRepo implementación en memoria de SectorRepository.
type SectorRepo struct {
	s *Store
}

// Create asigna ID y guarda el sector.
func (r *SectorRepo) Create(_ context.Context, sector *entity.Sector) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextSectorID++
	sector.ID = r.s.nextSectorID
	stamp(&sector.CreatedAt, &sector.UpdatedAt)
	r.s.sectors = append(r.s.sectors, cloneSector(sector))
	return nil
}

// Update reemplaza el sector; el ID no cambia.
func (r *SectorRepo) Update(_ context.Context, sector *entity.Sector) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, cur := range r.s.sectors {
		if cur.ID == sector.ID {
			sector.CreatedAt = cur.CreatedAt
			stamp(&sector.CreatedAt, &sector.UpdatedAt)
			r.s.sectors[i] = cloneSector(sector)
			return nil
		}
	}
	return domain.ErrNotFound
}

// GetByID devuelve (nil, nil) si no existe.
func (r *SectorRepo) GetByID(_ context.Context, id int64) (*entity.Sector, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, cur := range r.s.sectors {
		if cur.ID == id {
			return cloneSector(cur), nil
		}
	}
	return nil, nil
}

// List devuelve los sectores en orden de creación.
func (r *SectorRepo) List(_ context.Context) ([]*entity.Sector, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Sector, 0, len(r.s.sectors))
	for _, cur := range r.s.sectors {
		out = append(out, cloneSector(cur))
	}
	return out, nil
}
