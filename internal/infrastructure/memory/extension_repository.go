package memory

import (
	"context"

	"github.com/jhoicas/ephone-api/internal/domain"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
	"github.com/jhoicas/ephone-api/internal/domain/repository"
)

var _ repository.ExtensionRepository = (*ExtensionRepo)(nil)

// ExtensionRepo implementación en memoria de ExtensionRepository.
type ExtensionRepo struct {
	s *Store
}

func (r *ExtensionRepo) Create(_ context.Context, ext *entity.Extension) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextExtensionID++
	ext.ID = r.s.nextExtensionID
	stamp(&ext.CreatedAt, &ext.UpdatedAt)
	r.s.extensions = append(r.s.extensions, cloneExtension(ext))
	return nil
}

func (r *ExtensionRepo) Update(_ context.Context, ext *entity.Extension) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, cur := range r.s.extensions {
		if cur.ID == ext.ID {
			ext.CreatedAt = cur.CreatedAt
			stamp(&ext.CreatedAt, &ext.UpdatedAt)
			r.s.extensions[i] = cloneExtension(ext)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *ExtensionRepo) GetByID(_ context.Context, id int64) (*entity.Extension, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, cur := range r.s.extensions {
		if cur.ID == id {
			return cloneExtension(cur), nil
		}
	}
	return nil, nil
}

func (r *ExtensionRepo) List(_ context.Context) ([]*entity.Extension, error) {
	return r.filter(func(*entity.Extension) bool { return true }), nil
}

func (r *ExtensionRepo) ListBySector(_ context.Context, sectorID int64) ([]*entity.Extension, error) {
	return r.filter(func(e *entity.Extension) bool { return e.SectorID == sectorID }), nil
}

func (r *ExtensionRepo) filter(keep func(*entity.Extension) bool) []*entity.Extension {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Extension, 0, len(r.s.extensions))
	for _, cur := range r.s.extensions {
		if keep(cur) {
			out = append(out, cloneExtension(cur))
		}
	}
	return out
}
