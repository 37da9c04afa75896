package memory

import (
	"context"

	"github.com/jhoicas/ephone-api/internal/domain"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
	"github.com/jhoicas/ephone-api/internal/domain/repository"
)

var _ repository.SimCardRepository = (*SimCardRepo)(nil)

// SimCardRepo implementación en memoria de SimCardRepository.
type SimCardRepo struct {
	s *Store
}

func (r *SimCardRepo) Create(_ context.Context, sim *entity.SimCard) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextSimCardID++
	sim.ID = r.s.nextSimCardID
	stamp(&sim.CreatedAt, &sim.UpdatedAt)
	r.s.simCards = append(r.s.simCards, cloneSimCard(sim))
	return nil
}

func (r *SimCardRepo) Update(_ context.Context, sim *entity.SimCard) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, cur := range r.s.simCards {
		if cur.ID == sim.ID {
			sim.CreatedAt = cur.CreatedAt
			stamp(&sim.CreatedAt, &sim.UpdatedAt)
			r.s.simCards[i] = cloneSimCard(sim)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *SimCardRepo) GetByID(_ context.Context, id int64) (*entity.SimCard, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, cur := range r.s.simCards {
		if cur.ID == id {
			return cloneSimCard(cur), nil
		}
	}
	return nil, nil
}

func (r *SimCardRepo) List(_ context.Context) ([]*entity.SimCard, error) {
	return r.filter(func(*entity.SimCard) bool { return true }), nil
}

func (r *SimCardRepo) ListBySector(_ context.Context, sectorID int64) ([]*entity.SimCard, error) {
	return r.filter(func(s *entity.SimCard) bool { return s.SectorID == sectorID }), nil
}

func (r *SimCardRepo) filter(keep func(*entity.SimCard) bool) []*entity.SimCard {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.SimCard, 0, len(r.s.simCards))
	for _, cur := range r.s.simCards {
		if keep(cur) {
			out = append(out, cloneSimCard(cur))
		}
	}
	return out
}
