package repository

import (
	"context"

	"github.com/jhoicas/ephone-api/internal/domain/entity"
)

// SimCardRepository define el puerto de persistencia para chips.
type SimCardRepository interface {
	Create(ctx context.Context, sim *entity.SimCard) error
	Update(ctx context.Context, sim *entity.SimCard) error
	GetByID(ctx context.Context, id int64) (*entity.SimCard, error)
	List(ctx context.Context) ([]*entity.SimCard, error)
	ListBySector(ctx context.Context, sectorID int64) ([]*entity.SimCard, error)
}
