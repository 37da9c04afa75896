package repository

import (
	"context"

	"github.com/jhoicas/ephone-api/internal/domain/entity"
)

// ExtensionRepository define el puerto de persistencia para ramales.
// No hay borrado físico: un ramal se retira cambiando su estado.
type ExtensionRepository interface {
	Create(ctx context.Context, ext *entity.Extension) error
	Update(ctx context.Context, ext *entity.Extension) error
	GetByID(ctx context.Context, id int64) (*entity.Extension, error)
	List(ctx context.Context) ([]*entity.Extension, error)
	ListBySector(ctx context.Context, sectorID int64) ([]*entity.Extension, error)
}
