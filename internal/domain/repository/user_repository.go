package repository

import (
	"context"

	"github.com/jhoicas/ephone-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
// Create devuelve domain.ErrEmailAlreadyExists si el email ya existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
}
