package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/ephone-api/internal/domain"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
	"github.com/jhoicas/ephone-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository. El email es único sin distinguir mayúsculas.
type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(user.Email, 0) {
		return domain.ErrEmailAlreadyExists
	}
	r.s.nextUserID++
	user.ID = r.s.nextUserID
	stamp(&user.CreatedAt, &user.UpdatedAt)
	r.s.users = append(r.s.users, cloneUser(user))
	return nil
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(user.Email, user.ID) {
		return domain.ErrEmailAlreadyExists
	}
	for i, cur := range r.s.users {
		if cur.ID == user.ID {
			user.CreatedAt = cur.CreatedAt
			stamp(&user.CreatedAt, &user.UpdatedAt)
			r.s.users[i] = cloneUser(user)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, cur := range r.s.users {
		if cur.ID == id {
			return cloneUser(cur), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, cur := range r.s.users {
		if strings.EqualFold(cur.Email, email) {
			return cloneUser(cur), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.s.users))
	for _, cur := range r.s.users {
		out = append(out, cloneUser(cur))
	}
	return out, nil
}

// emailTaken requiere el lock tomado.
func (r *UserRepo) emailTaken(email string, exceptID int64) bool {
	for _, cur := range r.s.users {
		if cur.ID != exceptID && strings.EqualFold(cur.Email, email) {
			return true
		}
	}
	return false
}
