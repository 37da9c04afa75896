package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"slices"
	"strings"

	"github.com/jhoicas/ephone-api/internal/application/auth"
	"github.com/jhoicas/ephone-api/internal/application/dto"
	"github.com/jhoicas/ephone-api/internal/domain"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
	"github.com/jhoicas/ephone-api/internal/domain/repository"
)

const minPasswordLen = 6

// UserUseCase administración de usuarios (solo admin).
type UserUseCase struct {
	repo       repository.UserRepository
	sectorRepo repository.SectorRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, sectorRepo repository.SectorRepository) *UserUseCase {
	return &UserUseCase{repo: repo, sectorRepo: sectorRepo}
}

// Create crea un usuario con la contraseña hasheada.
// Devuelve domain.ErrEmailAlreadyExists si el email ya está registrado.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if len(in.Password) < minPasswordLen {
		return nil, domain.NewValidationError("password", fmt.Sprintf("mínimo %d caracteres", minPasswordLen))
	}
	user := &entity.User{}
	if err := uc.apply(ctx, user, in.Email, in.DisplayName, in.Role, in.SectorIDs); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Update edita un usuario. Password vacío conserva la contraseña actual.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := uc.apply(ctx, user, in.Email, in.DisplayName, in.Role, in.SectorIDs); err != nil {
		return nil, err
	}
	if in.Password != "" {
		if len(in.Password) < minPasswordLen {
			return nil, domain.NewValidationError("password", fmt.Sprintf("mínimo %d caracteres", minPasswordLen))
		}
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// List lista todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}

// apply valida y copia los campos editables. Solo el rol sector conserva SectorIDs.
func (uc *UserUseCase) apply(ctx context.Context, user *entity.User, email, name, role string, sectorIDs []int64) error {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.NewValidationError("email", "email inválido")
	}
	if !entity.ValidRole(role) {
		return domain.NewValidationError("role", "debe ser admin, finance o sector")
	}
	if role != entity.RoleSector {
		sectorIDs = nil
	} else {
		if len(sectorIDs) == 0 {
			return domain.NewValidationError("sector_ids", "un usuario de sector necesita al menos un sector")
		}
		sectorIDs = slices.Compact(slices.Sorted(slices.Values(sectorIDs)))
		for _, id := range sectorIDs {
			s, err := uc.sectorRepo.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if s == nil {
				return domain.NewValidationError("sector_ids", fmt.Sprintf("sector %d inexistente", id))
			}
		}
	}
	user.Email = email
	user.DisplayName = strings.TrimSpace(name)
	if user.DisplayName == "" {
		user.DisplayName = email
	}
	user.Role = role
	user.SectorIDs = sectorIDs
	return nil
}
