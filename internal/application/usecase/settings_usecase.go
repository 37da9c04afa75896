package usecase

import (
	"context"

	"github.com/jhoicas/ephone-api/internal/application/dto"
	"github.com/jhoicas/ephone-api/internal/domain"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
	"github.com/jhoicas/ephone-api/internal/domain/repository"
)

// SettingsUseCase lectura y edición de la configuración general.
// El día de cierre se guarda pero el período vigente sigue siendo el mes calendario.
type SettingsUseCase struct {
	repo repository.SettingsRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// Get devuelve la configuración actual (con valores por defecto si nunca se guardó).
func (uc *SettingsUseCase) Get(ctx context.Context) (*dto.SettingsDTO, error) {
	s, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return &dto.SettingsDTO{ClosingDay: entity.DefaultClosingDay}, nil
	}
	return &dto.SettingsDTO{ClosingDay: s.ClosingDay}, nil
}

// Update guarda la configuración. ClosingDay debe estar entre 1 y 31.
func (uc *SettingsUseCase) Update(ctx context.Context, in dto.SettingsDTO) (*dto.SettingsDTO, error) {
	if in.ClosingDay < 1 || in.ClosingDay > 31 {
		return nil, domain.NewValidationError("closing_day", "debe estar entre 1 y 31")
	}
	if err := uc.repo.Save(ctx, &entity.Settings{ClosingDay: in.ClosingDay}); err != nil {
		return nil, err
	}
	return &dto.SettingsDTO{ClosingDay: in.ClosingDay}, nil
}
