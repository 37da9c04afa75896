package repository

import (
	"context"

	"github.com/jhoicas/ephone-api/internal/domain/entity"
)

// SettingsRepository guarda la configuración general (una sola fila).
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.Settings, error)
	Save(ctx context.Context, settings *entity.Settings) error
}
