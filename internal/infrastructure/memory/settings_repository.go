package memory

import (
	"context"
	"time"

	"github.com/jhoicas/ephone-api/internal/domain/entity"
	"github.com/jhoicas/ephone-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación en memoria de SettingsRepository.
type SettingsRepo struct {
	s *Store
}

func (r *SettingsRepo) Get(_ context.Context) (*entity.Settings, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c := r.s.settings
	return &c, nil
}

func (r *SettingsRepo) Save(_ context.Context, settings *entity.Settings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	settings.UpdatedAt = time.Now()
	r.s.settings = *settings
	return nil
}
