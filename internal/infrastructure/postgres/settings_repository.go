package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ephone-api/internal/domain/entity"
	"github.com/jhoicas/ephone-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo guarda la configuración en la fila única de settings.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get devuelve (nil, nil) si nunca se guardó.
func (r *SettingsRepo) Get(ctx context.Context) (*entity.Settings, error) {
	var s entity.Settings
	err := r.q.QueryRow(ctx, `SELECT closing_day, updated_at FROM settings WHERE id = 1`).Scan(&s.ClosingDay, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Save inserta o reemplaza la fila única.
func (r *SettingsRepo) Save(ctx context.Context, s *entity.Settings) error {
	query := `
		INSERT INTO settings (id, closing_day, updated_at) VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET closing_day = EXCLUDED.closing_day, updated_at = now()
		RETURNING updated_at`
	if err := r.q.QueryRow(ctx, query, s.ClosingDay).Scan(&s.UpdatedAt); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
