package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ephone-api/internal/domain"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
	"github.com/jhoicas/ephone-api/internal/domain/repository"
)

var _ repository.SectorRepository = (*SectorRepo)(nil)

// SectorRepo implementación de SectorRepository (usable con pool o tx).
type SectorRepo struct {
	q Querier
}

// NewSectorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSectorRepository(q Querier) *SectorRepo {
	return &SectorRepo{q: q}
}

const sectorColumns = `id, name, tax_id, cost_center_code, created_at, updated_at`

// Create persiste un sector y asigna ID y timestamps.
func (r *SectorRepo) Create(ctx context.Context, s *entity.Sector) error {
	query := `
		INSERT INTO sectors (name, tax_id, cost_center_code)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, s.Name, s.TaxID, s.CostCenterCode).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert sector: %w", err)
	}
	return nil
}

// Update actualiza nombre, CNPJ y centro de resultado.
func (r *SectorRepo) Update(ctx context.Context, s *entity.Sector) error {
	query := `
		UPDATE sectors SET name = $2, tax_id = $3, cost_center_code = $4, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query, s.ID, s.Name, s.TaxID, s.CostCenterCode).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update sector: %w", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *SectorRepo) GetByID(ctx context.Context, id int64) (*entity.Sector, error) {
	row := r.q.QueryRow(ctx, `SELECT `+sectorColumns+` FROM sectors WHERE id = $1`, id)
	s, err := scanSector(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sector: %w", err)
	}
	return s, nil
}

// List devuelve los sectores por ID.
func (r *SectorRepo) List(ctx context.Context) ([]*entity.Sector, error) {
	rows, err := r.q.Query(ctx, `SELECT `+sectorColumns+` FROM sectors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Sector, 0)
	for rows.Next() {
		s, err := scanSector(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sector: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSector(row pgx.Row) (*entity.Sector, error) {
	var s entity.Sector
	if err := row.Scan(&s.ID, &s.Name, &s.TaxID, &s.CostCenterCode, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
