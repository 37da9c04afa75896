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

var _ repository.ExtensionRepository = (*ExtensionRepo)(nil)

// ExtensionRepo implementación de ExtensionRepository (usable con pool o tx).
type ExtensionRepo struct {
	q Querier
}

// NewExtensionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExtensionRepository(q Querier) *ExtensionRepo {
	return &ExtensionRepo{q: q}
}

const extensionColumns = `id, number, kind, physical_location, contact_email, sector_id, status, monthly_cost, created_at, updated_at`

func (r *ExtensionRepo) Create(ctx context.Context, e *entity.Extension) error {
	query := `
		INSERT INTO extensions (number, kind, physical_location, contact_email, sector_id, status, monthly_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		e.Number, string(e.Kind), nullIfEmpty(e.PhysicalLocation), nullIfEmpty(e.ContactEmail),
		e.SectorID, string(e.Status), e.MonthlyCost,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert extension: %w", err)
	}
	return nil
}

func (r *ExtensionRepo) Update(ctx context.Context, e *entity.Extension) error {
	query := `
		UPDATE extensions
		SET number = $2, kind = $3, physical_location = $4, contact_email = $5,
		    sector_id = $6, status = $7, monthly_cost = $8, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		e.ID, e.Number, string(e.Kind), nullIfEmpty(e.PhysicalLocation), nullIfEmpty(e.ContactEmail),
		e.SectorID, string(e.Status), e.MonthlyCost,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update extension: %w", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ExtensionRepo) GetByID(ctx context.Context, id int64) (*entity.Extension, error) {
	row := r.q.QueryRow(ctx, `SELECT `+extensionColumns+` FROM extensions WHERE id = $1`, id)
	e, err := scanExtension(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get extension: %w", err)
	}
	return e, nil
}

func (r *ExtensionRepo) List(ctx context.Context) ([]*entity.Extension, error) {
	return r.list(ctx, `SELECT `+extensionColumns+` FROM extensions ORDER BY id`)
}

func (r *ExtensionRepo) ListBySector(ctx context.Context, sectorID int64) ([]*entity.Extension, error) {
	return r.list(ctx, `SELECT `+extensionColumns+` FROM extensions WHERE sector_id = $1 ORDER BY id`, sectorID)
}

func (r *ExtensionRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Extension, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list extensions: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Extension, 0)
	for rows.Next() {
		e, err := scanExtension(rows)
		if err != nil {
			return nil, fmt.Errorf("scan extension: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanExtension(row pgx.Row) (*entity.Extension, error) {
	var (
		e                 entity.Extension
		kind, status      string
		location, contact *string
	)
	err := row.Scan(&e.ID, &e.Number, &kind, &location, &contact, &e.SectorID, &status, &e.MonthlyCost, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Kind = entity.ExtensionKind(kind)
	e.Status = entity.ExtensionStatus(status)
	e.PhysicalLocation = derefString(location)
	e.ContactEmail = derefString(contact)
	return &e, nil
}
