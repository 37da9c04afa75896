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

var _ repository.SimCardRepository = (*SimCardRepo)(nil)

// SimCardRepo implementación de SimCardRepository (usable con pool o tx).
type SimCardRepo struct {
	q Querier
}

// NewSimCardRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSimCardRepository(q Querier) *SimCardRepo {
	return &SimCardRepo{q: q}
}

const simCardColumns = `id, number, carrier, sector_id, status, monthly_cost, created_at, updated_at`

func (r *SimCardRepo) Create(ctx context.Context, s *entity.SimCard) error {
	query := `
		INSERT INTO sim_cards (number, carrier, sector_id, status, monthly_cost)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, s.Number, s.Carrier, s.SectorID, string(s.Status), s.MonthlyCost).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert sim card: %w", err)
	}
	return nil
}

func (r *SimCardRepo) Update(ctx context.Context, s *entity.SimCard) error {
	query := `
		UPDATE sim_cards
		SET number = $2, carrier = $3, sector_id = $4, status = $5, monthly_cost = $6, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query, s.ID, s.Number, s.Carrier, s.SectorID, string(s.Status), s.MonthlyCost).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update sim card: %w", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *SimCardRepo) GetByID(ctx context.Context, id int64) (*entity.SimCard, error) {
	row := r.q.QueryRow(ctx, `SELECT `+simCardColumns+` FROM sim_cards WHERE id = $1`, id)
	s, err := scanSimCard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sim card: %w", err)
	}
	return s, nil
}

func (r *SimCardRepo) List(ctx context.Context) ([]*entity.SimCard, error) {
	return r.list(ctx, `SELECT `+simCardColumns+` FROM sim_cards ORDER BY id`)
}

func (r *SimCardRepo) ListBySector(ctx context.Context, sectorID int64) ([]*entity.SimCard, error) {
	return r.list(ctx, `SELECT `+simCardColumns+` FROM sim_cards WHERE sector_id = $1 ORDER BY id`, sectorID)
}

func (r *SimCardRepo) list(ctx context.Context, query string, args ...any) ([]*entity.SimCard, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sim cards: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.SimCard, 0)
	for rows.Next() {
		s, err := scanSimCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sim card: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSimCard(row pgx.Row) (*entity.SimCard, error) {
	var (
		s      entity.SimCard
		status string
	)
	if err := row.Scan(&s.ID, &s.Number, &s.Carrier, &s.SectorID, &status, &s.MonthlyCost, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Status = entity.SimCardStatus(status)
	return &s, nil
}
