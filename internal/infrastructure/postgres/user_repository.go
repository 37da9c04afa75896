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

var _ repository.UserRepository = (*UserRepo)(nil)

// Beginner es un Querier que además abre transacciones (pool, o tx para savepoints).
type Beginner interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// Los sectores de un usuario viven en user_sectors y se reescriben en la misma transacción.
type UserRepo struct {
	db Beginner
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db Beginner) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `u.id, u.email, u.password_hash, u.display_name, u.role, u.created_at, u.updated_at,
	COALESCE(ARRAY(SELECT us.sector_id FROM user_sectors us WHERE us.user_id = u.id ORDER BY us.sector_id), '{}')`

// Create persiste un nuevo usuario. domain.ErrEmailAlreadyExists si el email ya existe.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO users (email, password_hash, display_name, role)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, query, user.Email, user.PasswordHash, user.DisplayName, user.Role).
			Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return err
		}
		return replaceUserSectors(ctx, tx, user.ID, user.SectorIDs)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Update reescribe los datos y los sectores del usuario.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE users SET email = $2, password_hash = $3, display_name = $4, role = $5, updated_at = now()
			WHERE id = $1
			RETURNING created_at, updated_at`
		if err := tx.QueryRow(ctx, query, user.ID, user.Email, user.PasswordHash, user.DisplayName, user.Role).
			Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
			return err
		}
		return replaceUserSectors(ctx, tx, user.ID, user.SectorIDs)
	})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return domain.ErrNotFound
		case isUniqueViolation(err):
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id)
}

// FindByEmail busca sin distinguir mayúsculas. (nil, nil) si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users u WHERE lower(u.email) = lower($1)`, email)
}

// List devuelve los usuarios por ID.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users u ORDER BY u.id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepo) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.Role, &u.CreatedAt, &u.UpdatedAt, &u.SectorIDs); err != nil {
		return nil, err
	}
	if len(u.SectorIDs) == 0 {
		u.SectorIDs = nil
	}
	return &u, nil
}

func replaceUserSectors(ctx context.Context, tx pgx.Tx, userID int64, sectorIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM user_sectors WHERE user_id = $1`, userID); err != nil {
		return err
	}
	if len(sectorIDs) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx,
		`INSERT INTO user_sectors (user_id, sector_id) SELECT $1, unnest($2::bigint[]) ON CONFLICT DO NOTHING`,
		userID, sectorIDs)
	return err
}
