package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Sectors    *SectorRepo
	Extensions *ExtensionRepo
	SimCards   *SimCardRepo
	Ledger     *InvoiceLedger
	Users      *UserRepo
	Settings   *SettingsRepo
}

// NewRepos construye los repositorios sobre pool o tx.
func NewRepos(db Beginner) Repos {
	return Repos{
		Sectors:    NewSectorRepository(db),
		Extensions: NewExtensionRepository(db),
		SimCards:   NewSimCardRepository(db),
		Ledger:     NewInvoiceLedger(db),
		Users:      NewUserRepository(db),
		Settings:   NewSettingsRepository(db),
	}
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

var _ Beginner = (pgx.Tx)(nil)
