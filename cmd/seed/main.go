// seed carga el conjunto de datos de demostración en PostgreSQL.
//
// Uso: go run ./cmd/seed
// Aplica las migraciones pendientes y escribe todo en una sola transacción;
// si ya existen sectores no hace nada.
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"github.com/jhoicas/ephone-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ephone-api/internal/infrastructure/seed"
	"github.com/jhoicas/ephone-api/pkg/config"
	"github.com/jhoicas/ephone-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	var loaded bool
	err = postgres.NewTxRunner(pool).Run(ctx, func(r postgres.Repos) error {
		var serr error
		loaded, serr = seed.Demo(ctx, seed.Target{
			Sectors: r.Sectors, Extensions: r.Extensions, SimCards: r.SimCards,
			Users: r.Users, Settings: r.Settings,
		})
		return serr
	})
	if err != nil {
		log.Fatal().Err(err).Msg("cargar datos de demostración")
	}
	if !loaded {
		log.Info().Msg("la base ya tiene sectores, no se cargó nada")
		return
	}
	log.Info().Str("password", seed.DemoPassword).Msg("datos de demostración cargados")
}
