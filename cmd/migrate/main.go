// migrate aplica o revierte las migraciones embebidas del esquema de pedidos.
//
// Uso: go run ./cmd/migrate [up|down|version]
// Por defecto ejecuta "up". Lee la conexión de las mismas variables que la API (DATABASE_URL o DB_*).
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/Pedidos-api/internal/infrastructure/migration"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Pedidos-api/migrations"
	"github.com/jhoicas/Pedidos-api/pkg/config"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "pedidos-migrate"})

	if err := run(cmd, cfg.DB, log); err != nil {
		log.Error().Err(err).Str("cmd", cmd).Msg("migración fallida")
		os.Exit(1)
	}
}

func run(cmd string, db config.DBConfig, log *logger.Logger) error {
	url, err := postgres.MigrationURL(db)
	if err != nil {
		return err
	}
	m, err := migration.New(migrations.FS, url, log)
	if err != nil {
		return err
	}
	defer m.Close()

	switch cmd {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Printf("versión %d (dirty=%t)\n", version, dirty)
		return nil
	default:
		return fmt.Errorf("comando desconocido %q: use up, down o version", cmd)
	}
}
