// migrate aplica las migraciones SQL de migrations/ sobre la base configurada.
//
// Uso: go run ./cmd/migrate [-dir migrations] [up|down|drop|version]
package main

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/jhoicas/venue-api/pkg/config"
	"github.com/jhoicas/venue-api/pkg/logger"
)

func main() {
	migrationsDir := flag.String("dir", "migrations", "directorio con los archivos de migración")
	flag.Parse()

	action := "up"
	if flag.NArg() > 0 {
		action = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	version, dirty, err := runMigration(action, *migrationsDir, cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Str("action", action).Msg("migración fallida")
	}
	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg("migración completada")
}

func runMigration(action, dir, dsn string) (uint, bool, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return 0, false, fmt.Errorf("resolver ruta %s: %w", dir, err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(absDir), dsn)
	if err != nil {
		return 0, false, fmt.Errorf("crear instancia de migrate: %w", err)
	}
	defer m.Close()

	switch action {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "drop":
		err = m.Drop()
	case "version":
	default:
		return 0, false, fmt.Errorf("acción no soportada %q", action)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, false, err
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}
