package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/homedash/homedash-services/internal/appconfig"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// DashboardDB owns the shared database connection. All persistence access
// is serialized through it; transactions are the only concurrency control.
type DashboardDB struct {
	DB     *sql.DB
	Driver string
	Log    *zerolog.Logger
}

// NewDashboardDB opens the configured database and verifies connectivity.
func NewDashboardDB(cfg appconfig.DatabaseConfig, log *zerolog.Logger) (*DashboardDB, error) {
	if cfg.Source == "" {
		log.Error().Msg("database source is not configured")
		return nil, fmt.Errorf("database source is not configured")
	}

	db, err := sql.Open(cfg.Driver, cfg.Source)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open database connection")
		return nil, err
	}

	// Check we are actually connected
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("Database connection failed during ping")
		return nil, err
	}

	// SQLite does not enforce foreign keys unless asked
	if cfg.Driver == "sqlite3" {
		if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
			log.Error().Err(err).Msg("Failed to enable sqlite foreign keys")
			return nil, err
		}
	}

	return &DashboardDB{
		DB:     db,
		Driver: cfg.Driver,
		Log:    log,
	}, nil
}

func (d *DashboardDB) Close() error {
	if err := d.DB.Close(); err != nil {
		return err
	}
	d.Log.Info().Msg("database connection closed")
	return nil
}

// Migrate runs the embedded goose migrations for the active dialect.
func (d *DashboardDB) Migrate() error {
	dialect := "postgres"
	dir := "migrations/postgres"
	if d.Driver == "sqlite3" {
		dialect = "sqlite3"
		dir = "migrations/sqlite"
	}

	sub, err := fs.Sub(migrations, dir)
	if err != nil {
		return fmt.Errorf("error locating migrations: %w", err)
	}

	goose.SetBaseFS(sub)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("error setting goose dialect: %w", err)
	}

	if err := goose.Up(d.DB, "."); err != nil {
		return fmt.Errorf("error running migrations: %w", err)
	}

	d.Log.Info().Str("dialect", dialect).Msg("migrations applied")
	return nil
}

func (d *DashboardDB) execQuery(tx *sql.Tx, query string, args ...interface{}) error {
	if d.DB == nil {
		return fmt.Errorf("database connection is not established")
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	return nil
}
