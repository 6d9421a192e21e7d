// Package migration applies the SQL files under migrations/ to Postgres.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// Runner applies the migration files in a directory to a Postgres database.
// Server startup goes through Auto; the -migrate flag on cmd/server exposes
// the individual commands to operators through Run.
type Runner struct {
	dbURL  string
	dir    string
	logger *slog.Logger
}

func NewRunner(dbURL, dir string, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return &Runner{dbURL: dbURL, dir: dir, logger: logger}
}

// Auto is the startup path: refuse to touch a dirty database, then apply
// whatever is pending.
func (r *Runner) Auto() error {
	before, dirty, err := r.Version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("database is dirty at migration version %d, repair it and clear with -migrate force=<version>", before)
	}

	if err := r.Up(); err != nil {
		return err
	}

	after, _, err := r.Version()
	if err != nil {
		return err
	}
	r.logger.Info("migrations applied", "from_version", before, "to_version", after)
	return nil
}

// Run dispatches an operator command from the -migrate flag.
func (r *Runner) Run(command string) error {
	switch {
	case command == "up":
		return r.Up()
	case command == "down":
		return r.Down()
	case command == "version":
		version, dirty, err := r.Version()
		if err != nil {
			return err
		}
		r.logger.Info("migration version", "version", version, "dirty", dirty)
		return nil
	case strings.HasPrefix(command, "force="):
		version, err := strconv.Atoi(strings.TrimPrefix(command, "force="))
		if err != nil {
			return fmt.Errorf("bad force version in %q: %w", command, err)
		}
		return r.Force(version)
	default:
		return fmt.Errorf("unknown migration command %q (want up, down, version or force=<n>)", command)
	}
}

// Up applies every pending migration.
func (r *Runner) Up() error {
	m, err := r.open()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); errors.Is(err, migrate.ErrNoChange) {
		r.logger.Info("schema already up to date")
		return nil
	} else if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	r.logger.Info("schema migrated")
	return nil
}

// Down rolls back the most recent migration only.
func (r *Runner) Down() error {
	m, err := r.open()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-1); errors.Is(err, migrate.ErrNoChange) {
		r.logger.Info("nothing to roll back")
		return nil
	} else if err != nil {
		return fmt.Errorf("roll back migration: %w", err)
	}
	r.logger.Info("rolled back one migration")
	return nil
}

// Force overwrites the recorded version without running any SQL. It exists
// to clear the dirty flag once a failed migration has been repaired by hand.
func (r *Runner) Force(version int) error {
	m, err := r.open()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	r.logger.Warn("migration version forced", "version", version)
	return nil
}

// Version reports the current schema version. A database that has never
// been migrated reports version 0.
func (r *Runner) Version() (uint, bool, error) {
	m, err := r.open()
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read migration version: %w", err)
	}
	return version, dirty, nil
}

func (r *Runner) open() (*migrate.Migrate, error) {
	db, err := sql.Open("postgres", r.dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+r.dir, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("init migrate: %w", err)
	}
	return m, nil
}
