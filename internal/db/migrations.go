package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/goran-ethernal/ChainPaywall/internal/logger"
	migrate "github.com/rubenv/sql-migrate"
)

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

// Migration is a schema change whose SQL holds a Down section followed by an Up section.
type Migration struct {
	ID  string
	SQL string
}

// RunMigrations applies every pending migration.
func RunMigrations(log *logger.Logger, db *sql.DB, migrations []Migration) error {
	return execMigrations(log, db, migrations, migrate.Up, 0)
}

// RollbackMigrations reverts at most steps applied migrations, all of them when steps is 0.
func RollbackMigrations(log *logger.Logger, db *sql.DB, migrations []Migration, steps int) error {
	return execMigrations(log, db, migrations, migrate.Down, steps)
}

func execMigrations(
	log *logger.Logger,
	db *sql.DB,
	migrations []Migration,
	dir migrate.MigrationDirection,
	steps int,
) error {
	source, err := memorySource(migrations)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(source.Migrations))
	for _, m := range source.Migrations {
		ids = append(ids, m.Id)
	}

	n, err := migrate.ExecMax(db, "sqlite3", source, dir, steps)
	if err != nil {
		return fmt.Errorf("error executing migrations [%s]: %w", strings.Join(ids, ", "), err)
	}

	log.Infof("applied %d migrations (direction %d) from [%s]", n, dir, strings.Join(ids, ", "))
	return nil
}

func memorySource(migrations []Migration) (*migrate.MemoryMigrationSource, error) {
	source := &migrate.MemoryMigrationSource{Migrations: make([]*migrate.Migration, 0, len(migrations))}

	for _, m := range migrations {
		down, up, found := strings.Cut(m.SQL, upMarker)
		if !found {
			return nil, fmt.Errorf("migration %s missing '%s' separator", m.ID, upMarker)
		}

		if _, afterMarker, ok := strings.Cut(down, downMarker); ok {
			down = afterMarker
		}

		source.Migrations = append(source.Migrations, &migrate.Migration{
			Id:   m.ID,
			Up:   []string{strings.TrimSpace(up)},
			Down: []string{strings.TrimSpace(down)},
		})
	}

	return source, nil
}
