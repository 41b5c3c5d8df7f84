// Package migrations provides a framework for database schema management.
//
// Migrations are idempotent: executed migrations are tracked in the
// migrations table, and a migration whose table already exists is recorded
// without running its SQL. Every statement has a MySQL and a PostgreSQL form.
package migrations

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/travelguide/internal/constants"
	"github.com/yasinhessnawi1/travelguide/internal/database"
)

// Migration represents a database migration.
// Each migration performs a specific schema change and is tracked
// to ensure it runs exactly once.
type Migration struct {
	// Name is a unique identifier for the migration
	Name string
	// Description is a human-readable explanation of what the migration does
	Description string
	// TableName is the table affected by this migration, used for existence checks
	TableName string
	// MySQL and Postgres hold the dialect specific DDL
	MySQL    string
	Postgres string
}

// SQL returns the statement for the given dialect.
func (m Migration) SQL(postgres bool) string {
	if postgres {
		return m.Postgres
	}
	return m.MySQL
}

// Migrator handles database migrations.
type Migrator struct {
	db *database.Pool
}

// NewMigrator creates a new migrator.
func NewMigrator(db *database.Pool) *Migrator {
	return &Migrator{
		db: db,
	}
}

// RunMigrations runs all pending database migrations in order. It is safe
// to run on every start.
func (m *Migrator) RunMigrations(ctx context.Context) error {
	log.Info().Str("driver", m.db.DriverName()).Msg("Running database migrations")
	startTime := time.Now()

	if err := m.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	executed, err := m.getExecutedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}

	migrationsRun, recorded := 0, 0
	for _, migration := range GetMigrations() {
		if executed[migration.Name] {
			continue
		}

		exists, err := m.tableExists(ctx, migration.TableName)
		if err != nil {
			return fmt.Errorf("failed to check if table %s exists: %w", migration.TableName, err)
		}

		if exists {
			log.Info().
				Str("migration", migration.Name).
				Str("table", migration.TableName).
				Msg("Table already exists, recording migration as completed")
			if err := m.recordMigration(ctx, m.db, migration); err != nil {
				return err
			}
			recorded++
			continue
		}

		log.Info().
			Str("migration", migration.Name).
			Str("table", migration.TableName).
			Msg("Running migration")
		if err := m.runMigration(ctx, migration); err != nil {
			return err
		}
		migrationsRun++
	}

	log.Info().
		Int("migrations_run", migrationsRun).
		Int("migrations_recorded", recorded).
		Int("total_migrations", len(GetMigrations())).
		Dur("duration", time.Since(startTime)).
		Msg("Database migrations completed")

	return nil
}

// createMigrationsTable creates the bookkeeping table if it doesn't exist.
func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, migrationsTableSQL(m.db.IsPostgres()))
	return err
}

// getExecutedMigrations returns the names of executed migrations.
func (m *Migrator) getExecutedMigrations(ctx context.Context) (map[string]bool, error) {
	var names []string
	if err := m.db.SelectContext(ctx, &names, "SELECT name FROM "+constants.TableMigrations); err != nil {
		return nil, err
	}

	executed := make(map[string]bool, len(names))
	for _, name := range names {
		executed[name] = true
	}
	return executed, nil
}

// runMigration runs a migration and records it within one transaction.
// MySQL commits DDL implicitly, so the record is what makes a rerun skip it.
func (m *Migrator) runMigration(ctx context.Context, migration Migration) error {
	return m.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, migration.SQL(m.db.IsPostgres())); err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.Name, err)
		}
		return m.recordMigration(ctx, tx, migration)
	})
}

// recordMigration records a migration as completed.
func (m *Migrator) recordMigration(ctx context.Context, exec sqlx.ExecerContext, migration Migration) error {
	query := m.db.Rebind("INSERT INTO " + constants.TableMigrations + " (name, description) VALUES (?, ?)")
	if _, err := exec.ExecContext(ctx, query, migration.Name, migration.Description); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", migration.Name, err)
	}
	return nil
}

// tableExists checks if a table exists in the current database schema.
func (m *Migrator) tableExists(ctx context.Context, tableName string) (bool, error) {
	schema := "DATABASE()"
	if m.db.IsPostgres() {
		schema = "current_schema()"
	}
	query := m.db.Rebind(`SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = ` + schema + ` AND table_name = ?`)

	var count int
	if err := m.db.GetContext(ctx, &count, query, tableName); err != nil {
		return false, err
	}
	return count > 0, nil
}
