// internal/database/db.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // Import MySQL driver
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // Import PostgreSQL driver
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/travelguide/internal/config"
	"github.com/yasinhessnawi1/travelguide/internal/constants"
)

// Pool is the connection pool manager. It bounds the number of open
// connections and hands them out one query at a time. Callers beyond the
// bound wait in database/sql's queue until a connection is released or
// their context ends.
type Pool struct {
	*sqlx.DB
}

// NewPool wraps an already opened handle. The driver name decides the
// placeholder style and the insert strategy.
func NewPool(db *sqlx.DB) *Pool {
	return &Pool{DB: db}
}

// Connect creates a new database connection pool
func Connect(ctx context.Context, cfg *config.AppConfig) (*Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBConnectionTimeout)
	defer cancel()

	dbCfg := cfg.Database
	log.Info().
		Str("driver", dbCfg.Driver).
		Str("host", dbCfg.Host).
		Int("port", dbCfg.Port).
		Str("database", dbCfg.Name).
		Msg("Connecting to database")

	if dbCfg.AutoCreate {
		if err := ensureDatabase(ctx, dbCfg); err != nil {
			return nil, &ConnectionError{Err: err}
		}
	}

	db, err := sqlx.Open(dbCfg.Driver, dbCfg.ConnectionString())
	if err != nil {
		return nil, &ConnectionError{Err: fmt.Errorf("failed to open database: %w", err)}
	}

	// Configure connection pool
	db.SetMaxOpenConns(dbCfg.MaxConns)
	db.SetMaxIdleConns(dbCfg.MinConns)
	db.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(constants.DBConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &ConnectionError{Err: fmt.Errorf("failed to ping database: %w", err)}
	}

	log.Info().Int("max_conns", dbCfg.MaxConns).Msg("Successfully connected to database")

	return NewPool(db), nil
}

// ensureDatabase creates the configured database when it is missing.
func ensureDatabase(ctx context.Context, dbCfg config.DatabaseSettings) error {
	rootCfg := dbCfg
	if dbCfg.IsPostgres() {
		rootCfg.Name = "postgres"
	} else {
		rootCfg.Name = ""
	}

	rootDB, err := sqlx.Open(dbCfg.Driver, rootCfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer rootDB.Close()

	if dbCfg.IsPostgres() {
		var exists bool
		err := rootDB.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbCfg.Name)
		if err != nil {
			return fmt.Errorf("failed to look up database: %w", err)
		}
		if !exists {
			if _, err := rootDB.ExecContext(ctx, fmt.Sprintf(`CREATE DATABASE "%s"`, dbCfg.Name)); err != nil {
				return fmt.Errorf("failed to create database: %w", err)
			}
		}
	} else {
		if _, err := rootDB.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", dbCfg.Name)); err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
	}

	log.Info().Msgf("Ensured database '%s' exists", dbCfg.Name)
	return nil
}

// IsPostgres reports whether the pool talks to PostgreSQL.
func (p *Pool) IsPostgres() bool {
	return p.DriverName() == constants.DriverPostgres
}

// Acquire takes a dedicated connection from the pool, waiting while all
// connections are busy. It fails with a ConnectionError when the database
// cannot be reached or ctx ends first. Every acquired connection must be
// handed back with Release exactly once.
func (p *Pool) Acquire(ctx context.Context) (*sqlx.Conn, error) {
	conn, err := p.Connx(ctx)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	return conn, nil
}

// Release returns a connection to the pool.
func (p *Pool) Release(conn *sqlx.Conn) {
	if conn == nil {
		return
	}
	if err := conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		log.Warn().Err(err).Msg("Failed to release database connection")
	}
}

// StartKeepAlive pings the idle connections every interval until ctx is cancelled.
func (p *Pool) StartKeepAlive(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.pingIdle(ctx)
		}
	}
}

// pingIdle pings as many connections as are idle, one at a time.
func (p *Pool) pingIdle(ctx context.Context) {
	p.pingConnections(ctx, p.Stats().Idle)
}

// pingConnections pings up to n connections. Each connection is released
// before the next is taken, and the loop stops as soon as none is idle, so
// keep-alive never holds a connection while waiting for another.
func (p *Pool) pingConnections(ctx context.Context, n int) {
	pinged := 0
	for i := 0; i < n; i++ {
		if ctx.Err() != nil || p.Stats().Idle == 0 {
			break
		}
		if err := p.pingOne(ctx); err != nil {
			log.Warn().Err(err).Msg("Keep-alive ping failed")
			continue
		}
		pinged++
	}

	if pinged > 0 {
		log.Debug().Int("pinged", pinged).Msg("Keep-alive completed")
	}
}

func (p *Pool) pingOne(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBHealthCheckTimeout)
	defer cancel()

	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer p.Release(conn)

	return conn.PingContext(ctx)
}

// Close closes the database connection pool
func (p *Pool) Close() {
	if p != nil && p.DB != nil {
		log.Info().Msg("Closing database connection pool")
		if err := p.DB.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database connection pool")
		}
	}
}

// Transaction executes a function within a transaction
func (p *Pool) Transaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := p.BeginTxx(ctx, nil)
	if err != nil {
		return &ConnectionError{Err: fmt.Errorf("failed to begin transaction: %w", err)}
	}

	// Handle panics to ensure proper rollback
	defer func() {
		if r := recover(); r != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("Failed to rollback transaction after panic")
			}
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("failed to rollback transaction: %w", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return &QueryError{Op: "commit", Err: err}
	}

	return nil
}

// HealthCheck performs a health check on the database connection
func (p *Pool) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBHealthCheckTimeout)
	defer cancel()

	if err := p.PingContext(ctx); err != nil {
		return &ConnectionError{Err: fmt.Errorf("database health check failed: %w", err)}
	}

	// Run a simple query to verify database functionality
	var result int
	if err := p.QueryRowxContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return &QueryError{Op: "health check", Err: err}
	}

	if result != 1 {
		return fmt.Errorf("database returned unexpected result: %d", result)
	}

	return nil
}
