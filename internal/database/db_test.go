package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

func newMockPool(t *testing.T, driver string, monitorPings ...bool) (*Pool, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual),
		sqlmock.MonitorPingsOption(len(monitorPings) > 0 && monitorPings[0]),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPool(sqlx.NewDb(db, driver)), mock
}

func TestNilConnectionHandling(t *testing.T) {
	t.Run("Close with nil DB pointer", func(t *testing.T) {
		pool := &Pool{DB: nil}
		pool.Close()
	})

	t.Run("Close with nil pool", func(t *testing.T) {
		var pool *Pool
		pool.Close()
	})

	t.Run("Release nil connection", func(t *testing.T) {
		pool, _ := newMockPool(t, "mysql")
		pool.Release(nil)
	})
}

func TestClose(t *testing.T) {
	pool, mock := newMockPool(t, "mysql")
	mock.ExpectClose()

	pool.Close()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPool_AcquireRelease(t *testing.T) {
	pool, _ := newMockPool(t, "mysql")
	ctx := context.Background()

	conn, err := pool.Acquire(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pool.Stats().InUse)

	pool.Release(conn)
	assert.Equal(t, 0, pool.Stats().InUse)
	assert.Equal(t, 1, pool.Stats().Idle)

	// Releasing twice is harmless
	pool.Release(conn)
	assert.Equal(t, 0, pool.Stats().InUse)
}

func TestPool_AcquireFailure(t *testing.T) {
	t.Run("Cancelled context", func(t *testing.T) {
		pool, _ := newMockPool(t, "mysql")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		conn, err := pool.Acquire(ctx)

		assert.Nil(t, conn)
		var connErr *ConnectionError
		require.ErrorAs(t, err, &connErr)
		assert.ErrorIs(t, err, utils.ErrConnection)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, pool.Stats().InUse)
	})

	t.Run("Closed pool", func(t *testing.T) {
		pool, mock := newMockPool(t, "mysql")
		mock.ExpectClose()
		pool.Close()

		_, err := pool.Acquire(context.Background())

		assert.ErrorIs(t, err, utils.ErrConnection)
		assert.Equal(t, 500, utils.StatusCode(utils.ParseError(err)))
	})
}

func TestPool_IsPostgres(t *testing.T) {
	mysqlPool, _ := newMockPool(t, "mysql")
	pgPool, _ := newMockPool(t, "postgres")

	assert.False(t, mysqlPool.IsPostgres())
	assert.True(t, pgPool.IsPostgres())
	assert.Equal(t, "SELECT * FROM cities WHERE id = $1", pgPool.Rebind("SELECT * FROM cities WHERE id = ?"))
}

func TestPool_PingIdle(t *testing.T) {
	pool, mock := newMockPool(t, "mysql", true)
	ctx := context.Background()

	conn, err := pool.Acquire(ctx)
	require.NoError(t, err)
	pool.Release(conn)
	require.Equal(t, 1, pool.Stats().Idle)

	mock.ExpectPing()
	pool.pingIdle(ctx)

	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, 0, pool.Stats().InUse)
}

func TestPool_PingConnectionsNeverHoldsWhileWaiting(t *testing.T) {
	pool, _ := newMockPool(t, "mysql")
	pool.SetMaxOpenConns(2)
	ctx := context.Background()

	first, err := pool.Acquire(ctx)
	require.NoError(t, err)
	second, err := pool.Acquire(ctx)
	require.NoError(t, err)
	pool.Release(second)

	// A request keeps one connection busy while keep-alive expects two idle ones.
	done := make(chan struct{})
	go func() {
		pool.pingConnections(ctx, 2)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("keep-alive blocked waiting for a busy connection")
	}
	assert.Equal(t, 1, pool.Stats().InUse)

	pool.Release(first)
	assert.Equal(t, 0, pool.Stats().InUse)
}

func TestPool_PingConnectionsStopsWithoutIdle(t *testing.T) {
	pool, _ := newMockPool(t, "mysql")
	pool.SetMaxOpenConns(1)
	ctx := context.Background()

	conn, err := pool.Acquire(ctx)
	require.NoError(t, err)
	defer pool.Release(conn)

	start := time.Now()
	pool.pingConnections(ctx, 3)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 1, pool.Stats().InUse)
}

func TestPool_StartKeepAliveStops(t *testing.T) {
	pool, _ := newMockPool(t, "mysql")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Returns immediately once the context is done
	pool.StartKeepAlive(ctx, 1)
}

func TestTransaction(t *testing.T) {
	t.Run("Commit on success", func(t *testing.T) {
		pool, mock := newMockPool(t, "mysql")
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM seeds").WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := pool.Transaction(context.Background(), func(tx *sqlx.Tx) error {
			_, err := tx.Exec("DELETE FROM seeds")
			return err
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback on error", func(t *testing.T) {
		pool, mock := newMockPool(t, "mysql")
		mock.ExpectBegin()
		mock.ExpectRollback()
		boom := errors.New("boom")

		err := pool.Transaction(context.Background(), func(tx *sqlx.Tx) error {
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback and re-panic", func(t *testing.T) {
		pool, mock := newMockPool(t, "mysql")
		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.Panics(t, func() {
			_ = pool.Transaction(context.Background(), func(tx *sqlx.Tx) error {
				panic("unexpected")
			})
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestHealthCheck(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		pool, mock := newMockPool(t, "mysql")
		mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

		assert.NoError(t, pool.HealthCheck(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Query fails", func(t *testing.T) {
		pool, mock := newMockPool(t, "mysql")
		mock.ExpectQuery("SELECT 1").WillReturnError(errors.New("gone away"))

		err := pool.HealthCheck(context.Background())

		assert.ErrorIs(t, err, utils.ErrQuery)
	})
}
