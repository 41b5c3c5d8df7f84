package database

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

// Row is one result row keyed by column name.
type Row map[string]interface{}

// Request is a single parameterized statement. SQL is written with ?
// placeholders and rebound to the driver's style before execution.
type Request struct {
	SQL    string
	Params []interface{}
}

// NewRequest builds a Request. A single scalar argument becomes a
// one-element parameter list.
func NewRequest(query string, params ...interface{}) Request {
	if params == nil {
		params = []interface{}{}
	}
	return Request{SQL: query, Params: params}
}

// Result holds what a statement produced. Rows is set for statements that
// return rows, LastInsertID for inserts and RowsAffected for writes.
type Result struct {
	Columns      []string
	Rows         []Row
	LastInsertID int64
	RowsAffected int64
}

// QueryObserver is notified after every statement.
type QueryObserver func(kind string, duration time.Duration, err error)

// Executor runs requests on connections borrowed from a Pool.
type Executor struct {
	pool     *Pool
	observer QueryObserver
}

// NewExecutor creates an executor over pool.
func NewExecutor(pool *Pool) *Executor {
	return &Executor{pool: pool}
}

// SetObserver installs a callback used for metrics.
func (e *Executor) SetObserver(observer QueryObserver) {
	e.observer = observer
}

// Pool returns the underlying pool.
func (e *Executor) Pool() *Pool {
	return e.pool
}

// Query is shorthand for Run(ctx, NewRequest(query, params...)).
func (e *Executor) Query(ctx context.Context, query string, params ...interface{}) (*Result, error) {
	return e.Run(ctx, NewRequest(query, params...))
}

// Run executes req on a freshly acquired connection. The connection is
// released on every path before Run returns. Driver failures come back as
// *QueryError and are never retried.
func (e *Executor) Run(ctx context.Context, req Request) (res *Result, err error) {
	conn, err := e.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer e.pool.Release(conn)

	query := e.pool.Rebind(req.SQL)
	kind := statementKind(query)
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		utils.LogDBQuery(query, len(req.Params), elapsed, err)
		if e.observer != nil {
			e.observer(kind, elapsed, err)
		}
	}()

	if returnsRows(kind, query) {
		res, err = e.queryRows(ctx, conn, query, req.Params)
		if err != nil {
			return nil, err
		}
		if kind == kindInsert && len(res.Rows) > 0 {
			if id, ok := utils.ToInt64(res.Rows[0]["id"]); ok {
				res.LastInsertID = id
			}
			res.RowsAffected = int64(len(res.Rows))
		}
		return res, nil
	}

	sqlRes, err := conn.ExecContext(ctx, query, req.Params...)
	if err != nil {
		return nil, &QueryError{Op: kind, Err: err}
	}

	res = &Result{}
	if kind == kindInsert {
		// PostgreSQL does not support LastInsertId; inserts there use RETURNING
		if id, idErr := sqlRes.LastInsertId(); idErr == nil {
			res.LastInsertID = id
		}
	}
	if n, affErr := sqlRes.RowsAffected(); affErr == nil {
		res.RowsAffected = n
	}
	return res, nil
}

func (e *Executor) queryRows(ctx context.Context, conn *sqlx.Conn, query string, params []interface{}) (*Result, error) {
	rows, err := conn.QueryxContext(ctx, query, params...)
	if err != nil {
		return nil, &QueryError{Op: "query", Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, &QueryError{Op: "columns", Err: err}
	}

	res := &Result{Columns: columns, Rows: []Row{}}
	for rows.Next() {
		row := make(map[string]interface{}, len(columns))
		if err := rows.MapScan(row); err != nil {
			return nil, &QueryError{Op: "scan", Err: err}
		}
		res.Rows = append(res.Rows, normalizeRow(row))
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Op: "query", Err: err}
	}
	return res, nil
}

// normalizeRow converts driver byte slices to strings so rows encode as JSON text.
func normalizeRow(row map[string]interface{}) Row {
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
		}
	}
	return Row(row)
}

const (
	kindSelect = "select"
	kindInsert = "insert"
	kindUpdate = "update"
	kindDelete = "delete"
	kindOther  = "exec"
)

func statementKind(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return kindOther
	}
	switch strings.ToLower(fields[0]) {
	case "select", "with", "show":
		return kindSelect
	case "insert":
		return kindInsert
	case "update":
		return kindUpdate
	case "delete":
		return kindDelete
	}
	return kindOther
}

func returnsRows(kind, query string) bool {
	return kind == kindSelect || strings.Contains(strings.ToUpper(query), " RETURNING ")
}
