package database

import (
	"fmt"

	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

// ConnectionError reports that no connection could be obtained.
// It matches utils.ErrConnection and the underlying driver error.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database connection: %v", e.Err)
}

func (e *ConnectionError) Unwrap() []error {
	return []error{utils.ErrConnection, e.Err}
}

// QueryError wraps a driver error raised while running a statement.
// It matches utils.ErrQuery and the driver error, so constraint violations
// can still be recognised with errors.As.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("database %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() []error {
	return []error{utils.ErrQuery, e.Err}
}
