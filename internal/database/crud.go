package database

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/travelguide/internal/constants"
	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

// Store is the table-agnostic data access used by services and handlers.
type Store interface {
	GetByID(ctx context.Context, table Table, id int64) (Row, error)
	GetAll(ctx context.Context, table Table, filters map[string]interface{}, limit int) ([]Row, error)
	GetOne(ctx context.Context, table Table, filters map[string]interface{}) (Row, error)
	Insert(ctx context.Context, table Table, data map[string]interface{}) (Row, error)
	Update(ctx context.Context, table Table, id int64, data map[string]interface{}) (Row, error)
	Remove(ctx context.Context, table Table, id int64) error
	Run(ctx context.Context, req Request) (*Result, error)
}

// CRUD provides generic database operations over the entity tables
type CRUD struct {
	*Executor
}

var _ Store = (*CRUD)(nil)

// NewCRUD creates a new CRUD instance with the given executor
func NewCRUD(exec *Executor) *CRUD {
	return &CRUD{Executor: exec}
}

// GetByID returns the row with the given primary key, or nil when it does not exist.
func (c *CRUD) GetByID(ctx context.Context, table Table, id int64) (Row, error) {
	if !table.Valid() {
		return nil, unknownTable(table)
	}

	res, err := c.Run(ctx, NewRequest(fmt.Sprintf("SELECT * FROM %s WHERE id = ?", table), id))
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, nil
	}
	return res.Rows[0], nil
}

// GetAll returns up to limit rows matching every filter by equality. An empty
// filter map selects all rows. limit is capped at DefaultListLimit.
func (c *CRUD) GetAll(ctx context.Context, table Table, filters map[string]interface{}, limit int) ([]Row, error) {
	if !table.Valid() {
		return nil, unknownTable(table)
	}
	if limit <= 0 || limit > constants.DefaultListLimit {
		limit = constants.DefaultListLimit
	}

	where, params, err := buildWhere(filters)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT * FROM %s%s ORDER BY id LIMIT %d", table, where, limit)
	res, err := c.Run(ctx, NewRequest(query, params...))
	if err != nil {
		return nil, err
	}
	return res.Rows, nil
}

// GetOne returns the first row matching filters, or nil when none does.
func (c *CRUD) GetOne(ctx context.Context, table Table, filters map[string]interface{}) (Row, error) {
	rows, err := c.GetAll(ctx, table, filters, 1)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

// Insert stores data as a new row and returns data merged with the generated id.
// Constraint violations surface as *QueryError wrapping the driver error.
func (c *CRUD) Insert(ctx context.Context, table Table, data map[string]interface{}) (Row, error) {
	if !table.Valid() {
		return nil, unknownTable(table)
	}
	if len(data) == 0 {
		return nil, utils.NewValidationError("", "No fields provided")
	}

	columns, params, err := sortedColumns(data)
	if err != nil {
		return nil, err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders)
	if c.Pool().IsPostgres() {
		query += " RETURNING id"
	}

	res, err := c.Run(ctx, NewRequest(query, params...))
	if err != nil {
		return nil, err
	}

	row := make(Row, len(data)+1)
	for k, v := range data {
		row[k] = v
	}
	row[constants.ColumnID] = res.LastInsertID
	return row, nil
}

// Update overwrites every column in data for the row with the given id and
// returns {id, ...data}. An id that matches no row is logged, not reported:
// callers that need a 404 check existence first.
func (c *CRUD) Update(ctx context.Context, table Table, id int64, data map[string]interface{}) (Row, error) {
	if !table.Valid() {
		return nil, unknownTable(table)
	}
	if id <= 0 {
		return nil, utils.NewValidationError(constants.ColumnID, "An id is required")
	}

	fields := make(map[string]interface{}, len(data))
	for k, v := range data {
		if k == constants.ColumnID {
			continue
		}
		fields[k] = v
	}
	if len(fields) == 0 {
		return nil, utils.NewValidationError("", constants.MsgNoFieldsToUpdate)
	}

	columns, params, err := sortedColumns(fields)
	if err != nil {
		return nil, err
	}

	sets := make([]string, len(columns), len(columns)+1)
	for i, col := range columns {
		sets[i] = col + " = ?"
	}
	if table.HasTimestamps() {
		if _, explicit := fields[constants.ColumnUpdatedAt]; !explicit {
			sets = append(sets, constants.ColumnUpdatedAt+" = CURRENT_TIMESTAMP")
		}
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(sets, ", "))
	res, err := c.Run(ctx, NewRequest(query, append(params, id)...))
	if err != nil {
		return nil, err
	}

	if res.RowsAffected == 0 {
		log.Warn().Str("table", table.String()).Int64("id", id).Msg("Update affected no rows")
	}

	row := make(Row, len(fields)+1)
	for k, v := range fields {
		row[k] = v
	}
	row[constants.ColumnID] = id
	return row, nil
}

// Remove deletes the row with the given id. Deleting a missing row succeeds.
func (c *CRUD) Remove(ctx context.Context, table Table, id int64) error {
	if !table.Valid() {
		return unknownTable(table)
	}

	res, err := c.Run(ctx, NewRequest(fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id))
	if err != nil {
		return err
	}

	log.Debug().Str("table", table.String()).Int64("id", id).Int64("affected", res.RowsAffected).Msg("Row removed")
	return nil
}

// buildWhere turns equality filters into a WHERE clause with columns in sorted order.
func buildWhere(filters map[string]interface{}) (string, []interface{}, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}

	columns, params, err := sortedColumns(filters)
	if err != nil {
		return "", nil, err
	}

	conds := make([]string, len(columns))
	for i, col := range columns {
		conds[i] = col + " = ?"
	}
	return " WHERE " + strings.Join(conds, " AND "), params, nil
}

// sortedColumns validates and orders the keys of data, returning matching values.
func sortedColumns(data map[string]interface{}) ([]string, []interface{}, error) {
	columns := make([]string, 0, len(data))
	for k := range data {
		if !validColumn(k) {
			return nil, nil, utils.NewValidationError(k, "Unknown field")
		}
		columns = append(columns, k)
	}
	sort.Strings(columns)

	params := make([]interface{}, len(columns))
	for i, col := range columns {
		params[i] = data[col]
	}
	return columns, params, nil
}

func unknownTable(table Table) error {
	return fmt.Errorf("unknown table %q", string(table))
}
