// Package dbtest provides an in-memory database.Store for tests. It mimics the
// MySQL schema's unique keys, foreign keys and ON DELETE CASCADE behaviour and
// reports violations as the driver would.
package dbtest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/yasinhessnawi1/travelguide/internal/constants"
	"github.com/yasinhessnawi1/travelguide/internal/database"
	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

// ErrRawSQL is returned by Run; the memory store does not parse SQL.
var ErrRawSQL = errors.New("dbtest: raw SQL is not supported")

type foreignKey struct {
	column string
	parent database.Table
}

var uniqueKeys = map[database.Table][][]string{
	database.TableCountries:      {{"slug"}},
	database.TableCities:         {{"slug", "country_id"}},
	database.TablePlaces:         {{"slug", "city_id"}},
	database.TableAccommodations: {{"slug", "city_id"}},
	database.TableTransports:     {{"slug", "city_id"}},
	database.TableCategories:     {{"slug"}},
	database.TableUsers:          {{"email"}},
}

var foreignKeys = map[database.Table][]foreignKey{
	database.TableCities:         {{"country_id", database.TableCountries}},
	database.TablePlaces:         {{"city_id", database.TableCities}, {"category_id", database.TableCategories}},
	database.TableAccommodations: {{"city_id", database.TableCities}},
	database.TableTransports:     {{"city_id", database.TableCities}},
}

// MemoryStore is a concurrency-safe in-memory database.Store.
type MemoryStore struct {
	mu     sync.Mutex
	rows   map[database.Table]map[int64]database.Row
	nextID map[database.Table]int64

	// Err, when set, is returned by every operation.
	Err error
	// Calls counts operations by name.
	Calls map[string]int
}

var _ database.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rows:   make(map[database.Table]map[int64]database.Row),
		nextID: make(map[database.Table]int64),
		Calls:  make(map[string]int),
	}
}

// Seed inserts row directly, bypassing constraints, and returns its id.
func (m *MemoryStore) Seed(table database.Table, row database.Row) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.put(table, copyRow(row))
}

// Count returns the number of rows in table.
func (m *MemoryStore) Count(table database.Table) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows[table])
}

func (m *MemoryStore) GetByID(ctx context.Context, table database.Table, id int64) (database.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("GetByID"); err != nil {
		return nil, err
	}
	row, ok := m.rows[table][id]
	if !ok {
		return nil, nil
	}
	return copyRow(row), nil
}

func (m *MemoryStore) GetAll(ctx context.Context, table database.Table, filters map[string]interface{}, limit int) ([]database.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("GetAll"); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > constants.DefaultListLimit {
		limit = constants.DefaultListLimit
	}

	var result []database.Row
	for _, id := range m.sortedIDs(table) {
		row := m.rows[table][id]
		if matches(row, filters) {
			result = append(result, copyRow(row))
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

func (m *MemoryStore) GetOne(ctx context.Context, table database.Table, filters map[string]interface{}) (database.Row, error) {
	rows, err := m.GetAll(ctx, table, filters, 1)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (m *MemoryStore) Insert(ctx context.Context, table database.Table, data map[string]interface{}) (database.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("Insert"); err != nil {
		return nil, err
	}

	row := copyRow(data)
	if err := m.check(table, 0, row); err != nil {
		return nil, &database.QueryError{Op: "insert", Err: err}
	}

	stored := copyRow(row)
	if table.HasTimestamps() {
		now := time.Now().UTC()
		stored[constants.ColumnCreatedAt] = now
		stored[constants.ColumnUpdatedAt] = now
	}
	id := m.put(table, stored)

	row[constants.ColumnID] = id
	return row, nil
}

func (m *MemoryStore) Update(ctx context.Context, table database.Table, id int64, data map[string]interface{}) (database.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("Update"); err != nil {
		return nil, err
	}

	fields := copyRow(data)
	delete(fields, constants.ColumnID)

	existing, ok := m.rows[table][id]
	if ok {
		merged := copyRow(existing)
		for k, v := range fields {
			merged[k] = v
		}
		if err := m.check(table, id, merged); err != nil {
			return nil, &database.QueryError{Op: "update", Err: err}
		}
		if table.HasTimestamps() {
			merged[constants.ColumnUpdatedAt] = time.Now().UTC()
		}
		m.rows[table][id] = merged
	}

	fields[constants.ColumnID] = id
	return fields, nil
}

func (m *MemoryStore) Remove(ctx context.Context, table database.Table, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("Remove"); err != nil {
		return err
	}
	m.cascade(table, id)
	return nil
}

func (m *MemoryStore) Run(ctx context.Context, req database.Request) (*database.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("Run"); err != nil {
		return nil, err
	}
	return nil, ErrRawSQL
}

func (m *MemoryStore) begin(op string) error {
	m.Calls[op]++
	return m.Err
}

func (m *MemoryStore) put(table database.Table, row database.Row) int64 {
	if m.rows[table] == nil {
		m.rows[table] = make(map[int64]database.Row)
	}
	m.nextID[table]++
	id := m.nextID[table]
	row[constants.ColumnID] = id
	m.rows[table][id] = row
	return id
}

// check enforces foreign and unique keys for row, ignoring the row with selfID.
func (m *MemoryStore) check(table database.Table, selfID int64, row database.Row) error {
	for _, fk := range foreignKeys[table] {
		v, present := row[fk.column]
		if !present || v == nil {
			continue
		}
		parentID, _ := utils.ToInt64(v)
		if _, ok := m.rows[fk.parent][parentID]; !ok {
			return &mysql.MySQLError{
				Number:  constants.MySQLErrNoReferencedRow,
				Message: fmt.Sprintf("Cannot add or update a child row: a foreign key constraint fails (%s.%s)", table, fk.column),
			}
		}
	}

	for _, key := range uniqueKeys[table] {
		for id, other := range m.rows[table] {
			if id == selfID {
				continue
			}
			same := true
			for _, col := range key {
				if fmt.Sprint(other[col]) != fmt.Sprint(row[col]) {
					same = false
					break
				}
			}
			if same {
				return &mysql.MySQLError{
					Number:  constants.MySQLErrDuplicateEntry,
					Message: fmt.Sprintf("Duplicate entry '%v' for key '%s.uq_%s_%s'", row[key[0]], table, table, strings.Join(key, "_")),
				}
			}
		}
	}
	return nil
}

func (m *MemoryStore) cascade(table database.Table, id int64) {
	delete(m.rows[table], id)
	for child, fks := range foreignKeys {
		for _, fk := range fks {
			if fk.parent != table {
				continue
			}
			for childID, row := range m.rows[child] {
				if parentID, _ := utils.ToInt64(row[fk.column]); parentID == id {
					m.cascade(child, childID)
				}
			}
		}
	}
}

func (m *MemoryStore) sortedIDs(table database.Table) []int64 {
	ids := make([]int64, 0, len(m.rows[table]))
	for id := range m.rows[table] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func matches(row database.Row, filters map[string]interface{}) bool {
	for col, want := range filters {
		if fmt.Sprint(row[col]) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

func copyRow(src map[string]interface{}) database.Row {
	dst := make(database.Row, len(src)+1)
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
