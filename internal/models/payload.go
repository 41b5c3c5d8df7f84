// Package models defines the request payloads for catalog resources and users
// together with their mapping to database columns.
package models

import (
	"fmt"

	"github.com/yasinhessnawi1/travelguide/internal/constants"
	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

// Payload is a writable resource body. Load fills it from a stored row so a
// partial JSON body can be decoded on top of it; Columns returns the values
// to persist, excluding id and timestamps.
type Payload interface {
	TableName() string
	Load(row map[string]interface{})
	Columns() map[string]interface{}
}

// DefaultStatus is applied when a payload leaves status empty.
const DefaultStatus = constants.StatusPublished

func stringValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}

func int64Value(v interface{}) int64 {
	n, _ := utils.ToInt64(v)
	return n
}

// nullable maps the zero value to NULL.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableID(id int64) interface{} {
	if id == 0 {
		return nil
	}
	return id
}

func statusOrDefault(status string) string {
	if status == "" {
		return DefaultStatus
	}
	return status
}
