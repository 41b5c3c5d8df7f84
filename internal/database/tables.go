package database

import (
	"regexp"
)

// Table is one of the entity tables the CRUD helpers may touch. Table
// names are interpolated into SQL, so only these constants are accepted.
type Table string

const (
	TableCountries      Table = "countries"
	TableCities         Table = "cities"
	TablePlaces         Table = "places"
	TableCategories     Table = "categories"
	TableAccommodations Table = "accommodations"
	TableTransports     Table = "transports"
	TableUsers          Table = "users"
)

// AllTables lists every entity table in creation order.
var AllTables = []Table{
	TableCountries,
	TableCities,
	TableCategories,
	TablePlaces,
	TableAccommodations,
	TableTransports,
	TableUsers,
}

// Valid reports whether t is a known entity table.
func (t Table) Valid() bool {
	for _, known := range AllTables {
		if t == known {
			return true
		}
	}
	return false
}

// HasTimestamps reports whether the table carries created_at and updated_at.
func (t Table) HasTimestamps() bool {
	return t != TableCategories
}

func (t Table) String() string {
	return string(t)
}

var columnPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// validColumn guards column names coming from payload keys and filters.
func validColumn(name string) bool {
	return len(name) <= 64 && columnPattern.MatchString(name)
}
