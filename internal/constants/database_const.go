// Package constants provides shared constant values used throughout the application.
//
// The database_const.go file defines column names shared by queries and handlers.
// Table names live in the database package as a closed enumeration.
package constants

// Common Column Names.
const (
	ColumnID         = "id"
	ColumnSlug       = "slug"
	ColumnName       = "name"
	ColumnStatus     = "status"
	ColumnImage      = "image"
	ColumnEmail      = "email"
	ColumnPassword   = "password"
	ColumnRole       = "role"
	ColumnAvatar     = "avatar"
	ColumnCountryID  = "country_id"
	ColumnCityID     = "city_id"
	ColumnCategoryID = "category_id"
	ColumnCreatedAt  = "created_at"
	ColumnUpdatedAt  = "updated_at"
)

// Bookkeeping tables used by migrations and seeding.
const (
	TableMigrations = "migrations"
	TableSeeds      = "seeds"
)
