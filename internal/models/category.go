package models

// Category groups places. Categories carry no status or timestamps.
type Category struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"required,slug,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// TableName returns the database table name for the Category model.
func (c *Category) TableName() string {
	return "categories"
}

// Load copies a stored row into the payload.
func (c *Category) Load(row map[string]interface{}) {
	c.Name = stringValue(row["name"])
	c.Slug = stringValue(row["slug"])
	c.Description = stringValue(row["description"])
}

// Columns returns the column values to persist.
func (c *Category) Columns() map[string]interface{} {
	return map[string]interface{}{
		"name":        c.Name,
		"slug":        c.Slug,
		"description": nullable(c.Description),
	}
}

// DefaultCategories are seeded on first start.
var DefaultCategories = []Category{
	{Name: "Attractions", Slug: "attractions", Description: "Landmarks and sights worth a visit"},
	{Name: "Museums", Slug: "museums", Description: "Museums and galleries"},
	{Name: "Restaurants", Slug: "restaurants", Description: "Places to eat"},
	{Name: "Parks", Slug: "parks", Description: "Parks and gardens"},
	{Name: "Shopping", Slug: "shopping", Description: "Markets, malls and shops"},
	{Name: "Nightlife", Slug: "nightlife", Description: "Bars, clubs and live music"},
}
