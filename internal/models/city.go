package models

// City is the body for creating or replacing a city. Slugs are unique per country.
type City struct {
	CountryID   int64  `json:"country_id" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"required,slug,max=100"`
	Description string `json:"description" validate:"max=5000"`
	Image       string `json:"image" validate:"max=255"`
	Status      string `json:"status" validate:"omitempty,oneof=draft published archived"`
}

// TableName returns the database table name for the City model.
func (c *City) TableName() string {
	return "cities"
}

// Load copies a stored row into the payload.
func (c *City) Load(row map[string]interface{}) {
	c.CountryID = int64Value(row["country_id"])
	c.Name = stringValue(row["name"])
	c.Slug = stringValue(row["slug"])
	c.Description = stringValue(row["description"])
	c.Image = stringValue(row["image"])
	c.Status = stringValue(row["status"])
}

// Columns returns the column values to persist.
func (c *City) Columns() map[string]interface{} {
	return map[string]interface{}{
		"country_id":  c.CountryID,
		"name":        c.Name,
		"slug":        c.Slug,
		"description": nullable(c.Description),
		"image":       nullable(c.Image),
		"status":      statusOrDefault(c.Status),
	}
}
