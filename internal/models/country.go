package models

// Country is the body for creating or replacing a country.
type Country struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"required,slug,max=100"`
	Description string `json:"description" validate:"max=5000"`
	Capital     string `json:"capital" validate:"max=100"`
	Currency    string `json:"currency" validate:"max=50"`
	Language    string `json:"language" validate:"max=100"`
	Image       string `json:"image" validate:"max=255"`
	Status      string `json:"status" validate:"omitempty,oneof=draft published archived"`
}

// TableName returns the database table name for the Country model.
func (c *Country) TableName() string {
	return "countries"
}

// Load copies a stored row into the payload.
func (c *Country) Load(row map[string]interface{}) {
	c.Name = stringValue(row["name"])
	c.Slug = stringValue(row["slug"])
	c.Description = stringValue(row["description"])
	c.Capital = stringValue(row["capital"])
	c.Currency = stringValue(row["currency"])
	c.Language = stringValue(row["language"])
	c.Image = stringValue(row["image"])
	c.Status = stringValue(row["status"])
}

// Columns returns the column values to persist.
func (c *Country) Columns() map[string]interface{} {
	return map[string]interface{}{
		"name":        c.Name,
		"slug":        c.Slug,
		"description": nullable(c.Description),
		"capital":     nullable(c.Capital),
		"currency":    nullable(c.Currency),
		"language":    nullable(c.Language),
		"image":       nullable(c.Image),
		"status":      statusOrDefault(c.Status),
	}
}
