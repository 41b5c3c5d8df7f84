package models

// Place is a point of interest within a city, optionally categorised.
type Place struct {
	CityID      int64  `json:"city_id" validate:"required,gt=0"`
	CategoryID  int64  `json:"category_id" validate:"omitempty,gt=0"`
	Name        string `json:"name" validate:"required,max=150"`
	Slug        string `json:"slug" validate:"required,slug,max=150"`
	Description string `json:"description" validate:"max=5000"`
	Location    string `json:"location" validate:"max=255"`
	Image       string `json:"image" validate:"max=255"`
	Status      string `json:"status" validate:"omitempty,oneof=draft published archived"`
}

// TableName returns the database table name for the Place model.
func (p *Place) TableName() string {
	return "places"
}

// Load copies a stored row into the payload.
func (p *Place) Load(row map[string]interface{}) {
	p.CityID = int64Value(row["city_id"])
	p.CategoryID = int64Value(row["category_id"])
	p.Name = stringValue(row["name"])
	p.Slug = stringValue(row["slug"])
	p.Description = stringValue(row["description"])
	p.Location = stringValue(row["location"])
	p.Image = stringValue(row["image"])
	p.Status = stringValue(row["status"])
}

// Columns returns the column values to persist.
func (p *Place) Columns() map[string]interface{} {
	return map[string]interface{}{
		"city_id":     p.CityID,
		"category_id": nullableID(p.CategoryID),
		"name":        p.Name,
		"slug":        p.Slug,
		"description": nullable(p.Description),
		"location":    nullable(p.Location),
		"image":       nullable(p.Image),
		"status":      statusOrDefault(p.Status),
	}
}
