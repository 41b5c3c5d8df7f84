package models

// Accommodation is a place to stay within a city.
type Accommodation struct {
	CityID            int64  `json:"city_id" validate:"required,gt=0"`
	Name              string `json:"name" validate:"required,max=150"`
	Slug              string `json:"slug" validate:"required,slug,max=150"`
	Description       string `json:"description" validate:"max=5000"`
	AccommodationType string `json:"accommodation_type" validate:"max=50"`
	PriceRange        string `json:"price_range" validate:"max=50"`
	Address           string `json:"address" validate:"max=255"`
	Image             string `json:"image" validate:"max=255"`
	Status            string `json:"status" validate:"omitempty,oneof=draft published archived"`
}

// TableName returns the database table name for the Accommodation model.
func (a *Accommodation) TableName() string {
	return "accommodations"
}

// Load copies a stored row into the payload.
func (a *Accommodation) Load(row map[string]interface{}) {
	a.CityID = int64Value(row["city_id"])
	a.Name = stringValue(row["name"])
	a.Slug = stringValue(row["slug"])
	a.Description = stringValue(row["description"])
	a.AccommodationType = stringValue(row["accommodation_type"])
	a.PriceRange = stringValue(row["price_range"])
	a.Address = stringValue(row["address"])
	a.Image = stringValue(row["image"])
	a.Status = stringValue(row["status"])
}

// Columns returns the column values to persist.
func (a *Accommodation) Columns() map[string]interface{} {
	return map[string]interface{}{
		"city_id":            a.CityID,
		"name":               a.Name,
		"slug":               a.Slug,
		"description":        nullable(a.Description),
		"accommodation_type": nullable(a.AccommodationType),
		"price_range":        nullable(a.PriceRange),
		"address":            nullable(a.Address),
		"image":              nullable(a.Image),
		"status":             statusOrDefault(a.Status),
	}
}
