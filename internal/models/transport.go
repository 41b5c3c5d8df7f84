package models

// Transport is a way of getting around a city.
type Transport struct {
	CityID        int64  `json:"city_id" validate:"required,gt=0"`
	Name          string `json:"name" validate:"required,max=150"`
	Slug          string `json:"slug" validate:"required,slug,max=150"`
	Description   string `json:"description" validate:"max=5000"`
	TransportType string `json:"transport_type" validate:"max=50"`
	Schedule      string `json:"schedule" validate:"max=1000"`
	Route         string `json:"route" validate:"max=1000"`
	Image         string `json:"image" validate:"max=255"`
	Status        string `json:"status" validate:"omitempty,oneof=draft published archived"`
}

// TableName returns the database table name for the Transport model.
func (t *Transport) TableName() string {
	return "transports"
}

// Load copies a stored row into the payload.
func (t *Transport) Load(row map[string]interface{}) {
	t.CityID = int64Value(row["city_id"])
	t.Name = stringValue(row["name"])
	t.Slug = stringValue(row["slug"])
	t.Description = stringValue(row["description"])
	t.TransportType = stringValue(row["transport_type"])
	t.Schedule = stringValue(row["schedule"])
	t.Route = stringValue(row["route"])
	t.Image = stringValue(row["image"])
	t.Status = stringValue(row["status"])
}

// Columns returns the column values to persist.
func (t *Transport) Columns() map[string]interface{} {
	return map[string]interface{}{
		"city_id":        t.CityID,
		"name":           t.Name,
		"slug":           t.Slug,
		"description":    nullable(t.Description),
		"transport_type": nullable(t.TransportType),
		"schedule":       nullable(t.Schedule),
		"route":          nullable(t.Route),
		"image":          nullable(t.Image),
		"status":         statusOrDefault(t.Status),
	}
}
