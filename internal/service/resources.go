package service

import (
	"github.com/yasinhessnawi1/travelguide/internal/constants"
	"github.com/yasinhessnawi1/travelguide/internal/database"
	"github.com/yasinhessnawi1/travelguide/internal/models"
)

// Resource describes a catalog table exposed over the API.
type Resource struct {
	// Name is the URL segment, e.g. "countries".
	Name  string
	Label string
	Table database.Table
	// ImageDir is the upload directory the image column must point into;
	// empty when the resource has no image.
	ImageDir string
	// Filters are the columns a list request may filter on by equality.
	Filters []string
	// Parents maps foreign key columns to the table they reference.
	Parents map[string]database.Table
	// WriteRoles may create and update; empty means any authenticated user.
	WriteRoles []string
	// DeleteRoles may delete.
	DeleteRoles []string
	NewPayload  func() models.Payload
}

var editorRoles = []string{constants.RoleModerator, constants.RoleAdmin}
var adminRoles = []string{constants.RoleAdmin}

// Resources lists every catalog resource in route registration order.
var Resources = []Resource{
	{
		Name:        "countries",
		Label:       "Country",
		Table:       database.TableCountries,
		ImageDir:    "countries",
		Filters:     []string{constants.ColumnStatus},
		DeleteRoles: editorRoles,
		NewPayload:  func() models.Payload { return &models.Country{} },
	},
	{
		Name:        "cities",
		Label:       "City",
		Table:       database.TableCities,
		ImageDir:    "cities",
		Filters:     []string{constants.ColumnCountryID, constants.ColumnStatus},
		Parents:     map[string]database.Table{constants.ColumnCountryID: database.TableCountries},
		DeleteRoles: editorRoles,
		NewPayload:  func() models.Payload { return &models.City{} },
	},
	{
		Name:     "places",
		Label:    "Place",
		Table:    database.TablePlaces,
		ImageDir: "places",
		Filters:  []string{constants.ColumnCityID, constants.ColumnCategoryID, constants.ColumnStatus},
		Parents:  map[string]database.Table{
			constants.ColumnCityID:     database.TableCities,
			constants.ColumnCategoryID: database.TableCategories,
		},
		DeleteRoles: editorRoles,
		NewPayload:  func() models.Payload { return &models.Place{} },
	},
	{
		Name:        "accommodations",
		Label:       "Accommodation",
		Table:       database.TableAccommodations,
		ImageDir:    "accommodations",
		Filters:     []string{constants.ColumnCityID, constants.ColumnStatus},
		Parents:     map[string]database.Table{constants.ColumnCityID: database.TableCities},
		DeleteRoles: editorRoles,
		NewPayload:  func() models.Payload { return &models.Accommodation{} },
	},
	{
		Name:        "transports",
		Label:       "Transport",
		Table:       database.TableTransports,
		ImageDir:    "transports",
		Filters:     []string{constants.ColumnCityID, constants.ColumnStatus},
		Parents:     map[string]database.Table{constants.ColumnCityID: database.TableCities},
		DeleteRoles: editorRoles,
		NewPayload:  func() models.Payload { return &models.Transport{} },
	},
	{
		Name:        "categories",
		Label:       "Category",
		Table:       database.TableCategories,
		WriteRoles:  adminRoles,
		DeleteRoles: adminRoles,
		NewPayload:  func() models.Payload { return &models.Category{} },
	},
}

// ResourceByName looks up a catalog resource by its URL segment.
func ResourceByName(name string) (Resource, bool) {
	for _, r := range Resources {
		if r.Name == name {
			return r, true
		}
	}
	return Resource{}, false
}

// resourceByTable looks up the catalog resource stored in table.
func resourceByTable(t database.Table) (Resource, bool) {
	for _, r := range Resources {
		if r.Table == t {
			return r, true
		}
	}
	return Resource{}, false
}

// MustResource is ResourceByName for names known at compile time.
func MustResource(name string) Resource {
	r, ok := ResourceByName(name)
	if !ok {
		panic("unknown resource " + name)
	}
	return r
}

// isIDColumn reports whether a filter column holds a numeric id.
func isIDColumn(col string) bool {
	return col == constants.ColumnID || len(col) > 3 && col[len(col)-3:] == "_id"
}
