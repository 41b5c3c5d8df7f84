package service

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/travelguide/internal/constants"
	"github.com/yasinhessnawi1/travelguide/internal/database"
	"github.com/yasinhessnawi1/travelguide/internal/models"
	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

// ImageRemover deletes stored images by their public path.
type ImageRemover interface {
	Delete(path string) error
	// IsStoredPath reports whether path names a file the uploader stored in dir.
	IsStoredPath(path, dir string) bool
}

// cascadeLink is a child table whose rows the database deletes with their parent.
type cascadeLink struct {
	table  database.Table
	column string
}

var cascades = map[database.Table][]cascadeLink{
	database.TableCountries: {{database.TableCities, constants.ColumnCountryID}},
	database.TableCities: {
		{database.TablePlaces, constants.ColumnCityID},
		{database.TableAccommodations, constants.ColumnCityID},
		{database.TableTransports, constants.ColumnCityID},
	},
	database.TableCategories: {{database.TablePlaces, constants.ColumnCategoryID}},
}

// storedImage is an image path together with the table whose rows may reference it.
type storedImage struct {
	table database.Table
	path  string
}

// CatalogService implements reads and writes for the catalog resources.
type CatalogService struct {
	store  database.Store
	images ImageRemover
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(store database.Store, images ImageRemover) *CatalogService {
	return &CatalogService{
		store:  store,
		images: images,
	}
}

// Filters picks the resource's filter columns out of query. Unknown keys are
// ignored; id columns must be positive integers.
func (s *CatalogService) Filters(res Resource, query url.Values) (map[string]interface{}, error) {
	filters := make(map[string]interface{})
	for _, col := range res.Filters {
		raw := query.Get(col)
		if raw == "" {
			continue
		}
		if isIDColumn(col) {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				return nil, utils.NewValidationError(col, "Must be a positive integer")
			}
			filters[col] = id
			continue
		}
		filters[col] = raw
	}
	return filters, nil
}

// List returns up to limit rows of res matching filters.
func (s *CatalogService) List(ctx context.Context, res Resource, filters map[string]interface{}, limit int) ([]database.Row, error) {
	rows, err := s.store.GetAll(ctx, res.Table, filters, utils.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", res.Name, err)
	}
	if rows == nil {
		rows = []database.Row{}
	}
	return rows, nil
}

// Get returns a single row or a NotFoundError.
func (s *CatalogService) Get(ctx context.Context, res Resource, id int64) (database.Row, error) {
	row, err := s.store.GetByID(ctx, res.Table, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", res.Label, err)
	}
	if row == nil {
		return nil, utils.NewNotFoundError(res.Label, id)
	}
	return row, nil
}

// GetCountryBySlug returns the country with its cities under "cities".
func (s *CatalogService) GetCountryBySlug(ctx context.Context, slug string) (database.Row, error) {
	country, err := s.store.GetOne(ctx, database.TableCountries, map[string]interface{}{constants.ColumnSlug: slug})
	if err != nil {
		return nil, fmt.Errorf("failed to get country: %w", err)
	}
	if country == nil {
		return nil, utils.NewNotFoundError("Country", slug)
	}

	cities, err := s.store.GetAll(ctx, database.TableCities, map[string]interface{}{constants.ColumnCountryID: country[constants.ColumnID]}, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get cities: %w", err)
	}
	country["cities"] = nonNil(cities)
	return country, nil
}

// GetCityWithChildren returns the city with its places, accommodations and transports.
func (s *CatalogService) GetCityWithChildren(ctx context.Context, id int64) (database.Row, error) {
	city, err := s.Get(ctx, MustResource("cities"), id)
	if err != nil {
		return nil, err
	}

	byCity := map[string]interface{}{constants.ColumnCityID: id}
	for _, child := range []database.Table{database.TablePlaces, database.TableAccommodations, database.TableTransports} {
		rows, err := s.store.GetAll(ctx, child, byCity, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s: %w", child, err)
		}
		city[child.String()] = nonNil(rows)
	}
	return city, nil
}

// Create validates payload, checks that referenced parents exist and stores it.
// A duplicate slug surfaces as a conflict.
func (s *CatalogService) Create(ctx context.Context, res Resource, payload models.Payload) (database.Row, error) {
	if err := utils.ValidateStruct(payload); err != nil {
		return nil, err
	}

	columns := payload.Columns()
	if err := s.checkImage(res, columns, ""); err != nil {
		return nil, err
	}
	if err := s.checkParents(ctx, res, columns); err != nil {
		return nil, err
	}

	row, err := s.store.Insert(ctx, res.Table, columns)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", res.Label, err)
	}

	log.Info().Str("resource", res.Name).Interface("id", row[constants.ColumnID]).Msg("Resource created")
	return row, nil
}

// Update loads the stored row into a fresh payload, lets apply overlay the
// request body, validates the result and writes every column back.
func (s *CatalogService) Update(ctx context.Context, res Resource, id int64, apply func(models.Payload) error) (database.Row, error) {
	existing, err := s.Get(ctx, res, id)
	if err != nil {
		return nil, err
	}

	payload := res.NewPayload()
	payload.Load(existing)
	if err := apply(payload); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(payload); err != nil {
		return nil, err
	}

	columns := payload.Columns()
	if err := s.checkImage(res, columns, imageOf(existing)); err != nil {
		return nil, err
	}
	if err := s.checkParents(ctx, res, columns); err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, res.Table, id, columns)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", res.Label, err)
	}

	merged := make(database.Row, len(existing))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range updated {
		merged[k] = v
	}

	if oldImage := imageOf(existing); oldImage != "" && oldImage != imageOf(merged) {
		s.releaseImage(ctx, storedImage{table: res.Table, path: oldImage})
	}

	log.Info().Str("resource", res.Name).Int64("id", id).Msg("Resource updated")
	return merged, nil
}

// Delete removes the row and its stored image. Child rows are removed by the
// database through ON DELETE CASCADE; their images are collected first and
// released once the rows are gone.
func (s *CatalogService) Delete(ctx context.Context, res Resource, id int64) error {
	existing, err := s.Get(ctx, res, id)
	if err != nil {
		return err
	}

	var images []storedImage
	if image := imageOf(existing); image != "" {
		images = append(images, storedImage{table: res.Table, path: image})
	}
	children, err := s.cascadedImages(ctx, res.Table, id)
	if err != nil {
		return err
	}
	images = append(images, children...)

	if err := s.store.Remove(ctx, res.Table, id); err != nil {
		return fmt.Errorf("failed to delete %s: %w", res.Label, err)
	}

	for _, img := range images {
		s.releaseImage(ctx, img)
	}

	log.Info().Str("resource", res.Name).Int64("id", id).Msg("Resource deleted")
	return nil
}

// checkParents answers 404 when a referenced parent row does not exist.
func (s *CatalogService) checkParents(ctx context.Context, res Resource, columns map[string]interface{}) error {
	cols := make([]string, 0, len(res.Parents))
	for col := range res.Parents {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	for _, col := range cols {
		id, ok := utils.ToInt64(columns[col])
		if !ok || id == 0 {
			continue
		}
		parent, err := s.store.GetByID(ctx, res.Parents[col], id)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", col, err)
		}
		if parent == nil {
			appErr := utils.NewNotFoundError(parentLabel(res.Parents[col]), id)
			appErr.Field = col
			return appErr
		}
	}
	return nil
}

// checkImage accepts the image column when it is empty, unchanged from
// current, or a file the uploader stored in the resource's directory.
func (s *CatalogService) checkImage(res Resource, columns map[string]interface{}, current string) error {
	image, _ := columns[constants.ColumnImage].(string)
	if image == "" || image == current {
		return nil
	}
	if s.images == nil || res.ImageDir == "" || !s.images.IsStoredPath(image, res.ImageDir) {
		return utils.NewValidationError(constants.ColumnImage, "Must be a path returned by an upload to "+res.ImageDir)
	}
	return nil
}

// cascadedImages lists the images of every row the database removes together
// with the row id of table. At most DefaultListLimit children are read per
// parent and child table.
func (s *CatalogService) cascadedImages(ctx context.Context, table database.Table, id int64) ([]storedImage, error) {
	var images []storedImage
	for _, link := range cascades[table] {
		rows, err := s.store.GetAll(ctx, link.table, map[string]interface{}{link.column: id}, constants.DefaultListLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to collect %s images: %w", link.table, err)
		}
		if len(rows) == constants.DefaultListLimit {
			log.Warn().
				Str("table", link.table.String()).
				Int64("parent_id", id).
				Msg("Cascade image cleanup limited to the first rows")
		}

		for _, row := range rows {
			if image := imageOf(row); image != "" {
				images = append(images, storedImage{table: link.table, path: image})
			}
			childID, ok := utils.ToInt64(row[constants.ColumnID])
			if !ok {
				continue
			}
			nested, err := s.cascadedImages(ctx, link.table, childID)
			if err != nil {
				return nil, err
			}
			images = append(images, nested...)
		}
	}
	return images, nil
}

// releaseImage deletes an image that no row of its table references any
// more. Paths outside the table's upload directory are never deleted.
func (s *CatalogService) releaseImage(ctx context.Context, img storedImage) {
	if s.images == nil {
		return
	}
	res, ok := resourceByTable(img.table)
	if !ok || res.ImageDir == "" || !s.images.IsStoredPath(img.path, res.ImageDir) {
		log.Debug().Str("path", img.path).Str("table", img.table.String()).Msg("Keeping image outside the upload directory")
		return
	}

	other, err := s.store.GetOne(ctx, img.table, map[string]interface{}{constants.ColumnImage: img.path})
	if err != nil {
		log.Warn().Err(err).Str("path", img.path).Msg("Failed to check image references")
		return
	}
	if other != nil {
		log.Debug().Str("path", img.path).Interface("id", other[constants.ColumnID]).Msg("Image still referenced")
		return
	}

	if err := s.images.Delete(img.path); err != nil {
		log.Warn().Err(err).Str("path", img.path).Msg("Failed to remove stored image")
	}
}

func parentLabel(t database.Table) string {
	for _, r := range Resources {
		if r.Table == t {
			return r.Label
		}
	}
	return t.String()
}

func imageOf(row database.Row) string {
	s, _ := row[constants.ColumnImage].(string)
	return s
}

func nonNil(rows []database.Row) []database.Row {
	if rows == nil {
		return []database.Row{}
	}
	return rows
}
