package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yasinhessnawi1/travelguide/internal/constants"
	"github.com/yasinhessnawi1/travelguide/internal/models"
	"github.com/yasinhessnawi1/travelguide/internal/service"
	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

// ResourceHandler serves list, read and write routes for one catalog resource.
type ResourceHandler struct {
	catalog  CatalogServiceInterface
	resource service.Resource
}

// NewResourceHandler creates a handler for res.
func NewResourceHandler(catalog CatalogServiceInterface, res service.Resource) *ResourceHandler {
	if catalog == nil {
		panic("catalog service cannot be nil")
	}
	return &ResourceHandler{
		catalog:  catalog,
		resource: res,
	}
}

// Resource returns the resource this handler serves.
func (h *ResourceHandler) Resource() service.Resource {
	return h.resource
}

// List returns rows filtered by the resource's allowed query parameters.
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, err := h.catalog.Filters(h.resource, r.URL.Query())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	rows, err := h.catalog.List(r.Context(), h.resource, filters, utils.ParseLimit(r))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, rows)
}

// Get returns a single row by id.
func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseIDParam(r, constants.ParamID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	row, err := h.catalog.Get(r.Context(), h.resource, id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, row)
}

// Create stores a new row and answers 201 with it.
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload := h.resource.NewPayload()
	if err := utils.DecodeJSON(r, payload); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	row, err := h.catalog.Create(r.Context(), h.resource, payload)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusCreated, row)
}

// Update merges the request body over the stored row.
func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseIDParam(r, constants.ParamID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	row, err := h.catalog.Update(r.Context(), h.resource, id, func(p models.Payload) error {
		return utils.DecodeJSON(r, p)
	})
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, row)
}

// Delete removes a row.
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseIDParam(r, constants.ParamID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.catalog.Delete(r.Context(), h.resource, id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Message(w, constants.MsgDeleted)
}

// CountryBySlug returns a country with its cities.
func (h *ResourceHandler) CountryBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, constants.ParamSlug)
	if !utils.IsValidSlug(slug) {
		utils.NotFound(w, "")
		return
	}

	country, err := h.catalog.GetCountryBySlug(r.Context(), slug)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, country)
}

// CityWithChildren returns a city with its places, accommodations and transports.
func (h *ResourceHandler) CityWithChildren(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseIDParam(r, constants.ParamID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	city, err := h.catalog.GetCityWithChildren(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, city)
}
