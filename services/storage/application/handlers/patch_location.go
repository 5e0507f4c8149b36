package handlers

import (
	"net/http"

	"github.com/ghuser/cryostore/pkg/errhttp"
	"github.com/ghuser/cryostore/pkg/httpx"
	pkgvalidator "github.com/ghuser/cryostore/pkg/validator"
	appsvcs "github.com/ghuser/cryostore/services/storage/application/services"
)

// UpdateLocationRequest is the request body for PATCH /storage/locations/{id}.
// Absent fields are left unchanged; version must match the stored row.
type UpdateLocationRequest struct {
	Label              *string `json:"label" validate:"omitempty,max=255" example:"Rack 1 (rear)"`
	Active             *bool   `json:"active" example:"false"`
	CapacityLimit      *int    `json:"capacity_limit" example:"250"`
	GridRows           *int    `json:"grid_rows" validate:"omitempty,gte=0" example:"9"`
	GridColumns        *int    `json:"grid_columns" validate:"omitempty,gte=0" example:"9"`
	PositionSchemaHint *string `json:"position_schema_hint" example:"A1-I9"`
	Version            int     `json:"version" validate:"gte=1" example:"3"`
} // @name UpdateLocationRequest

// PatchLocationHandler handles PATCH /storage/locations/{id} requests.
type PatchLocationHandler struct {
	svc *appsvcs.Services
}

// NewPatchLocationHandler returns a PatchLocationHandler backed by the given services.
func NewPatchLocationHandler(svc *appsvcs.Services) *PatchLocationHandler {
	return &PatchLocationHandler{svc: svc}
}

// Execute applies a versioned partial update to a node.
//
//	@Summary		Update storage location
//	@Description	Partial update with optimistic versioning; a stale version yields 409
//	@Tags			locations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Location ID"
//	@Param			request	body		UpdateLocationRequest	true	"Location update request"
//	@Success		200		{object}	LocationResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/storage/locations/{id} [patch]
func (h *PatchLocationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := locationIDParam(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[UpdateLocationRequest](w, r)
	if !ok {
		return
	}

	loc, err := h.svc.Lifecycle.UpdateLocation(r.Context(), id, appsvcs.UpdateLocationInput{
		Label:              req.Label,
		Active:             req.Active,
		CapacityLimit:      req.CapacityLimit,
		GridRows:           req.GridRows,
		GridColumns:        req.GridColumns,
		PositionSchemaHint: req.PositionSchemaHint,
		Version:            req.Version,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, locationResponse(loc))
}
