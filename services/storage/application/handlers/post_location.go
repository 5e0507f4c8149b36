package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/cryostore/pkg/errhttp"
	"github.com/ghuser/cryostore/pkg/httpx"
	pkgvalidator "github.com/ghuser/cryostore/pkg/validator"
	appsvcs "github.com/ghuser/cryostore/services/storage/application/services"
	"github.com/ghuser/cryostore/services/storage/domain/models"
)

// CreateLocationRequest is the request body for POST /storage/locations.
type CreateLocationRequest struct {
	Level              string `json:"level" validate:"required" example:"rack"`
	Code               string `json:"code" validate:"required,max=10" example:"R01"`
	Label              string `json:"label" validate:"max=255" example:"Rack 1"`
	ParentID           *int64 `json:"parent_id" example:"42"`
	Active             *bool  `json:"active" example:"true"`
	CapacityLimit      *int   `json:"capacity_limit" example:"200"`
	GridRows           int    `json:"grid_rows" validate:"gte=0" example:"9"`
	GridColumns        int    `json:"grid_columns" validate:"gte=0" example:"9"`
	PositionSchemaHint string `json:"position_schema_hint" example:"A1-I9"`
} // @name CreateLocationRequest

// LocationResponse is the JSON shape of a hierarchy node.
type LocationResponse struct {
	ID                 int64     `json:"id" example:"7"`
	Level              string    `json:"level" example:"rack"`
	Code               string    `json:"code" example:"R01"`
	Label              string    `json:"label" example:"Rack 1"`
	Active             bool      `json:"active" example:"true"`
	ParentID           *int64    `json:"parent_id,omitempty" example:"42"`
	CapacityLimit      *int      `json:"capacity_limit,omitempty" example:"200"`
	GridRows           int       `json:"grid_rows,omitempty" example:"9"`
	GridColumns        int       `json:"grid_columns,omitempty" example:"9"`
	PositionSchemaHint string    `json:"position_schema_hint,omitempty" example:"A1-I9"`
	Version            int       `json:"version" example:"1"`
	CreatedAt          time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt          time.Time `json:"updated_at" example:"2024-01-15T10:30:00Z"`
} // @name LocationResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid input: a rack must be created under a shelf, not a device"`
} // @name ErrorResponse

func locationResponse(loc *models.Location) LocationResponse {
	return LocationResponse{
		ID:                 loc.ID,
		Level:              string(loc.Level),
		Code:               loc.Code,
		Label:              loc.Label,
		Active:             loc.Active,
		ParentID:           loc.ParentID,
		CapacityLimit:      loc.CapacityLimit,
		GridRows:           loc.GridRows,
		GridColumns:        loc.GridColumns,
		PositionSchemaHint: loc.PositionSchemaHint,
		Version:            loc.Version,
		CreatedAt:          loc.CreatedAt,
		UpdatedAt:          loc.UpdatedAt,
	}
}

// PostLocationHandler handles POST /storage/locations requests.
type PostLocationHandler struct {
	svc *appsvcs.Services
}

// NewPostLocationHandler returns a PostLocationHandler backed by the given services.
func NewPostLocationHandler(svc *appsvcs.Services) *PostLocationHandler {
	return &PostLocationHandler{svc: svc}
}

// Execute creates a new hierarchy node.
//
//	@Summary		Create storage location
//	@Description	Creates a node in the Room > Device > Shelf > Rack > Box hierarchy
//	@Tags			locations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateLocationRequest	true	"Location creation request"
//	@Success		201		{object}	LocationResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/storage/locations [post]
func (h *PostLocationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateLocationRequest](w, r)
	if !ok {
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	loc, err := h.svc.Lifecycle.CreateLocation(r.Context(), appsvcs.CreateLocationInput{
		Level:              req.Level,
		Code:               req.Code,
		Label:              req.Label,
		ParentID:           req.ParentID,
		Active:             active,
		CapacityLimit:      req.CapacityLimit,
		GridRows:           req.GridRows,
		GridColumns:        req.GridColumns,
		PositionSchemaHint: req.PositionSchemaHint,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, locationResponse(loc))
}
