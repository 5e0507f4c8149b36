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

// AssignRequest is the request body for POST /storage/assignments.
type AssignRequest struct {
	SampleRef    string `json:"sample_ref" validate:"required" example:"ACC-2024-0042"`
	LocationID   int64  `json:"location_id" validate:"required,gt=0" example:"7"`
	LocationType string `json:"location_type" validate:"required" example:"box"`
	Coordinate   string `json:"coordinate" validate:"max=50" example:"A3"`
	Notes        string `json:"notes" validate:"max=1000" example:"aliquot 2 of 4"`
	AssignedBy   string `json:"assigned_by" validate:"max=255" example:"jdoe"`
} // @name AssignRequest

// LocationRefResponse is the (type, id) pair of an assignable node.
type LocationRefResponse struct {
	Type string `json:"type" example:"box"`
	ID   int64  `json:"id" example:"7"`
} // @name LocationRefResponse

// AssignmentResponse is the JSON shape of a specimen's assignment row.
// Location is null once the specimen has been disposed or its location removed.
type AssignmentResponse struct {
	ID           int64                `json:"id" example:"19"`
	SampleItemID int64                `json:"sample_item_id" example:"1042"`
	Location     *LocationRefResponse `json:"location"`
	Coordinate   string               `json:"coordinate,omitempty" example:"A3"`
	AssignedAt   time.Time            `json:"assigned_at" example:"2024-01-15T10:30:00Z"`
	AssignedBy   string               `json:"assigned_by" example:"jdoe"`
	Notes        string               `json:"notes,omitempty" example:"aliquot 2 of 4"`
	Version      int                  `json:"version" example:"1"`
} // @name AssignmentResponse

// AssignResultResponse is returned on a successful assign or move.
type AssignResultResponse struct {
	Assignment AssignmentResponse `json:"assignment"`
	Path       string             `json:"path" example:"Main Lab > Freezer 2 > Shelf 3 > Rack 4 > Box 5 > A3"`
	Warning    string             `json:"warning,omitempty" example:"rack \"Rack 4\" is nearing capacity (73/81)"`
} // @name AssignResultResponse

func assignmentResponse(a *models.Assignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:           a.ID,
		SampleItemID: a.SampleItemID,
		Coordinate:   a.PositionCoordinate,
		AssignedAt:   a.AssignedAt,
		AssignedBy:   a.AssignedBy,
		Notes:        a.Notes,
		Version:      a.Version,
	}
	if a.Location != nil {
		resp.Location = &LocationRefResponse{Type: string(a.Location.Type), ID: a.Location.ID}
	}
	return resp
}

// PostAssignmentHandler handles POST /storage/assignments requests.
type PostAssignmentHandler struct {
	svc *appsvcs.Services
}

// NewPostAssignmentHandler returns a PostAssignmentHandler backed by the given services.
func NewPostAssignmentHandler(svc *appsvcs.Services) *PostAssignmentHandler {
	return &PostAssignmentHandler{svc: svc}
}

// Execute assigns a specimen to a location for the first time.
//
//	@Summary		Assign specimen
//	@Description	First-time placement; specimens already holding a location must be moved instead
//	@Tags			assignments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AssignRequest	true	"Assignment request"
//	@Success		201		{object}	AssignResultResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/storage/assignments [post]
func (h *PostAssignmentHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[AssignRequest](w, r)
	if !ok {
		return
	}

	result, err := h.svc.Ledger.Assign(r.Context(), appsvcs.AssignInput{
		SampleRef:    req.SampleRef,
		LocationID:   req.LocationID,
		LocationType: req.LocationType,
		Coordinate:   req.Coordinate,
		Notes:        req.Notes,
		Actor:        actorOr(r, req.AssignedBy),
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, AssignResultResponse{
		Assignment: assignmentResponse(result.Assignment),
		Path:       result.Path,
		Warning:    result.Warning,
	})
}
