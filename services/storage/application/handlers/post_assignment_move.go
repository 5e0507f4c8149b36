package handlers

import (
	"net/http"

	"github.com/ghuser/cryostore/pkg/errhttp"
	"github.com/ghuser/cryostore/pkg/httpx"
	pkgvalidator "github.com/ghuser/cryostore/pkg/validator"
	appsvcs "github.com/ghuser/cryostore/services/storage/application/services"
)

// MoveAssignmentRequest is the request body for POST /storage/assignments/move.
type MoveAssignmentRequest struct {
	SampleRef    string `json:"sample_ref" validate:"required" example:"ACC-2024-0042"`
	LocationID   int64  `json:"location_id" validate:"required,gt=0" example:"9"`
	LocationType string `json:"location_type" validate:"required" example:"box"`
	Coordinate   string `json:"coordinate" validate:"max=50" example:"B1"`
	Reason       string `json:"reason" validate:"max=500" example:"freezer defrost"`
	MovedBy      string `json:"moved_by" validate:"max=255" example:"jdoe"`
} // @name MoveAssignmentRequest

// PostAssignmentMoveHandler handles POST /storage/assignments/move requests.
type PostAssignmentMoveHandler struct {
	svc *appsvcs.Services
}

// NewPostAssignmentMoveHandler returns a PostAssignmentMoveHandler backed by the given services.
func NewPostAssignmentMoveHandler(svc *appsvcs.Services) *PostAssignmentMoveHandler {
	return &PostAssignmentMoveHandler{svc: svc}
}

// Execute relocates a specimen, recording the prior location in the audit trail.
//
//	@Summary		Move specimen
//	@Description	Relocates an assigned specimen; the movement row records where it came from
//	@Tags			assignments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		MoveAssignmentRequest	true	"Move request"
//	@Success		200		{object}	AssignResultResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/storage/assignments/move [post]
func (h *PostAssignmentMoveHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[MoveAssignmentRequest](w, r)
	if !ok {
		return
	}

	result, err := h.svc.Ledger.Move(r.Context(), appsvcs.MoveInput{
		SampleRef:    req.SampleRef,
		LocationID:   req.LocationID,
		LocationType: req.LocationType,
		Coordinate:   req.Coordinate,
		Reason:       req.Reason,
		Actor:        actorOr(r, req.MovedBy),
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, AssignResultResponse{
		Assignment: assignmentResponse(result.Assignment),
		Path:       result.Path,
		Warning:    result.Warning,
	})
}
