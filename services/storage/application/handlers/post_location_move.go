package handlers

import (
	"net/http"

	"github.com/ghuser/cryostore/pkg/errhttp"
	"github.com/ghuser/cryostore/pkg/httpx"
	pkgvalidator "github.com/ghuser/cryostore/pkg/validator"
	appsvcs "github.com/ghuser/cryostore/services/storage/application/services"
)

// MoveLocationRequest is the request body for POST /storage/locations/{id}/move.
type MoveLocationRequest struct {
	NewParentID int64 `json:"new_parent_id" validate:"required,gt=0" example:"12"`
	Version     int   `json:"version" validate:"gte=1" example:"3"`
} // @name MoveLocationRequest

// MoveLocationResponse is returned on a successful move. Warning is set when
// stored specimens will see their displayed paths change.
type MoveLocationResponse struct {
	Location LocationResponse `json:"location"`
	Warning  string           `json:"warning,omitempty" example:"moving rack \"Rack 1\" changes the displayed storage path of 12 specimen(s); their assignments are unchanged"`
} // @name MoveLocationResponse

// PostLocationMoveHandler handles POST /storage/locations/{id}/move requests.
type PostLocationMoveHandler struct {
	svc *appsvcs.Services
}

// NewPostLocationMoveHandler returns a PostLocationMoveHandler backed by the given services.
func NewPostLocationMoveHandler(svc *appsvcs.Services) *PostLocationMoveHandler {
	return &PostLocationMoveHandler{svc: svc}
}

// Execute re-parents a node one level above it.
//
//	@Summary		Move storage location
//	@Description	Re-parents a node; assignments are untouched but display paths change
//	@Tags			locations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Location ID"
//	@Param			request	body		MoveLocationRequest	true	"Location move request"
//	@Success		200		{object}	MoveLocationResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/storage/locations/{id}/move [post]
func (h *PostLocationMoveHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := locationIDParam(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[MoveLocationRequest](w, r)
	if !ok {
		return
	}

	check, err := h.svc.Lifecycle.CanMove(r.Context(), id, req.NewParentID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	loc, err := h.svc.Lifecycle.MoveLocation(r.Context(), id, req.NewParentID, req.Version)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, MoveLocationResponse{
		Location: locationResponse(loc),
		Warning:  check.Warning,
	})
}
