package handlers

import (
	"net/http"
	"strconv"

	"github.com/ghuser/cryostore/pkg/errhttp"
	"github.com/ghuser/cryostore/pkg/httpx"
	appsvcs "github.com/ghuser/cryostore/services/storage/application/services"
)

// MoveCheckResponse is the impact preview of a location move.
type MoveCheckResponse struct {
	CanMove       bool   `json:"can_move" example:"true"`
	SpecimenCount int    `json:"specimen_count" example:"12"`
	Warning       string `json:"warning,omitempty" example:"moving rack \"Rack 1\" changes the displayed storage path of 12 specimen(s); their assignments are unchanged"`
} // @name MoveCheckResponse

// GetCanMoveHandler handles GET /storage/locations/{id}/can-move requests.
type GetCanMoveHandler struct {
	svc *appsvcs.Services
}

// NewGetCanMoveHandler returns a GetCanMoveHandler backed by the given services.
func NewGetCanMoveHandler(svc *appsvcs.Services) *GetCanMoveHandler {
	return &GetCanMoveHandler{svc: svc}
}

// Execute previews the impact of re-parenting a node.
//
//	@Summary		Check location move impact
//	@Description	Moves are never vetoed; the response warns when stored specimens would see path changes
//	@Tags			locations
//	@Produce		json
//	@Param			id				path		int	true	"Location ID"
//	@Param			new_parent_id	query		int	true	"Prospective parent ID"
//	@Success		200				{object}	MoveCheckResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Router			/storage/locations/{id}/can-move [get]
func (h *GetCanMoveHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := locationIDParam(w, r)
	if !ok {
		return
	}
	newParentID, err := strconv.ParseInt(r.URL.Query().Get("new_parent_id"), 10, 64)
	if err != nil || newParentID <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid new_parent_id")
		return
	}

	check, err := h.svc.Lifecycle.CanMove(r.Context(), id, newParentID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, MoveCheckResponse{
		CanMove:       check.CanMove,
		SpecimenCount: check.SpecimenCount,
		Warning:       check.Warning,
	})
}
