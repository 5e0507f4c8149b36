package handlers

import (
	"net/http"

	"github.com/ghuser/cryostore/pkg/errhttp"
	"github.com/ghuser/cryostore/pkg/httpx"
	appsvcs "github.com/ghuser/cryostore/services/storage/application/services"
)

// GetLocationHandler handles GET /storage/locations/{id} requests.
type GetLocationHandler struct {
	svc *appsvcs.Services
}

// NewGetLocationHandler returns a GetLocationHandler backed by the given services.
func NewGetLocationHandler(svc *appsvcs.Services) *GetLocationHandler {
	return &GetLocationHandler{svc: svc}
}

// Execute returns a single hierarchy node.
//
//	@Summary		Get storage location
//	@Tags			locations
//	@Produce		json
//	@Param			id	path		int	true	"Location ID"
//	@Success		200	{object}	LocationResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/storage/locations/{id} [get]
func (h *GetLocationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := locationIDParam(w, r)
	if !ok {
		return
	}

	loc, err := h.svc.Lifecycle.GetLocation(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, locationResponse(loc))
}
