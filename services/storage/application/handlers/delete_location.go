package handlers

import (
	"net/http"

	"github.com/ghuser/cryostore/pkg/errhttp"
	appsvcs "github.com/ghuser/cryostore/services/storage/application/services"
)

// DeleteLocationHandler handles DELETE /storage/locations/{id} requests.
type DeleteLocationHandler struct {
	svc *appsvcs.Services
}

// NewDeleteLocationHandler returns a DeleteLocationHandler backed by the given services.
func NewDeleteLocationHandler(svc *appsvcs.Services) *DeleteLocationHandler {
	return &DeleteLocationHandler{svc: svc}
}

// Execute deletes a node. Without cascade=true the delete is refused while
// children or stored specimens exist; with it the entire subtree is removed
// and every specimen in it unassigned. Callers should surface the
// cascade-summary preview before sending cascade=true.
//
//	@Summary		Delete storage location
//	@Description	Ordinary delete, or full subtree cascade with ?cascade=true
//	@Tags			locations
//	@Param			id		path	int		true	"Location ID"
//	@Param			cascade	query	bool	false	"Delete the whole subtree, unassigning stored specimens"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Router			/storage/locations/{id} [delete]
func (h *DeleteLocationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := locationIDParam(w, r)
	if !ok {
		return
	}

	var err error
	if r.URL.Query().Get("cascade") == "true" {
		err = h.svc.Lifecycle.DeleteWithCascade(r.Context(), id)
	} else {
		err = h.svc.Lifecycle.Delete(r.Context(), id)
	}
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
