package handlers

import (
	"net/http"

	"github.com/ghuser/cryostore/pkg/errhttp"
	"github.com/ghuser/cryostore/pkg/httpx"
	appsvcs "github.com/ghuser/cryostore/services/storage/application/services"
)

// CapacityResponse is the effective capacity of a node. Value is absent when
// the tier is undetermined.
type CapacityResponse struct {
	Tier  string `json:"tier" example:"calculated"`
	Value *int   `json:"value,omitempty" example:"486"`
} // @name CapacityResponse

// GetCapacityHandler handles GET /storage/locations/{id}/capacity requests.
type GetCapacityHandler struct {
	svc *appsvcs.Services
}

// NewGetCapacityHandler returns a GetCapacityHandler backed by the given services.
func NewGetCapacityHandler(svc *appsvcs.Services) *GetCapacityHandler {
	return &GetCapacityHandler{svc: svc}
}

// Execute computes the two-tier effective capacity of a node.
//
//	@Summary		Location capacity
//	@Description	Manual override when set, otherwise recursively summed from children; undetermined when any leaf is unmeasured
//	@Tags			locations
//	@Produce		json
//	@Param			id	path		int	true	"Location ID"
//	@Success		200	{object}	CapacityResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/storage/locations/{id}/capacity [get]
func (h *GetCapacityHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := locationIDParam(w, r)
	if !ok {
		return
	}

	c, err := h.svc.Lifecycle.Capacity(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := CapacityResponse{Tier: string(c.Tier)}
	if c.Known() {
		v := c.Value
		resp.Value = &v
	}
	httpx.JSON(w, http.StatusOK, resp)
}
