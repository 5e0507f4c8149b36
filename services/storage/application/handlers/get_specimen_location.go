package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/cryostore/pkg/errhttp"
	"github.com/ghuser/cryostore/pkg/httpx"
	appsvcs "github.com/ghuser/cryostore/services/storage/application/services"
)

// SpecimenLocationResponse is where a specimen currently lives. Assignment is
// null when the specimen was never assigned; Path is empty when it holds no
// location (for example after disposal).
type SpecimenLocationResponse struct {
	SampleItemID    int64               `json:"sample_item_id" example:"1042"`
	AccessionNumber string              `json:"accession_number" example:"ACC-2024-0042"`
	Status          string              `json:"status" example:"stored"`
	Assignment      *AssignmentResponse `json:"assignment"`
	Path            string              `json:"path,omitempty" example:"Main Lab > Freezer 2 > Shelf 3 > Rack 4 > Box 5 > A3"`
} // @name SpecimenLocationResponse

// GetSpecimenLocationHandler handles GET /storage/specimens/{ref}/location requests.
type GetSpecimenLocationHandler struct {
	svc *appsvcs.Services
}

// NewGetSpecimenLocationHandler returns a GetSpecimenLocationHandler backed by the given services.
func NewGetSpecimenLocationHandler(svc *appsvcs.Services) *GetSpecimenLocationHandler {
	return &GetSpecimenLocationHandler{svc: svc}
}

// Execute resolves a specimen reference to its current location and display path.
//
//	@Summary		Specimen location
//	@Description	Resolves the reference by numeric ID, accession number, or external reference
//	@Tags			specimens
//	@Produce		json
//	@Param			ref	path		string	true	"Specimen reference"
//	@Success		200	{object}	SpecimenLocationResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Router			/storage/specimens/{ref}/location [get]
func (h *GetSpecimenLocationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")

	loc, err := h.svc.Ledger.ResolveSpecimenLocation(r.Context(), ref)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := SpecimenLocationResponse{
		SampleItemID:    loc.Sample.ID,
		AccessionNumber: loc.Sample.AccessionNumber,
		Status:          string(loc.Sample.Status),
		Path:            loc.Path,
	}
	if loc.Assignment != nil {
		a := assignmentResponse(loc.Assignment)
		resp.Assignment = &a
	}
	httpx.JSON(w, http.StatusOK, resp)
}
