package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/cryostore/pkg/errhttp"
	"github.com/ghuser/cryostore/pkg/httpx"
	appsvcs "github.com/ghuser/cryostore/services/storage/application/services"
	"github.com/ghuser/cryostore/services/storage/domain/models"
)

// LocationStampResponse is one side of a movement: where the specimen was or
// where it went.
type LocationStampResponse struct {
	Location   LocationRefResponse `json:"location"`
	Coordinate string              `json:"coordinate,omitempty" example:"A3"`
} // @name LocationStampResponse

// MovementResponse is one immutable audit record. Previous is null for the
// first assignment; New is null only for a disposal.
type MovementResponse struct {
	ID           int64                  `json:"id" example:"88"`
	SampleItemID int64                  `json:"sample_item_id" example:"1042"`
	Previous     *LocationStampResponse `json:"previous"`
	New          *LocationStampResponse `json:"new"`
	MovedAt      time.Time              `json:"moved_at" example:"2024-01-15T10:30:00Z"`
	MovedBy      string                 `json:"moved_by" example:"jdoe"`
	Reason       string                 `json:"reason,omitempty" example:"freezer defrost"`
} // @name MovementResponse

// MovementListResponse wraps a specimen's movement history, oldest first.
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
} // @name MovementListResponse

// GetSpecimenMovementsHandler handles GET /storage/specimens/{ref}/movements requests.
type GetSpecimenMovementsHandler struct {
	svc *appsvcs.Services
}

// NewGetSpecimenMovementsHandler returns a GetSpecimenMovementsHandler backed by the given services.
func NewGetSpecimenMovementsHandler(svc *appsvcs.Services) *GetSpecimenMovementsHandler {
	return &GetSpecimenMovementsHandler{svc: svc}
}

// Execute lists a specimen's full movement history.
//
//	@Summary		Specimen movement history
//	@Description	Append-only audit trail of every assign, move, and dispose, oldest first
//	@Tags			specimens
//	@Produce		json
//	@Param			ref	path		string	true	"Specimen reference"
//	@Success		200	{object}	MovementListResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Router			/storage/specimens/{ref}/movements [get]
func (h *GetSpecimenMovementsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")

	movements, err := h.svc.Ledger.Movements(r.Context(), ref)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := MovementListResponse{Movements: make([]MovementResponse, 0, len(movements))}
	for _, mv := range movements {
		resp.Movements = append(resp.Movements, movementResponse(mv))
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func movementResponse(mv *models.Movement) MovementResponse {
	resp := MovementResponse{
		ID:           mv.ID,
		SampleItemID: mv.SampleItemID,
		MovedAt:      mv.MovedAt,
		MovedBy:      mv.MovedBy,
		Reason:       mv.Reason,
	}
	resp.Previous = stampResponse(mv.Previous)
	resp.New = stampResponse(mv.New)
	return resp
}

func stampResponse(s *models.LocationStamp) *LocationStampResponse {
	if s == nil {
		return nil
	}
	return &LocationStampResponse{
		Location:   LocationRefResponse{Type: string(s.Ref.Type), ID: s.Ref.ID},
		Coordinate: s.Coordinate,
	}
}
