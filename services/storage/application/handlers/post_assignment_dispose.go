package handlers

import (
	"net/http"

	"github.com/ghuser/cryostore/pkg/errhttp"
	"github.com/ghuser/cryostore/pkg/httpx"
	pkgvalidator "github.com/ghuser/cryostore/pkg/validator"
	appsvcs "github.com/ghuser/cryostore/services/storage/application/services"
)

// DisposeRequest is the request body for POST /storage/assignments/dispose.
type DisposeRequest struct {
	SampleRef  string `json:"sample_ref" validate:"required" example:"ACC-2024-0042"`
	Reason     string `json:"reason" validate:"required,max=500" example:"study completed"`
	Method     string `json:"method" validate:"required,max=255" example:"autoclave"`
	Notes      string `json:"notes" validate:"max=1000" example:"batch 12"`
	DisposedBy string `json:"disposed_by" validate:"max=255" example:"jdoe"`
} // @name DisposeRequest

// DisposeResponse is returned on a successful disposal.
type DisposeResponse struct {
	FormerPath string `json:"former_path,omitempty" example:"Main Lab > Freezer 2 > Shelf 3 > Rack 4 > Box 5 > A3"`
	Message    string `json:"message" example:"specimen \"ACC-2024-0042\" removed from Main Lab > Freezer 2 > Shelf 3 > Rack 4 > Box 5 > A3 and disposed (autoclave: study completed)"`
} // @name DisposeResponse

// PostAssignmentDisposeHandler handles POST /storage/assignments/dispose requests.
type PostAssignmentDisposeHandler struct {
	svc *appsvcs.Services
}

// NewPostAssignmentDisposeHandler returns a PostAssignmentDisposeHandler backed by the given services.
func NewPostAssignmentDisposeHandler(svc *appsvcs.Services) *PostAssignmentDisposeHandler {
	return &PostAssignmentDisposeHandler{svc: svc}
}

// Execute disposes a specimen, clearing its location while keeping the
// assignment row and full movement history.
//
//	@Summary		Dispose specimen
//	@Description	Terminal state; the assignment row is kept with null location fields
//	@Tags			assignments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		DisposeRequest	true	"Disposal request"
//	@Success		200		{object}	DisposeResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/storage/assignments/dispose [post]
func (h *PostAssignmentDisposeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[DisposeRequest](w, r)
	if !ok {
		return
	}

	result, err := h.svc.Ledger.Dispose(r.Context(), appsvcs.DisposeInput{
		SampleRef: req.SampleRef,
		Reason:    req.Reason,
		Method:    req.Method,
		Notes:     req.Notes,
		Actor:     actorOr(r, req.DisposedBy),
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, DisposeResponse{
		FormerPath: result.FormerPath,
		Message:    result.Message,
	})
}
