package handlers

import (
	"net/http"

	"github.com/ghuser/cryostore/pkg/errhttp"
	"github.com/ghuser/cryostore/pkg/httpx"
	pkgvalidator "github.com/ghuser/cryostore/pkg/validator"
	appsvcs "github.com/ghuser/cryostore/services/storage/application/services"
	"github.com/ghuser/cryostore/services/storage/domain/models"
)

// ValidateBarcodeRequest is the request body for POST /storage/barcodes/validate.
type ValidateBarcodeRequest struct {
	Text string `json:"text" validate:"required" example:"RM1-FRZ2-S3-R4-B5"`
} // @name ValidateBarcodeRequest

// ResolvedComponentResponse is one successfully resolved hierarchy level.
type ResolvedComponentResponse struct {
	ID   int64  `json:"id" example:"7"`
	Name string `json:"name" example:"Freezer 2"`
	Code string `json:"code" example:"FRZ2"`
} // @name ResolvedComponentResponse

// ValidateBarcodeResponse is the outcome of full barcode resolution against
// the stored hierarchy. ValidComponents is keyed by level name and holds
// every level resolved before (and including) the failure point, so a form
// can be pre-filled as deep as resolution got.
type ValidateBarcodeResponse struct {
	Valid                      bool                                 `json:"valid" example:"false"`
	FailedStep                 string                               `json:"failed_step,omitempty" example:"existence"`
	ErrorMessage               string                               `json:"error_message,omitempty" example:"Scanned code: RM1-FRZ2-S9 (Main Lab > Freezer 2): no shelf found with code \"S9\""`
	ValidComponents            map[string]ResolvedComponentResponse `json:"valid_components"`
	FirstMissingLevel          string                               `json:"first_missing_level,omitempty" example:"shelf"`
	HasAdditionalInvalidLevels bool                                 `json:"has_additional_invalid_levels" example:"false"`
} // @name ValidateBarcodeResponse

// PostBarcodeValidateHandler handles POST /storage/barcodes/validate requests.
type PostBarcodeValidateHandler struct {
	svc *appsvcs.Services
}

// NewPostBarcodeValidateHandler returns a PostBarcodeValidateHandler backed by the given services.
func NewPostBarcodeValidateHandler(svc *appsvcs.Services) *PostBarcodeValidateHandler {
	return &PostBarcodeValidateHandler{svc: svc}
}

// Execute resolves a scanned code against the stored hierarchy.
//
//	@Summary		Validate barcode
//	@Description	Runs format, existence, hierarchy, and activity checks; resolution continues past the first failure
//	@Tags			barcodes
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ValidateBarcodeRequest	true	"Barcode validation request"
//	@Success		200		{object}	ValidateBarcodeResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/storage/barcodes/validate [post]
func (h *PostBarcodeValidateHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[ValidateBarcodeRequest](w, r)
	if !ok {
		return
	}

	v, err := h.svc.Barcode.Validate(r.Context(), req.Text)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, barcodeValidationResponse(v))
}

func barcodeValidationResponse(v *models.BarcodeValidation) ValidateBarcodeResponse {
	components := make(map[string]ResolvedComponentResponse, len(v.ValidComponents))
	for level, c := range v.ValidComponents {
		components[string(level)] = ResolvedComponentResponse{ID: c.ID, Name: c.Name, Code: c.Code}
	}
	return ValidateBarcodeResponse{
		Valid:                      v.Valid,
		FailedStep:                 string(v.FailedStep),
		ErrorMessage:               v.ErrorMessage,
		ValidComponents:            components,
		FirstMissingLevel:          string(v.FirstMissingLevel),
		HasAdditionalInvalidLevels: v.HasAdditionalInvalidLevels,
	}
}
