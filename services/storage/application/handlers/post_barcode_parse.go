package handlers

import (
	"net/http"

	"github.com/ghuser/cryostore/pkg/httpx"
	pkgvalidator "github.com/ghuser/cryostore/pkg/validator"
	appsvcs "github.com/ghuser/cryostore/services/storage/application/services"
)

// ParseBarcodeRequest is the request body for POST /storage/barcodes/parse.
type ParseBarcodeRequest struct {
	Text string `json:"text" validate:"required" example:"RM1-FRZ2-S3-R4-B5"`
} // @name ParseBarcodeRequest

// ParseBarcodeResponse is the structural parse of a scanned code. No database
// access happens here; use the validate endpoint for full resolution.
type ParseBarcodeResponse struct {
	Valid       bool     `json:"valid" example:"true"`
	BarcodeType string   `json:"barcode_type" example:"location"`
	LevelCodes  []string `json:"level_codes,omitempty" example:"RM1,FRZ2,S3,R4,B5"`
	Error       string   `json:"error,omitempty" example:"barcode must contain between 2 and 5 segments"`
} // @name ParseBarcodeResponse

// PostBarcodeParseHandler handles POST /storage/barcodes/parse requests.
type PostBarcodeParseHandler struct {
	svc *appsvcs.Services
}

// NewPostBarcodeParseHandler returns a PostBarcodeParseHandler backed by the given services.
func NewPostBarcodeParseHandler(svc *appsvcs.Services) *PostBarcodeParseHandler {
	return &PostBarcodeParseHandler{svc: svc}
}

// Execute splits a scanned code into level segments and classifies it.
//
//	@Summary		Parse barcode
//	@Description	Splits a scanned code into hierarchy segments and detects whether it is a location or specimen code
//	@Tags			barcodes
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ParseBarcodeRequest	true	"Barcode parse request"
//	@Success		200		{object}	ParseBarcodeResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/storage/barcodes/parse [post]
func (h *PostBarcodeParseHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[ParseBarcodeRequest](w, r)
	if !ok {
		return
	}

	parsed := h.svc.Barcode.Parse(req.Text)
	httpx.JSON(w, http.StatusOK, ParseBarcodeResponse{
		Valid:       parsed.Valid,
		BarcodeType: string(h.svc.Barcode.DetectType(req.Text)),
		LevelCodes:  parsed.LevelCodes,
		Error:       parsed.Error,
	})
}
