package services

import (
	"context"
	"fmt"

	storagedomain "github.com/ghuser/cryostore/services/storage/domain"
	"github.com/ghuser/cryostore/services/storage/domain/models"
	domainsvcs "github.com/ghuser/cryostore/services/storage/domain/services"
)

// BarcodeService exposes barcode parsing and resolution to the transport
// layer. Parsing and type detection are pure; Resolve reads the hierarchy.
type BarcodeService struct {
	resolver *domainsvcs.BarcodeResolver
}

// NewBarcodeService returns a BarcodeService over the given location lookup.
func NewBarcodeService(lookup domainsvcs.LocationLookup) *BarcodeService {
	return &BarcodeService{resolver: domainsvcs.NewBarcodeResolver(lookup)}
}

// Parse splits a scanned code into its level segments without touching the
// database. Invalid input is reported in the result, not as an error.
func (s *BarcodeService) Parse(text string) *models.ParsedBarcode {
	p := domainsvcs.ParseBarcode(text)
	return &p
}

// DetectType classifies a scanned code as a location barcode, a specimen
// identifier, or unknown.
func (s *BarcodeService) DetectType(text string) models.BarcodeType {
	return domainsvcs.DetectBarcodeType(text)
}

// Validate runs the full resolution pipeline against the stored hierarchy.
func (s *BarcodeService) Validate(ctx context.Context, text string) (*models.BarcodeValidation, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: barcode text is required", storagedomain.ErrInvalidInput)
	}
	v, err := s.resolver.Resolve(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("validate barcode: %w", err)
	}
	return v, nil
}
