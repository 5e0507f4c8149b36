package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ghuser/cryostore/services/storage/domain/models"
)

// LocationLookup is the read-only tree access the resolver needs. The
// resolver never mutates the hierarchy.
type LocationLookup interface {
	FindByLevelAndCode(ctx context.Context, level models.Level, code string) ([]*models.Location, error)
}

// BarcodeResolver runs the 5-step resolution pipeline over a scanned
// location barcode: format, existence, hierarchy, activity, and (deferred)
// conflict. Resolution continues past the first failure so the deepest
// resolvable level is still reported and the caller can pre-fill a form up
// to the point of failure.
type BarcodeResolver struct {
	lookup LocationLookup
}

// NewBarcodeResolver returns a BarcodeResolver backed by the given lookup.
func NewBarcodeResolver(lookup LocationLookup) *BarcodeResolver {
	return &BarcodeResolver{lookup: lookup}
}

// Resolve validates text against the stored hierarchy. Validation outcomes,
// including failures, live in the returned result; the error return is for
// storage faults only.
//
// Per level, in room → position order:
//   - existence: a node with this code exists anywhere at this level;
//   - hierarchy: its parent matches the level resolved just above it;
//   - activity: the node's own active flag, recorded as a failure but does
//     not block descending, since a found-but-inactive node still anchors
//     the path below it.
//
// A missing or hierarchy-mismatched level stops descent: deeper segments are
// never validated and FirstMissingLevel/HasAdditionalInvalidLevels record
// that. Only the first failure of any kind lands in FailedStep/ErrorMessage.
func (r *BarcodeResolver) Resolve(ctx context.Context, text string) (*models.BarcodeValidation, error) {
	v := &models.BarcodeValidation{
		Valid:           true,
		ValidComponents: make(map[models.Level]models.ResolvedComponent),
	}

	parsed := ParseBarcode(text)
	if !parsed.Valid {
		v.Valid = false
		v.FailedStep = models.StepFormat
		v.ErrorMessage = resolutionMessage(text, nil, parsed.Error)
		return v, nil
	}

	var (
		parent       *models.Location
		labels       []string
		firstFailure string
	)

	fail := func(step models.ValidationStep, detail string) {
		v.Valid = false
		if v.FailedStep == "" {
			v.FailedStep = step
			firstFailure = detail
		}
	}

	for i, code := range parsed.LevelCodes {
		level, _ := models.BarcodeLevelAt(i)

		candidates, err := r.lookup.FindByLevelAndCode(ctx, level, code)
		if err != nil {
			return nil, fmt.Errorf("resolve barcode level %s: %w", level, err)
		}

		if len(candidates) == 0 {
			fail(models.StepExistence, fmt.Sprintf("no %s found with code %q", level.BarcodeName(), code))
			v.FirstMissingLevel = level
			v.HasAdditionalInvalidLevels = i+1 < len(parsed.LevelCodes)
			break
		}

		node := matchParent(candidates, parent)
		if node == nil {
			fail(models.StepHierarchy, fmt.Sprintf("%s %q is not inside %s %q",
				level.BarcodeName(), code, parent.Level.BarcodeName(), parent.Label))
			v.FirstMissingLevel = level
			v.HasAdditionalInvalidLevels = i+1 < len(parsed.LevelCodes)
			break
		}

		v.ValidComponents[level] = models.ResolvedComponent{
			ID:   node.ID,
			Name: node.Label,
			Code: node.Code,
		}
		labels = append(labels, node.Label)

		if !node.Active {
			fail(models.StepActivity, fmt.Sprintf("%s %q is inactive", level.BarcodeName(), node.Label))
		}

		parent = node
	}

	if !v.Valid {
		v.ErrorMessage = resolutionMessage(text, labels, firstFailure)
	}
	return v, nil
}

// matchParent picks the candidate whose parent is the already-resolved node
// above it. With no resolved parent (room level) the first candidate wins:
// room codes are globally unique.
func matchParent(candidates []*models.Location, parent *models.Location) *models.Location {
	if parent == nil {
		return candidates[0]
	}
	for _, c := range candidates {
		if c.ParentID != nil && *c.ParentID == parent.ID {
			return c
		}
	}
	return nil
}

// resolutionMessage builds the deterministic user-facing failure text:
// the raw scanned code, the resolved level labels in order when any exist,
// and the specific failure, falling back to a generic format message.
func resolutionMessage(raw string, labels []string, detail string) string {
	if detail == "" {
		detail = "Invalid barcode format."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Scanned code: %s", raw)
	if len(labels) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(labels, " > "))
	}
	fmt.Fprintf(&b, ": %s", detail)
	return b.String()
}
