// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/cryostore/pkg/httpx"
	storagedomain "github.com/ghuser/cryostore/services/storage/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, storagedomain.ErrInvalidInput):
		return http.StatusBadRequest // 400
	case errors.Is(err, storagedomain.ErrLocationNotFound),
		errors.Is(err, storagedomain.ErrSampleNotFound),
		errors.Is(err, storagedomain.ErrAssignmentNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, storagedomain.ErrAmbiguousSampleRef),
		errors.Is(err, storagedomain.ErrLocationInactive),
		errors.Is(err, storagedomain.ErrIncompleteHierarchy),
		errors.Is(err, storagedomain.ErrUnsupportedLocationType):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, storagedomain.ErrDuplicateLocationCode),
		errors.Is(err, storagedomain.ErrAlreadyAssigned),
		errors.Is(err, storagedomain.ErrPositionOccupied),
		errors.Is(err, storagedomain.ErrDeleteBlocked),
		errors.Is(err, storagedomain.ErrAlreadyDisposed),
		errors.Is(err, storagedomain.ErrConcurrentModification):
		return http.StatusConflict // 409
	default:
		return http.StatusInternalServerError // 500
	}
}
