package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/cryostore/pkg/auth"
	"github.com/ghuser/cryostore/pkg/httpx"
)

// locationIDParam parses the {id} path parameter. On failure it writes a 400
// response and returns ok=false.
func locationIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid location id")
		return 0, false
	}
	return id, true
}

// actorOr resolves the acting user: the authenticated session user when
// present, otherwise the fallback supplied in the request body.
func actorOr(r *http.Request, fallback string) string {
	if userID, err := auth.UserIDFromCtx(r.Context()); err == nil {
		return userID.String()
	}
	return fallback
}
