package api

import (
	"net/http"

	"github.com/dailyseven/dailyseven-api/internal/api/shared"
)

// getUserIDFromContext extracts the authenticated user's id from the request
// context. The id is placed there by the authentication middleware; a missing
// or non-positive id means the middleware did not run.
func getUserIDFromContext(r *http.Request) (int64, bool) {
	userID, ok := shared.UserID(r.Context())
	if !ok || userID < 1 {
		return 0, false
	}
	return userID, true
}

// HandleAPIError maps a service error onto the HTTP surface: status code from
// MapErrorToStatusCode, sanitized message from GetSafeErrorMessage (or the
// override when given). 204 carries no body.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, messageOverride string) {
	status := MapErrorToStatusCode(err)

	if status == http.StatusNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	message := messageOverride
	if message == "" {
		message = GetSafeErrorMessage(err)
	}

	if status >= http.StatusInternalServerError {
		shared.RespondWithErrorAndLog(w, r, status, message, err)
		return
	}
	shared.RespondWithError(w, r, status, message)
}

// decodeAndValidate decodes the JSON body into req and runs struct
// validation, writing the 400 response itself on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return false
	}

	return true
}
