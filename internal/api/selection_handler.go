package api

import (
	"net/http"

	"github.com/dailyseven/dailyseven-api/internal/api/shared"
	"github.com/dailyseven/dailyseven-api/internal/service/task_selection"
)

// SelectionHandler handles the daily task selection endpoints.
type SelectionHandler struct {
	selectionService task_selection.SelectionService
}

// NewSelectionHandler creates a new SelectionHandler with the given
// dependencies.
func NewSelectionHandler(selectionService task_selection.SelectionService) *SelectionHandler {
	return &SelectionHandler{
		selectionService: selectionService,
	}
}

// GetSelection handles GET /get_selection: it returns today's selection for
// the authenticated user, generating one when none fresh exists.
func (h *SelectionHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Access denied")
		return
	}

	result, err := h.selectionService.GetSelection(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "", result.Items)
}

// TickTask handles POST /tick_task: it marks a task in the current selection
// as completed. Success is a bare 204; ticking an already completed task is
// a 204 as well.
func (h *SelectionHandler) TickTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Access denied")
		return
	}

	var req TaskActionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.selectionService.TickTask(r.Context(), userID, task_selection.TaskParams{
		UserID: req.UserID,
		TaskID: req.TaskID,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ChangeTask handles POST /change_task: it swaps a task in the current
// selection for a random unseen one and returns the replacement. When every
// remaining task is already used up the response is a bare 204.
func (h *SelectionHandler) ChangeTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Access denied")
		return
	}

	var req TaskActionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.selectionService.ChangeTask(r.Context(), userID, task_selection.TaskParams{
		UserID: req.UserID,
		TaskID: req.TaskID,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "", item)
}
