// Package task_selection provides the service orchestrating a user's daily
// task selection: resolving today's selection, marking tasks done, and
// swapping tasks for replacements.
package task_selection

import (
	"context"
	"errors"

	"github.com/dailyseven/dailyseven-api/internal/domain/selection"
)

// TaskParams carries the validated identifiers of a tick or change
// request. UserID is the id asserted in the request payload; it must match
// the authenticated user.
type TaskParams struct {
	UserID int64
	TaskID int64
}

// Result is a resolved selection ready for rendering to the client.
type Result struct {
	Type  selection.ListType
	Items []selection.Item
}

// SelectionService resolves, mutates and renders a user's daily task
// selection. All mutating operations run inside a per-user transaction
// that locks the user row, so concurrent requests for the same user are
// serialized rather than silently losing writes.
type SelectionService interface {
	// GetSelection returns today's selection for the user, reusing the
	// stored one when it was generated today and generating a fresh one
	// otherwise. Generation persists the new selection list and date.
	//
	// Returns:
	//   - (*Result, nil): the rendered selection
	//   - (nil, ErrTasksNotFound): the catalog has no tasks and the user
	//     has no completions (or a reused selection resolves to nothing)
	//   - (nil, ErrAllTasksDone): the user has completed the whole catalog;
	//     a terminal success state, not a failure
	//   - (nil, ErrCategoriesNotFound): tasks resolved but their categories
	//     did not; indicates catalog data corruption
	GetSelection(ctx context.Context, userID int64) (*Result, error)

	// TickTask marks a task in the user's current selection as completed.
	// The operation is idempotent: ticking an already-completed task
	// succeeds without changing state. The task's existence in the catalog
	// is not re-verified; the id must come from a prior selection render.
	//
	// Returns ErrAccessDenied if params.UserID differs from userID, and
	// ErrTaskNotInSelection if the task is not in the current selection.
	TickTask(ctx context.Context, userID int64, params TaskParams) error

	// ChangeTask swaps a task in the user's current selection for one
	// drawn uniformly at random from outside the union of the selection
	// and the done set, replacing every occurrence positionally.
	//
	// Returns:
	//   - (*selection.Item, nil): the rendered replacement task
	//   - (nil, ErrTaskNotFound): no replacement exists and the user has
	//     no completions
	//   - (nil, ErrNoTasksToReplace): no replacement exists but the user
	//     has completions; a terminal success state
	//   - (nil, ErrAccessDenied / ErrTaskNotInSelection): parameter
	//     validation failures, as for TickTask
	ChangeTask(ctx context.Context, userID int64, params TaskParams) (*selection.Item, error)
}

// Common error types for SelectionService
var (
	// ErrTasksNotFound indicates the catalog yielded no tasks for a user
	// with no prior completions.
	ErrTasksNotFound = errors.New("tasks not found")

	// ErrAllTasksDone indicates the user has completed every task in the
	// catalog. This is a terminal success state, not a failure.
	ErrAllTasksDone = errors.New("all tasks have been completed")

	// ErrCategoriesNotFound indicates tasks resolved but the batched
	// category lookup returned nothing.
	ErrCategoriesNotFound = errors.New("categories not found")

	// ErrTaskNotFound indicates no replacement task exists for a user
	// with no prior completions.
	ErrTaskNotFound = errors.New("task not found")

	// ErrNoTasksToReplace indicates no replacement task exists but the
	// user has prior completions. A terminal success state.
	ErrNoTasksToReplace = errors.New("no tasks to replace")

	// ErrAccessDenied indicates the user id asserted in the payload does
	// not match the authenticated user.
	ErrAccessDenied = errors.New("access denied")

	// ErrTaskNotInSelection indicates the requested task id is not part
	// of the user's current selection list.
	ErrTaskNotInSelection = errors.New("requested task id not in selection list")
)
