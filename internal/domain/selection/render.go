package selection

import "github.com/dailyseven/dailyseven-api/internal/domain"

// Status is the completion status of a rendered task.
type Status string

const (
	StatusCompleted    Status = "completed"
	StatusNotCompleted Status = "not completed"
)

// ListType tags a rendered selection as freshly generated or reused.
type ListType string

const (
	// TypeNew marks a selection generated during this request.
	TypeNew ListType = "new"

	// TypeCurrent marks a selection reused from an earlier request today.
	TypeCurrent ListType = "current"
)

// Item is a task rendered for the client: the task with its resolved
// category and completion status.
type Item struct {
	ID          int64           `json:"id"`
	Status      Status          `json:"status"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    domain.Category `json:"category"`
}

// RenderNew renders freshly sampled tasks, resolving each task's category
// from the batched category lookup. Newly selected tasks are by definition
// not completed. A task whose category is missing from the map is rendered
// with a zero category; the zero-rows integrity case is the service
// layer's concern.
func RenderNew(tasks []domain.Task, categories map[int64]domain.Category) []Item {
	items := make([]Item, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, Item{
			ID:          task.ID,
			Status:      StatusNotCompleted,
			Title:       task.Title,
			Description: task.Description,
			Category:    categories[task.CategoryID],
		})
	}
	return items
}

// RenderCurrent renders an existing selection in selection-list order.
// rows is the catalog join result for the list's ids; ids missing from the
// catalog are simply absent from the output. Completion status is computed
// from the done set at render time, so ticked tasks stay in the list but
// render as completed.
func RenderCurrent(order []int64, rows []domain.TaskWithCategory, done []int64) []Item {
	byID := make(map[int64]domain.TaskWithCategory, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	items := make([]Item, 0, len(order))
	for _, id := range order {
		row, ok := byID[id]
		if !ok {
			continue
		}

		status := StatusNotCompleted
		if containsID(done, id) {
			status = StatusCompleted
		}

		items = append(items, Item{
			ID:          row.ID,
			Status:      status,
			Title:       row.Title,
			Description: row.Description,
			Category:    row.Category,
		})
	}
	return items
}

// RenderItem renders a single joined task, always as not completed.
// Used for the replacement task returned by a swap.
func RenderItem(row domain.TaskWithCategory) Item {
	return Item{
		ID:          row.ID,
		Status:      StatusNotCompleted,
		Title:       row.Title,
		Description: row.Description,
		Category:    row.Category,
	}
}
