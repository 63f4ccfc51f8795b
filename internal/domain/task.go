package domain

import "errors"

// Task-specific validation errors
var (
	// ErrTaskIDInvalid is returned when a task ID is zero or negative.
	ErrTaskIDInvalid = errors.New("task ID must be positive")

	// ErrTaskCategoryInvalid is returned when a task's category ID is zero or negative.
	ErrTaskCategoryInvalid = errors.New("task category ID must be positive")

	// ErrTaskTitleEmpty is returned when a task's title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrCategorySlugEmpty is returned when a category's slug is empty.
	ErrCategorySlugEmpty = errors.New("category slug cannot be empty")
)

// Task represents a single assignable task from the shared catalog.
// Tasks are immutable from the application's perspective; the catalog
// owns them.
type Task struct {
	ID          int64  `json:"id"`
	CategoryID  int64  `json:"category_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID < 1 {
		return ErrTaskIDInvalid
	}
	if t.CategoryID < 1 {
		return ErrTaskCategoryInvalid
	}
	if t.Title == "" {
		return ErrTaskTitleEmpty
	}
	return nil
}

// Category represents a task category. Immutable, owned by the catalog.
type Category struct {
	ID    int64  `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if c.ID < 1 {
		return ErrInvalidID
	}
	if c.Slug == "" {
		return ErrCategorySlugEmpty
	}
	return nil
}

// TaskWithCategory is a task joined with its fully resolved category,
// as produced by catalog lookups.
type TaskWithCategory struct {
	Task
	Category Category
}
