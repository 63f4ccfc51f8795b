package store

import (
	"context"
	"database/sql"

	"github.com/dailyseven/dailyseven-api/internal/domain"
)

// TaskStore defines the interface for catalog lookups over tasks and
// categories. The catalog is read-only; no method mutates data.
type TaskStore interface {
	// SampleExcluding returns up to limit tasks whose ids are not in
	// exclude, in random order. True randomness is part of the contract:
	// repeated calls with identical arguments need not return the same
	// set. An empty result is not an error.
	SampleExcluding(ctx context.Context, exclude []int64, limit int) ([]domain.Task, error)

	// SampleOneExcluding returns one task picked uniformly at random from
	// the catalog, joined with its category, whose id is not in exclude.
	// Returns ErrTaskNotFound if no such task exists.
	SampleOneExcluding(ctx context.Context, exclude []int64) (*domain.TaskWithCategory, error)

	// GetWithCategoryByIDs returns the tasks with the given ids joined
	// with their categories. Ids missing from the catalog are simply
	// absent from the result; an empty result is not an error.
	GetWithCategoryByIDs(ctx context.Context, ids []int64) ([]domain.TaskWithCategory, error)

	// GetCategoriesByIDs returns the categories with the given ids in a
	// single batched lookup. Missing ids are absent from the result.
	GetCategoriesByIDs(ctx context.Context, ids []int64) ([]domain.Category, error)

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service).
	WithTx(tx *sql.Tx) TaskStore
}
