package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/dailyseven/dailyseven-api/internal/domain"
	"github.com/dailyseven/dailyseven-api/internal/platform/logger"
	"github.com/dailyseven/dailyseven-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend. All methods are
// read-only catalog lookups.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// SampleExcluding implements store.TaskStore.SampleExcluding
// Random ordering is delegated to the database; the pgx driver encodes
// the exclusion slice as a bigint array.
func (s *PostgresTaskStore) SampleExcluding(
	ctx context.Context,
	exclude []int64,
	limit int,
) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if exclude == nil {
		exclude = []int64{}
	}

	query := `
		SELECT id, category_id, title, description
		FROM tasks
		WHERE id <> ALL($1)
		ORDER BY random()
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, exclude, limit)
	if err != nil {
		log.Error("failed to sample tasks",
			slog.Int("limit", limit),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(&task.ID, &task.CategoryID, &task.Title, &task.Description); err != nil {
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return tasks, nil
}

// SampleOneExcluding implements store.TaskStore.SampleOneExcluding
func (s *PostgresTaskStore) SampleOneExcluding(
	ctx context.Context,
	exclude []int64,
) (*domain.TaskWithCategory, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if exclude == nil {
		exclude = []int64{}
	}

	query := `
		SELECT t.id, t.category_id, t.title, t.description,
		       c.id, c.slug, c.title
		FROM tasks t
		JOIN categories c ON c.id = t.category_id
		WHERE t.id <> ALL($1)
		ORDER BY random()
		LIMIT 1
	`

	var row domain.TaskWithCategory
	err := s.db.QueryRowContext(ctx, query, exclude).Scan(
		&row.ID,
		&row.CategoryID,
		&row.Title,
		&row.Description,
		&row.Category.ID,
		&row.Category.Slug,
		&row.Category.Title,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to sample replacement task",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return &row, nil
}

// GetWithCategoryByIDs implements store.TaskStore.GetWithCategoryByIDs
func (s *PostgresTaskStore) GetWithCategoryByIDs(
	ctx context.Context,
	ids []int64,
) ([]domain.TaskWithCategory, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT t.id, t.category_id, t.title, t.description,
		       c.id, c.slug, c.title
		FROM tasks t
		JOIN categories c ON c.id = t.category_id
		WHERE t.id = ANY($1)
	`

	rows, err := s.db.QueryContext(ctx, query, ids)
	if err != nil {
		log.Error("failed to load tasks by ids",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var result []domain.TaskWithCategory
	for rows.Next() {
		var row domain.TaskWithCategory
		err := rows.Scan(
			&row.ID,
			&row.CategoryID,
			&row.Title,
			&row.Description,
			&row.Category.ID,
			&row.Category.Slug,
			&row.Category.Title,
		)
		if err != nil {
			return nil, MapError(err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return result, nil
}

// GetCategoriesByIDs implements store.TaskStore.GetCategoriesByIDs
func (s *PostgresTaskStore) GetCategoriesByIDs(
	ctx context.Context,
	ids []int64,
) ([]domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, slug, title
		FROM categories
		WHERE id = ANY($1)
	`

	rows, err := s.db.QueryContext(ctx, query, ids)
	if err != nil {
		log.Error("failed to load categories by ids",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Slug, &category.Title); err != nil {
			return nil, MapError(err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return categories, nil
}
