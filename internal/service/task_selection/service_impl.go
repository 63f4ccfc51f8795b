package task_selection

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dailyseven/dailyseven-api/internal/domain"
	"github.com/dailyseven/dailyseven-api/internal/domain/selection"
	"github.com/dailyseven/dailyseven-api/internal/platform/logger"
	"github.com/dailyseven/dailyseven-api/internal/store"
)

// Verify interface compliance at compile time
var _ SelectionService = (*selectionServiceImpl)(nil)

// selectionServiceImpl implements the SelectionService interface.
type selectionServiceImpl struct {
	db        *sql.DB
	taskStore store.TaskStore
	userStore store.UserStore
	logger    *slog.Logger
	timeFunc  func() time.Time // Injectable for testing
	runTx     func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewSelectionService creates a new SelectionService implementation.
func NewSelectionService(
	db *sql.DB,
	taskStore store.TaskStore,
	userStore store.UserStore,
	logger *slog.Logger,
) SelectionService {
	if taskStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskStore cannot be nil")
	}
	if userStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("userStore cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &selectionServiceImpl{
		db:        db,
		taskStore: taskStore,
		userStore: userStore,
		logger:    logger.With(slog.String("component", "selection_service")),
		timeFunc:  time.Now,
		runTx:     store.RunInTransaction,
	}
}

// GetSelection implements SelectionService.GetSelection.
func (s *selectionServiceImpl) GetSelection(ctx context.Context, userID int64) (*Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var result *Result
	err := s.runInTransaction(ctx, func(ctx context.Context, users store.UserStore, tasks store.TaskStore) error {
		state, err := s.loadState(ctx, users, userID)
		if err != nil {
			return err
		}

		now := s.timeFunc()
		if state.HasCurrent(now) {
			r, err := s.renderCurrent(ctx, tasks, state)
			if err != nil {
				return err
			}
			result = r
			return nil
		}

		r, err := s.generate(ctx, users, tasks, userID, state, now)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug("selection resolved",
		slog.Int64("user_id", userID),
		slog.String("type", string(result.Type)),
		slog.Int("items", len(result.Items)))
	return result, nil
}

// renderCurrent renders the stored selection without mutating anything.
// Ids missing from the catalog are absent from the result; only a fully
// empty lookup is an error.
func (s *selectionServiceImpl) renderCurrent(
	ctx context.Context,
	tasks store.TaskStore,
	state selection.State,
) (*Result, error) {
	rows, err := tasks.GetWithCategoryByIDs(ctx, state.List)
	if err != nil {
		return nil, fmt.Errorf("failed to load current selection: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrTasksNotFound
	}

	return &Result{
		Type:  selection.TypeCurrent,
		Items: selection.RenderCurrent(state.List, rows, state.Done),
	}, nil
}

// generate samples a fresh selection, persists its list and date, and
// renders it. The empty-sample case distinguishes "nothing exists" from
// "nothing left".
func (s *selectionServiceImpl) generate(
	ctx context.Context,
	users store.UserStore,
	tasks store.TaskStore,
	userID int64,
	state selection.State,
	now time.Time,
) (*Result, error) {
	sampled, err := tasks.SampleExcluding(ctx, state.Done, selection.SelectionSize)
	if err != nil {
		return nil, fmt.Errorf("failed to sample tasks: %w", err)
	}

	if len(sampled) == 0 {
		if len(state.Done) == 0 {
			return nil, ErrTasksNotFound
		}
		return nil, ErrAllTasksDone
	}

	categories, err := s.loadCategories(ctx, tasks, sampled)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(sampled))
	for i, task := range sampled {
		ids[i] = task.ID
	}

	if err := users.UpdateSelection(ctx, userID, selection.JoinList(ids), selection.Midnight(now)); err != nil {
		return nil, fmt.Errorf("failed to persist new selection: %w", err)
	}

	return &Result{
		Type:  selection.TypeNew,
		Items: selection.RenderNew(sampled, categories),
	}, nil
}

// loadCategories batches the category lookup over the distinct category
// ids of the sampled tasks. Zero rows after tasks were found means the
// catalog data is corrupt.
func (s *selectionServiceImpl) loadCategories(
	ctx context.Context,
	tasks store.TaskStore,
	sampled []domain.Task,
) (map[int64]domain.Category, error) {
	distinct := make([]int64, 0, len(sampled))
	seen := make(map[int64]struct{}, len(sampled))
	for _, task := range sampled {
		if _, ok := seen[task.CategoryID]; !ok {
			seen[task.CategoryID] = struct{}{}
			distinct = append(distinct, task.CategoryID)
		}
	}

	categories, err := tasks.GetCategoriesByIDs(ctx, distinct)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, ErrCategoriesNotFound
	}

	byID := make(map[int64]domain.Category, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}
	return byID, nil
}

// TickTask implements SelectionService.TickTask.
func (s *selectionServiceImpl) TickTask(ctx context.Context, userID int64, params TaskParams) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	return s.runInTransaction(ctx, func(ctx context.Context, users store.UserStore, tasks store.TaskStore) error {
		state, err := s.checkTaskParams(ctx, users, userID, params)
		if err != nil {
			return err
		}

		done, changed := selection.Tick(state.Done, params.TaskID)
		if !changed {
			// Already ticked; succeed without writing.
			log.Debug("task already completed",
				slog.Int64("user_id", userID),
				slog.Int64("task_id", params.TaskID))
			return nil
		}

		if err := users.UpdateDoneList(ctx, userID, selection.JoinList(done)); err != nil {
			return fmt.Errorf("failed to persist done list: %w", err)
		}

		log.Info("task ticked",
			slog.Int64("user_id", userID),
			slog.Int64("task_id", params.TaskID))
		return nil
	})
}

// ChangeTask implements SelectionService.ChangeTask.
func (s *selectionServiceImpl) ChangeTask(
	ctx context.Context,
	userID int64,
	params TaskParams,
) (*selection.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var item *selection.Item
	err := s.runInTransaction(ctx, func(ctx context.Context, users store.UserStore, tasks store.TaskStore) error {
		state, err := s.checkTaskParams(ctx, users, userID, params)
		if err != nil {
			return err
		}

		replacement, err := tasks.SampleOneExcluding(ctx, state.Exclusion())
		if err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				if len(state.Done) == 0 {
					return ErrTaskNotFound
				}
				return ErrNoTasksToReplace
			}
			return fmt.Errorf("failed to sample replacement task: %w", err)
		}

		newList := selection.ReplaceTask(state.List, params.TaskID, replacement.ID)
		if err := users.UpdateSelectionList(ctx, userID, selection.JoinList(newList)); err != nil {
			return fmt.Errorf("failed to persist selection list: %w", err)
		}

		rendered := selection.RenderItem(*replacement)
		item = &rendered

		log.Info("task swapped",
			slog.Int64("user_id", userID),
			slog.Int64("old_task_id", params.TaskID),
			slog.Int64("new_task_id", replacement.ID))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// checkTaskParams is the shared precondition gate for tick and change: the
// asserted user id must match the authenticated one, and the task must be
// part of the current selection. Returns the decoded state for reuse.
func (s *selectionServiceImpl) checkTaskParams(
	ctx context.Context,
	users store.UserStore,
	userID int64,
	params TaskParams,
) (selection.State, error) {
	if params.UserID != userID {
		return selection.State{}, ErrAccessDenied
	}

	state, err := s.loadState(ctx, users, userID)
	if err != nil {
		return selection.State{}, err
	}

	if !state.InSelection(params.TaskID) {
		return selection.State{}, ErrTaskNotInSelection
	}

	return state, nil
}

// loadState reads the user under a row lock and decodes the persisted
// selection state.
func (s *selectionServiceImpl) loadState(
	ctx context.Context,
	users store.UserStore,
	userID int64,
) (selection.State, error) {
	user, err := users.GetByIDForUpdate(ctx, userID)
	if err != nil {
		return selection.State{}, fmt.Errorf("failed to load user: %w", err)
	}

	state, err := selection.StateFromUser(user)
	if err != nil {
		return selection.State{}, fmt.Errorf("corrupt selection state for user %d: %w", userID, err)
	}

	return state, nil
}

// runInTransaction binds both stores to one transaction so every operation
// reads and writes a consistent per-user snapshot.
func (s *selectionServiceImpl) runInTransaction(
	ctx context.Context,
	fn func(ctx context.Context, users store.UserStore, tasks store.TaskStore) error,
) error {
	return s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.userStore.WithTx(tx), s.taskStore.WithTx(tx))
	})
}
