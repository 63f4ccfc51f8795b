package task_selection

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"time"

	"github.com/dailyseven/dailyseven-api/internal/domain"
	"github.com/dailyseven/dailyseven-api/internal/store"
)

// mockUserStore implements store.UserStore with overridable functions.
// Methods without an override fail loudly so tests only exercise the
// calls they expect.
type mockUserStore struct {
	createFn              func(ctx context.Context, user *domain.User) error
	getByIDFn             func(ctx context.Context, id int64) (*domain.User, error)
	getByEmailFn          func(ctx context.Context, email string) (*domain.User, error)
	getByIDForUpdateFn    func(ctx context.Context, id int64) (*domain.User, error)
	updateSelectionFn     func(ctx context.Context, id int64, slnList string, slnDate time.Time) error
	updateSelectionListFn func(ctx context.Context, id int64, slnList string) error
	updateDoneListFn      func(ctx context.Context, id int64, doneList string) error
}

var _ store.UserStore = (*mockUserStore)(nil)

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.createFn == nil {
		panic("unexpected call to Create")
	}
	return m.createFn(ctx, user)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn == nil {
		panic("unexpected call to GetByID")
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn == nil {
		panic("unexpected call to GetByEmail")
	}
	return m.getByEmailFn(ctx, email)
}

func (m *mockUserStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDForUpdateFn == nil {
		panic("unexpected call to GetByIDForUpdate")
	}
	return m.getByIDForUpdateFn(ctx, id)
}

func (m *mockUserStore) UpdateSelection(
	ctx context.Context,
	id int64,
	slnList string,
	slnDate time.Time,
) error {
	if m.updateSelectionFn == nil {
		panic("unexpected call to UpdateSelection")
	}
	return m.updateSelectionFn(ctx, id, slnList, slnDate)
}

func (m *mockUserStore) UpdateSelectionList(ctx context.Context, id int64, slnList string) error {
	if m.updateSelectionListFn == nil {
		panic("unexpected call to UpdateSelectionList")
	}
	return m.updateSelectionListFn(ctx, id, slnList)
}

func (m *mockUserStore) UpdateDoneList(ctx context.Context, id int64, doneList string) error {
	if m.updateDoneListFn == nil {
		panic("unexpected call to UpdateDoneList")
	}
	return m.updateDoneListFn(ctx, id, doneList)
}

func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore { return m }

// mockTaskStore implements store.TaskStore with overridable functions.
type mockTaskStore struct {
	sampleExcludingFn      func(ctx context.Context, exclude []int64, limit int) ([]domain.Task, error)
	sampleOneExcludingFn   func(ctx context.Context, exclude []int64) (*domain.TaskWithCategory, error)
	getWithCategoryByIDsFn func(ctx context.Context, ids []int64) ([]domain.TaskWithCategory, error)
	getCategoriesByIDsFn   func(ctx context.Context, ids []int64) ([]domain.Category, error)
}

var _ store.TaskStore = (*mockTaskStore)(nil)

func (m *mockTaskStore) SampleExcluding(
	ctx context.Context,
	exclude []int64,
	limit int,
) ([]domain.Task, error) {
	if m.sampleExcludingFn == nil {
		panic("unexpected call to SampleExcluding")
	}
	return m.sampleExcludingFn(ctx, exclude, limit)
}

func (m *mockTaskStore) SampleOneExcluding(
	ctx context.Context,
	exclude []int64,
) (*domain.TaskWithCategory, error) {
	if m.sampleOneExcludingFn == nil {
		panic("unexpected call to SampleOneExcluding")
	}
	return m.sampleOneExcludingFn(ctx, exclude)
}

func (m *mockTaskStore) GetWithCategoryByIDs(
	ctx context.Context,
	ids []int64,
) ([]domain.TaskWithCategory, error) {
	if m.getWithCategoryByIDsFn == nil {
		panic("unexpected call to GetWithCategoryByIDs")
	}
	return m.getWithCategoryByIDsFn(ctx, ids)
}

func (m *mockTaskStore) GetCategoriesByIDs(
	ctx context.Context,
	ids []int64,
) ([]domain.Category, error) {
	if m.getCategoriesByIDsFn == nil {
		panic("unexpected call to GetCategoriesByIDs")
	}
	return m.getCategoriesByIDsFn(ctx, ids)
}

func (m *mockTaskStore) WithTx(tx *sql.Tx) store.TaskStore { return m }

// newTestService builds a service wired to the given mocks, with a fixed
// clock and a pass-through transaction runner so no database is needed.
func newTestService(users *mockUserStore, tasks *mockTaskStore, now time.Time) *selectionServiceImpl {
	return &selectionServiceImpl{
		taskStore: tasks,
		userStore: users,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		timeFunc:  func() time.Time { return now },
		runTx: func(ctx context.Context, db *sql.DB, fn store.TxFn) error {
			return fn(ctx, nil)
		},
	}
}
