package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/dailyseven/dailyseven-api/internal/domain"
)

// UserStore defines the interface for user data persistence, including the
// per-user selection state (done_list, sln_list, sln_date).
type UserStore interface {
	// Create saves a new user to the store. The caller must have hashed
	// the password; only HashedPassword is persisted.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByIDForUpdate retrieves a user by ID while taking a row-level
	// lock (SELECT ... FOR UPDATE). Must be called within a transaction;
	// it serializes concurrent selection-state mutations for one user.
	// Returns ErrUserNotFound if the user does not exist.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.User, error)

	// UpdateSelection overwrites the user's current selection list and
	// selection date. Returns ErrUserNotFound if the user does not exist.
	UpdateSelection(ctx context.Context, id int64, slnList string, slnDate time.Time) error

	// UpdateSelectionList overwrites the user's current selection list
	// without touching the selection date. Used by swap, which mutates
	// today's list but does not re-date it.
	// Returns ErrUserNotFound if the user does not exist.
	UpdateSelectionList(ctx context.Context, id int64, slnList string) error

	// UpdateDoneList overwrites the user's completed-task list.
	// Returns ErrUserNotFound if the user does not exist.
	UpdateDoneList(ctx context.Context, id int64, doneList string) error

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. This allows multiple operations to be executed within
	// a single transaction managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
