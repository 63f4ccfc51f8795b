package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/dailyseven/dailyseven-api/internal/domain"
	"github.com/dailyseven/dailyseven-api/internal/platform/logger"
	"github.com/dailyseven/dailyseven-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.UserStore.Create
// It persists a new user and assigns the generated id to user.ID.
// Returns store.ErrEmailExists if the email is already taken.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if user.HashedPassword == "" {
		return fmt.Errorf("%w: hashed password is required", store.ErrInvalidEntity)
	}

	query := `
		INSERT INTO users (name, email, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		user.Name,
		user.Email,
		user.HashedPassword,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate email during user creation",
				slog.String("email", user.Email))
			return store.ErrEmailExists
		}

		log.Error("failed to create user",
			slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("user created",
		slog.Int64("user_id", user.ID))
	return nil
}

// userColumns is the column list shared by all user SELECTs.
const userColumns = `id, name, email, hashed_password, done_list, sln_list, sln_date, created_at, updated_at`

// scanUser scans one user row, converting the nullable selection-state
// columns into the domain representation.
func scanUser(row *sql.Row) (*domain.User, error) {
	var (
		user     domain.User
		doneList sql.NullString
		slnList  sql.NullString
		slnDate  sql.NullTime
	)

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.HashedPassword,
		&doneList,
		&slnList,
		&slnDate,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if doneList.Valid {
		user.DoneList = &doneList.String
	}
	if slnList.Valid {
		user.SlnList = &slnList.String
	}
	if slnDate.Valid {
		date := slnDate.Time
		user.SlnDate = &date
	}

	return &user, nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrUserNotFound
		}
		return nil, MapError(err)
	}

	return user, nil
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrUserNotFound
		}
		return nil, MapError(err)
	}

	return user, nil
}

// GetByIDForUpdate implements store.UserStore.GetByIDForUpdate
// The row-level lock serializes concurrent selection-state mutations for
// the same user. Only meaningful when the store is bound to a transaction.
func (s *PostgresUserStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrUserNotFound
		}
		return nil, MapError(err)
	}

	return user, nil
}

// UpdateSelection implements store.UserStore.UpdateSelection
func (s *PostgresUserStore) UpdateSelection(
	ctx context.Context,
	id int64,
	slnList string,
	slnDate time.Time,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE users
		SET sln_list = $2, sln_date = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id, slnList, slnDate, time.Now().UTC())
	if err != nil {
		log.Error("failed to update selection",
			slog.Int64("user_id", id),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "user"); err != nil {
		return store.ErrUserNotFound
	}

	log.Debug("selection updated",
		slog.Int64("user_id", id),
		slog.String("sln_list", slnList))
	return nil
}

// UpdateSelectionList implements store.UserStore.UpdateSelectionList
func (s *PostgresUserStore) UpdateSelectionList(ctx context.Context, id int64, slnList string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE users
		SET sln_list = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id, slnList, time.Now().UTC())
	if err != nil {
		log.Error("failed to update selection list",
			slog.Int64("user_id", id),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "user"); err != nil {
		return store.ErrUserNotFound
	}

	log.Debug("selection list updated",
		slog.Int64("user_id", id),
		slog.String("sln_list", slnList))
	return nil
}

// UpdateDoneList implements store.UserStore.UpdateDoneList
func (s *PostgresUserStore) UpdateDoneList(ctx context.Context, id int64, doneList string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE users
		SET done_list = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id, doneList, time.Now().UTC())
	if err != nil {
		log.Error("failed to update done list",
			slog.Int64("user_id", id),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "user"); err != nil {
		return store.ErrUserNotFound
	}

	log.Debug("done list updated",
		slog.Int64("user_id", id))
	return nil
}
