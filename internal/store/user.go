package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/garasiku/garasiku-server/internal/models"
	srvErrors "github.com/garasiku/garasiku-server/pkg/errors"
)

// UserStore handles the pre-registered dashboard users. The server never
// self-registers users; the OAuth callback only authenticates emails that
// already exist here.
type UserStore struct {
	db Querier
}

func NewUserStore(db Querier) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, queryGetUser, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewUserNotFoundError(id)
	}
	return u, err
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, queryGetUserByEmail, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewUserNotFoundError(email)
	}
	return u, err
}

func (s *UserStore) Create(ctx context.Context, u *models.User) (*models.User, error) {
	created := *u
	created.ID = uuid.NewString()
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, queryInsertUser,
		created.ID,
		created.Email,
		created.Name,
		created.PasswordHash,
		created.Verified,
		created.CreatedAt,
		created.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.Verified,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
