package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"qzone/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser() *model.User {
	return &model.User{
		ID:           uuid.New(),
		Username:     "ellie",
		PasswordHash: "$2a$10$hash",
		Role:         model.RoleFirefly,
		CreatedAt:    time.Now(),
	}
}

func TestUserRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	user := newUser()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.ID, user.Username, user.PasswordHash, "firefly", user.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(user.ID))

	repo := NewUserRepository(mock)
	assert.NoError(t, repo.Create(context.Background(), user))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_ConflictNoRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	user := newUser()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.ID, user.Username, user.PasswordHash, "firefly", user.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	err = NewUserRepository(mock).Create(context.Background(), user)
	assert.ErrorIs(t, err, ErrDuplicateUsername)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_UniqueViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	user := newUser()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.ID, user.Username, user.PasswordHash, "firefly", user.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: usernameConstraint})

	err = NewUserRepository(mock).Create(context.Background(), user)
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestUserRepository_Create_OtherError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	user := newUser()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.ID, user.Username, user.PasswordHash, "firefly", user.CreatedAt).
		WillReturnError(errors.New("connection reset"))

	err = NewUserRepository(mock).Create(context.Background(), user)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateUsername)
}

func TestUserRepository_FindByUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	want := newUser()
	mock.ExpectQuery("FROM users WHERE username").
		WithArgs("ellie").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "role", "created_at"}).
			AddRow(want.ID, want.Username, want.PasswordHash, "firefly", want.CreatedAt))

	got, err := NewUserRepository(mock).FindByUsername(context.Background(), "ellie")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, model.RoleFirefly, got.Role)
	assert.Equal(t, want.PasswordHash, got.PasswordHash)
}

func TestUserRepository_FindByUsername_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM users WHERE username").
		WithArgs("nobody").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "role", "created_at"}))

	got, err := NewUserRepository(mock).FindByUsername(context.Background(), "nobody")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_FindByUsernameAndRole(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("WHERE username = \\$1 AND role = \\$2").
		WithArgs("ellie", "fedra").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "role", "created_at"}))

	got, err := NewUserRepository(mock).FindByUsernameAndRole(context.Background(), "ellie", model.RoleFedra)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT id, username, role, created_at FROM users").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "role", "created_at"}).
			AddRow(uuid.New(), "joel", "survivor", now).
			AddRow(uuid.New(), "marlene", "firefly", now))

	users, err := NewUserRepository(mock).List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "joel", users[0].Username)
	assert.Equal(t, model.RoleFirefly, users[1].Role)
	assert.Empty(t, users[0].PasswordHash)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%boston%", containsPattern("boston"))
	assert.Equal(t, `%100\%\_safe%`, containsPattern("100%_safe"))
	assert.Equal(t, `%a\\b%`, containsPattern(`a\b`))
}
