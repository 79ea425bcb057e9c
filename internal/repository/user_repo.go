package repository

import (
	"context"
	"errors"
	"fmt"

	"qzone/internal/model"

	"github.com/jackc/pgx/v5"
)

// ErrDuplicateUsername is returned by Create when the username is already taken
var ErrDuplicateUsername = errors.New("username already exists")

const usernameConstraint = "users_username_key"

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByUsernameAndRole(ctx context.Context, username string, role model.Role) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type userRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

// Create inserts user unless the username is taken. The unique constraint on username decides
// concurrent races; the loser gets ErrDuplicateUsername.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (id, username, password_hash, role, created_at)
            VALUES ($1, $2, $3, $4, $5)
            ON CONFLICT (username) DO NOTHING
            RETURNING id`
	err := r.db.QueryRow(ctx, sql, user.ID, user.Username, user.PasswordHash, string(user.Role), user.CreatedAt).Scan(&user.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isUniqueViolation(err, usernameConstraint) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByUsername retrieves a user by exact username
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	sql := `SELECT id, username, password_hash, role, created_at FROM users WHERE username = $1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, username))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

// FindByUsernameAndRole retrieves a user only when both username and role match
func (r *userRepository) FindByUsernameAndRole(ctx context.Context, username string, role model.Role) (*model.User, error) {
	sql := `SELECT id, username, password_hash, role, created_at FROM users WHERE username = $1 AND role = $2`
	user, err := scanUser(r.db.QueryRow(ctx, sql, username, string(role)))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by username and role: %w", err)
	}
	return user, nil
}

// List returns every user without the password hash
func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	sql := `SELECT id, username, role, created_at FROM users ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		var role string
		if err := rows.Scan(&u.ID, &u.Username, &role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		u.Role = model.Role(role)
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// scanUser returns nil, nil when the row does not exist; the service layer decides what that means
func scanUser(row pgx.Row) (*model.User, error) {
	user := &model.User{}
	var role string
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	user.Role = model.Role(role)
	return user, nil
}
